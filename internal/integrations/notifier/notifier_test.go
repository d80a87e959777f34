package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) IncNotification(driver, event, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[driver+"/"+event+"/"+outcome]++
}

type memoryWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *memoryWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *memoryWriter) Close() error {
	w.closed = true
	return nil
}

func testEvent() domain.BookingEvent {
	newDate := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	newTime := types.MustTimeOfDay(11, 0)
	return domain.BookingEvent{
		Type: domain.EventBookingRescheduled,
		Booking: &domain.Booking{
			Code:           "BC-20250106-ABC123",
			Client:         domain.Client{Name: "Maria", Email: ptr.Ptr("maria@example.com")},
			Date:           newDate,
			StartTime:      newTime,
			EndTime:        types.MustTimeOfDay(12, 30),
			ProfessionalID: 10,
			Services:       []domain.BookingService{{ServiceID: 1, ServiceName: "Haircut"}},
			TotalPrice:     25,
			Status:         domain.StatusPending,
		},
		Change: &domain.BookingChange{
			Type:         domain.ChangeReschedule,
			OriginalDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			OriginalTime: types.MustTimeOfDay(9, 0),
			NewDate:      &newDate,
			NewTime:      &newTime,
		},
		OccurredAt: time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestWebhook_PostsJSON(t *testing.T) {
	var got Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "booking.rescheduled", r.Header.Get("X-Event-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	metrics := &countingMetrics{}
	n := New(NewWebhook(srv.URL, time.Second), metrics, logger.NewNop())

	require.NoError(t, n.Notify(context.Background(), testEvent()))

	assert.Equal(t, "booking.rescheduled", got.Event)
	assert.Equal(t, "BC-20250106-ABC123", got.Booking.Code)
	assert.Equal(t, "11:00", got.Booking.StartTime)
	assert.Equal(t, []string{"Haircut"}, got.Booking.Services)
	require.NotNil(t, got.Change)
	assert.Equal(t, "2025-01-06", got.Change.OriginalDate)
	assert.Equal(t, "09:00", got.Change.OriginalTime)
	assert.Equal(t, "2025-01-07", *got.Change.NewDate)
	assert.Nil(t, got.Payment)
	assert.Equal(t, 1, metrics.counts["webhook/booking.rescheduled/ok"])
}

func TestWebhook_Non2xxIsDeliveryError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	metrics := &countingMetrics{}
	n := New(NewWebhook(srv.URL, time.Second), metrics, logger.NewNop())

	err := n.Notify(context.Background(), testEvent())

	assert.ErrorIs(t, err, ErrDelivery)
	assert.Equal(t, 1, metrics.counts["webhook/booking.rescheduled/error"])
}

func TestKafka_KeyedByBookingCode(t *testing.T) {
	writer := &memoryWriter{}
	k := NewKafka(writer)
	n := New(k, &countingMetrics{}, logger.NewNop())

	require.NoError(t, n.Notify(context.Background(), testEvent()))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "BC-20250106-ABC123", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "booking.rescheduled", string(msg.Headers[0].Value))

	var payload Payload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "BC-20250106-ABC123", payload.Booking.Code)

	require.NoError(t, k.Close())
	assert.True(t, writer.closed)
}

func TestKafka_WriteError(t *testing.T) {
	n := New(NewKafka(&memoryWriter{err: errors.New("broker down")}), &countingMetrics{}, logger.NewNop())

	err := n.Notify(context.Background(), testEvent())

	assert.ErrorIs(t, err, ErrDelivery)
}

func TestNotify_WithoutSenderOnlyLogs(t *testing.T) {
	metrics := &countingMetrics{}
	n := New(nil, metrics, logger.NewNop())

	require.NoError(t, n.Notify(context.Background(), testEvent()))
	assert.Equal(t, 1, metrics.counts["log/booking.rescheduled/ok"])
}

func TestEncode_RequiresBooking(t *testing.T) {
	_, err := encode(domain.BookingEvent{Type: domain.EventBookingCreated})

	assert.ErrorIs(t, err, ErrEncode)
}
