package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/testutil/fakestore"
	"github.com/m04kA/SMC-SalonBooking/internal/testutil/stubs"
	"github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/internal/usecase/resolve_availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func tod(h, m int) types.TimeOfDay { return types.MustTimeOfDay(h, m) }

type fixture struct {
	uc       *UseCase
	create   *create_booking.UseCase
	resolve  *resolve_availability.UseCase
	store    *fakestore.Store
	notifier *stubs.Notifier
	metrics  *stubs.Metrics
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := fakestore.New()
	store.AddService(domain.Service{ID: 1, Name: "Haircut", DurationMinutes: 90, Price: 25, Active: true})
	store.AddProfessional(domain.Professional{ID: 10, Name: "Ana", Active: true}, 1)
	store.AddSlots(10, monday, tod(9, 0), tod(10, 0), tod(11, 0))

	f := &fixture{store: store, notifier: &stubs.Notifier{}, metrics: &stubs.Metrics{}}
	log := logger.NewNop()
	f.uc = NewUseCase(store.Bookings(), store.Slots(), f.notifier, store.TxManager(), f.metrics, log)
	f.create = create_booking.NewUseCase(store.Bookings(), store.Slots(), store.Catalog(), &stubs.Codes{},
		&stubs.Notifier{}, store.TxManager(), &stubs.Metrics{}, tod(19, 0), log)
	f.resolve = resolve_availability.NewUseCase(store.Catalog(), store.Slots(), store.Bookings(), tod(19, 0), log)
	return f
}

func (f *fixture) book(t *testing.T, start types.TimeOfDay) *domain.Booking {
	t.Helper()
	resp, err := f.create.Execute(context.Background(), &create_booking.Request{
		Client:         domain.Client{Name: "Maria", Email: ptr.Ptr("maria@example.com")},
		Date:           monday,
		StartTime:      start,
		ServiceIDs:     []int64{1},
		ProfessionalID: 10,
	})
	require.NoError(t, err)
	return resp.Booking
}

func TestExecute_CancelReleasesFootprint(t *testing.T) {
	f := setup(t)
	b := f.book(t, tod(9, 0))

	resp, err := f.uc.Execute(context.Background(), &Request{Code: b.Code, Reason: ptr.Ptr("client is sick")})

	require.NoError(t, err)
	assert.False(t, resp.AlreadyCancelled)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
	require.NotNil(t, resp.Change)
	assert.Equal(t, domain.ChangeCancellation, resp.Change.Type)
	assert.Equal(t, tod(9, 0), resp.Change.OriginalTime)
	assert.Equal(t, "client is sick", *resp.Change.Reason)

	for _, sl := range f.store.SlotsOf(10, monday) {
		assert.True(t, sl.Available, "slot %s", sl.StartTime)
	}

	events := f.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventBookingCancelled, events[0].Type)
	assert.Equal(t, 1, f.metrics.Operations("cancel", "success"))
}

func TestExecute_CancelledWindowIsResolvableAgain(t *testing.T) {
	f := setup(t)
	b := f.book(t, tod(9, 0))

	before, err := f.resolve.Execute(context.Background(), &resolve_availability.Request{Date: monday, ServiceIDs: []int64{1}})
	require.NoError(t, err)
	for _, w := range before.Windows {
		assert.NotEqual(t, tod(9, 0), w.StartTime)
	}

	_, err = f.uc.Execute(context.Background(), &Request{Code: b.Code})
	require.NoError(t, err)

	after, err := f.resolve.Execute(context.Background(), &resolve_availability.Request{Date: monday, ServiceIDs: []int64{1}})
	require.NoError(t, err)
	require.NotEmpty(t, after.Windows)
	assert.Equal(t, tod(9, 0), after.Windows[0].StartTime)
}

func TestExecute_SecondCancelIsNoop(t *testing.T) {
	f := setup(t)
	b := f.book(t, tod(9, 0))
	_, err := f.uc.Execute(context.Background(), &Request{Code: b.Code})
	require.NoError(t, err)

	// Освободившееся время занимает другая запись
	other := f.book(t, tod(9, 0))

	resp, err := f.uc.Execute(context.Background(), &Request{Code: b.Code})

	require.NoError(t, err)
	assert.True(t, resp.AlreadyCancelled)
	assert.Nil(t, resp.Change)
	changes, err := f.store.Bookings().ListChanges(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Len(t, changes, 1)
	assert.Len(t, f.notifier.Events(), 1)

	// Слоты новой записи не тронуты
	for _, sl := range f.store.SlotsOf(10, monday) {
		if other.Window().Contains(sl.StartTime) {
			assert.False(t, sl.Available, "slot %s", sl.StartTime)
		}
	}
}

func TestExecute_CompletedBookingCannotBeCancelled(t *testing.T) {
	f := setup(t)
	b := f.book(t, tod(9, 0))
	require.NoError(t, f.store.Bookings().UpdateStatus(context.Background(), b.ID,
		[]domain.BookingStatus{domain.StatusPending}, domain.StatusCompleted))

	_, err := f.uc.Execute(context.Background(), &Request{Code: b.Code})

	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.False(t, f.store.SlotsOf(10, monday)[0].Available)
}

func TestExecute_UnknownCode(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Execute(context.Background(), &Request{Code: "BC-20250106-FFFFFF"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{Code: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
