package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingModels "github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createBooking.Response)
	return resp, args.Error(1)
}

const validBody = `{
	"clientName": "Maria",
	"clientEmail": "maria@example.com",
	"date": "2025-01-06",
	"startTime": "09:00",
	"serviceIds": [1, 2],
	"professionalId": 10
}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body)))
	return w
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.Client.Name == "Maria" &&
			req.Date.Equal(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)) &&
			req.StartTime == types.MustTimeOfDay(9, 0) &&
			len(req.ServiceIDs) == 2 && req.ProfessionalID == 10
	})).Return(&createBooking.Response{Booking: &domain.Booking{
		ID:             1,
		Code:           "BC-20250106-ABC123",
		Client:         domain.Client{Name: "Maria"},
		Date:           time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		StartTime:      types.MustTimeOfDay(9, 0),
		EndTime:        types.MustTimeOfDay(10, 30),
		ProfessionalID: 10,
		TotalPrice:     40,
		Status:         domain.StatusPending,
	}}, nil)

	w := post(NewHandler(uc, logger.NewNop()), validBody)

	require.Equal(t, http.StatusCreated, w.Code)
	var body bookingModels.BookingResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "BC-20250106-ABC123", body.Code)
	assert.Equal(t, "10:30", body.EndTime)
	assert.Equal(t, "pending", body.Status)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		ucErr      error
		wantStatus int
	}{
		{"malformed json", `{"clientName":`, nil, http.StatusBadRequest},
		{"bad date", `{"clientName":"M","date":"06/01/2025","startTime":"09:00","serviceIds":[1],"professionalId":10}`, nil, http.StatusBadRequest},
		{"bad time", `{"clientName":"M","date":"2025-01-06","startTime":"9am","serviceIds":[1],"professionalId":10}`, nil, http.StatusBadRequest},
		{"slot taken", validBody, createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"unknown professional", validBody, createBooking.ErrProfessionalNotFound, http.StatusNotFound},
		{"unknown service", validBody, createBooking.ErrServiceNotFound, http.StatusBadRequest},
		{"not qualified", validBody, createBooking.ErrProfessionalNotQualified, http.StatusBadRequest},
		{"after closing", validBody, createBooking.ErrOutsideWorkingHours, http.StatusBadRequest},
		{"invalid input", validBody, createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", validBody, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			w := post(NewHandler(uc, logger.NewNop()), tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			uc.AssertExpectations(t)
		})
	}
}
