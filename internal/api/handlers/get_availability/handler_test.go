package get_availability

import (
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
	resolveAvailability "github.com/m04kA/SMC-SalonBooking/internal/usecase/resolve_availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *resolveAvailability.Request) (*resolveAvailability.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*resolveAvailability.Response)
	return resp, args.Error(1)
}

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func TestHandle_ReturnsWindows(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &resolveAvailability.Request{Date: monday, ServiceIDs: []int64{1, 2}}).
		Return(&resolveAvailability.Response{
			Date:            monday,
			ServiceIDs:      []int64{1, 2},
			DurationMinutes: 90,
			TotalPrice:      40,
			DepositRequired: 20,
			Windows: []domain.AvailableWindow{{
				StartTime:        types.MustTimeOfDay(9, 0),
				EndTime:          types.MustTimeOfDay(10, 30),
				ProfessionalID:   10,
				ProfessionalName: "Ana",
				DurationMinutes:  90,
			}},
		}, nil)

	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-01-06&serviceIds=1,2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body AvailabilityResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "2025-01-06", body.Date)
	require.Len(t, body.Windows, 1)
	assert.Equal(t, "09:00", body.Windows[0].StartTime)
	assert.Equal(t, "10:30", body.Windows[0].EndTime)
	assert.Equal(t, "Ana", body.Windows[0].ProfessionalName)
	uc.AssertExpectations(t)
}

func TestHandle_EmptyResultIsNotAnError(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(&resolveAvailability.Response{Date: monday, ServiceIDs: []int64{1}, Windows: []domain.AvailableWindow{}}, nil)

	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-01-06&serviceIds=1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, mustField(t, w.Body.Bytes(), "windows"))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		ucErr      error
		wantStatus int
	}{
		{"missing date", "?serviceIds=1", nil, http.StatusBadRequest},
		{"bad date", "?date=06-01-2025&serviceIds=1", nil, http.StatusBadRequest},
		{"missing services", "?date=2025-01-06", nil, http.StatusBadRequest},
		{"unknown service", "?date=2025-01-06&serviceIds=99", resolveAvailability.ErrServiceNotFound, http.StatusBadRequest},
		{"internal", "?date=2025-01-06&serviceIds=1", errors.Join(resolveAvailability.ErrInternal, errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			w := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/availability"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			uc.AssertExpectations(t)
		})
	}
}

func mustField(t *testing.T, body []byte, field string) string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	return string(m[field])
}
