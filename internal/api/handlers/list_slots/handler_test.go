package list_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListSlots(ctx context.Context, req *models.RangeRequest) (*models.SlotListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.SlotListResponse)
	return resp, args.Error(1)
}

func serve(svc ScheduleService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/admin/professionals/{professionalId}/slots", NewHandler(svc, logger.NewNop()).Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandle_Success(t *testing.T) {
	svc := &mockService{}
	svc.On("ListSlots", mock.Anything, mock.MatchedBy(func(req *models.RangeRequest) bool {
		return req.ProfessionalID == 10 && req.From.Day() == 6 && req.To.Day() == 12
	})).Return(&models.SlotListResponse{
		Slots: []models.SlotResponse{{ID: 1, ProfessionalID: 10, Date: "2025-01-06", StartTime: "09:00", Available: true}},
		Total: 1,
	}, nil)

	w := serve(svc, "/api/v1/admin/professionals/10/slots?from=2025-01-06&to=2025-01-12")

	require.Equal(t, http.StatusOK, w.Code)
	var body models.SlotListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 1, body.Total)
	assert.True(t, body.Slots[0].Available)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{"missing to", "/api/v1/admin/professionals/10/slots?from=2025-01-06", nil, http.StatusBadRequest},
		{"bad id", "/api/v1/admin/professionals/x/slots?from=2025-01-06&to=2025-01-12", nil, http.StatusBadRequest},
		{"range too long", "/api/v1/admin/professionals/10/slots?from=2025-01-06&to=2026-01-12", schedule.ErrInvalidInput, http.StatusBadRequest},
		{"unknown professional", "/api/v1/admin/professionals/10/slots?from=2025-01-06&to=2025-01-12", schedule.ErrProfessionalNotFound, http.StatusNotFound},
		{"internal", "/api/v1/admin/professionals/10/slots?from=2025-01-06&to=2025-01-12", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("ListSlots", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			w := serve(svc, tt.path)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
