package delete_slots

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

func (m *mockService) DeleteSlots(ctx context.Context, req *models.RangeRequest) (*models.DeleteSlotsResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.DeleteSlotsResponse)
	return resp, args.Error(1)
}

func serve(svc ScheduleService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/admin/professionals/{professionalId}/slots", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodDelete)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
	return w
}

func TestHandle(t *testing.T) {
	const path = "/api/v1/admin/professionals/10/slots?from=2025-01-06&to=2025-01-12"

	t.Run("deleted", func(t *testing.T) {
		svc := &mockService{}
		svc.On("DeleteSlots", mock.Anything, mock.MatchedBy(func(req *models.RangeRequest) bool {
			return req.ProfessionalID == 10
		})).Return(&models.DeleteSlotsResponse{Deleted: 12}, nil)

		w := serve(svc, path)

		require.Equal(t, http.StatusOK, w.Code)
		var body models.DeleteSlotsResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, int64(12), body.Deleted)
	})

	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{"missing from", "/api/v1/admin/professionals/10/slots?to=2025-01-12", nil, http.StatusBadRequest},
		{"reversed range", path, schedule.ErrInvalidInput, http.StatusBadRequest},
		{"unknown professional", path, schedule.ErrProfessionalNotFound, http.StatusNotFound},
		{"internal", path, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("DeleteSlots", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			w := serve(svc, tt.path)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
