package delete_slot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) DeleteSlot(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func serve(svc ScheduleService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/admin/slots/{slotId}", NewHandler(svc, logger.NewNop()).Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
	return w
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		called     bool
		wantStatus int
	}{
		{"deleted", "/api/v1/admin/slots/7", nil, true, http.StatusNoContent},
		{"bad id", "/api/v1/admin/slots/-1", nil, false, http.StatusBadRequest},
		{"not found", "/api/v1/admin/slots/7", schedule.ErrSlotNotFound, true, http.StatusNotFound},
		{"occupied", "/api/v1/admin/slots/7", schedule.ErrSlotOccupied, true, http.StatusConflict},
		{"internal", "/api/v1/admin/slots/7", errors.New("db down"), true, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.called {
				svc.On("DeleteSlot", mock.Anything, int64(7)).Return(tt.err)
			}

			w := serve(svc, tt.path)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
