package delete_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgSlotNotFound  = "слот не найден"
	msgSlotOccupied  = "слот занят записью и не может быть удален"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		h.logger.Warn("DELETE /admin/slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.DeleteSlot(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/slots/{slotId} - Invalid slot ID: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, schedule.ErrSlotNotFound):
			h.logger.Warn("DELETE /admin/slots/{slotId} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, schedule.ErrSlotOccupied):
			h.logger.Warn("DELETE /admin/slots/{slotId} - Slot occupied: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotOccupied)

		default:
			h.logger.Error("DELETE /admin/slots/{slotId} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/slots/{slotId} - Slot deleted: slot_id=%d", slotID)
	w.WriteHeader(http.StatusNoContent)
}
