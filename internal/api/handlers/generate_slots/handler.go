package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	generateSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/generate_slots"
)

const (
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgUnknownWeekday        = "неизвестный день недели"
	msgInvalidParams         = "некорректные даты или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput          = "некорректные параметры генерации"
	msgNoValidWeekdays       = "не выбран ни один день недели"
	msgProfessionalNotFound  = "мастер не найден"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/professionals/{professionalId}/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("POST /admin/professionals/{id}/slots/generate - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/professionals/{id}/slots/generate - Invalid request body: %v", err)
		if errors.Is(err, errUnknownWeekday) {
			handlers.RespondBadRequest(w, msgUnknownWeekday)
		} else {
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		}
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(professionalID)
	if err != nil {
		h.logger.Warn("POST /admin/professionals/{id}/slots/generate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrProfessionalNotFound):
			h.logger.Warn("POST /admin/professionals/{id}/slots/generate - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, generateSlots.ErrNoValidWeekdays):
			h.logger.Warn("POST /admin/professionals/{id}/slots/generate - No weekdays: professional_id=%d", professionalID)
			handlers.RespondBadRequest(w, msgNoValidWeekdays)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /admin/professionals/{id}/slots/generate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/professionals/{id}/slots/generate - Failed to generate slots: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/professionals/{id}/slots/generate - Slots generated: professional_id=%d, created=%d, skipped=%d",
		professionalID, result.Created, result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
