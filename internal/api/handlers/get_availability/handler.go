package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	resolveAvailability "github.com/m04kA/SMC-SalonBooking/internal/usecase/resolve_availability"
)

const (
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidServiceIDs = "serviceIds обязателен: список ID услуг через запятую"
	msgServiceNotFound   = "услуга не найдена или неактивна"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase ResolveAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ResolveAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), serviceIds (required, "1,2")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		if errors.Is(err, handlers.ErrMissingParam) {
			handlers.RespondBadRequest(w, msgMissingDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	serviceIDs, err := handlers.QueryInt64List(r, "serviceIds")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid service IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &resolveAvailability.Request{
		Date:       date,
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, resolveAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service_ids=%v", serviceIDs)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, resolveAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability - Failed to resolve availability: service_ids=%v, error=%v", serviceIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Windows resolved: date=%s, service_ids=%v, windows=%d",
		date.Format(domain.DateFormat), serviceIDs, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
