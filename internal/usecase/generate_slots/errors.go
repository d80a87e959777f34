package generate_slots

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда мастер не найден
	ErrProfessionalNotFound = errors.New("generate_slots: professional not found")

	// ErrNoValidWeekdays возвращается, когда не выбран ни один день недели
	ErrNoValidWeekdays = errors.New("generate_slots: no valid weekdays")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
