package create_booking

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда мастер не найден или не работает
	ErrProfessionalNotFound = errors.New("create_booking: professional not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrProfessionalNotQualified возвращается, когда мастер не оказывает одну из услуг
	ErrProfessionalNotQualified = errors.New("create_booking: professional does not offer requested services")

	// ErrOutsideWorkingHours возвращается, когда запись заканчивается после закрытия салона
	ErrOutsideWorkingHours = errors.New("create_booking: booking ends after closing time")

	// ErrSlotNotAvailable возвращается, когда время уже занято или слота нет в расписании
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
