package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrCannotReschedule возвращается для отмененной или завершенной записи
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrOutsideWorkingHours возвращается, когда перенесенная запись заканчивается после закрытия
	ErrOutsideWorkingHours = errors.New("reschedule_booking: booking ends after closing time")

	// ErrSlotNotAvailable возвращается, когда новое время занято или отсутствует в расписании
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
