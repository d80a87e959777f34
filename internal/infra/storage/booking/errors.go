package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateCode возвращается, когда код бронирования уже занят
	ErrDuplicateCode = errors.New("booking.repository: booking code already exists")

	// ErrStatusConflict возвращается, когда условное обновление статуса не сработало
	ErrStatusConflict = errors.New("booking.repository: booking status changed concurrently")

	// ErrInvalidReference возвращается при ссылке на несуществующего мастера или услугу
	ErrInvalidReference = errors.New("booking.repository: referenced entity does not exist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
