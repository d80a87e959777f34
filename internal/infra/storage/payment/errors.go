package payment

import "errors"

var (
	// ErrAlreadyVerified возвращается, когда у записи или операции уже есть подтвержденный платеж
	ErrAlreadyVerified = errors.New("payment.repository: verified payment already exists")

	// ErrInvalidReference возвращается при ссылке на несуществующее бронирование
	ErrInvalidReference = errors.New("payment.repository: booking does not exist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
