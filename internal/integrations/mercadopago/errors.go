package mercadopago

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mercadopago client: internal error")

	// ErrUnauthorized возвращается, когда токен доступа отклонен
	ErrUnauthorized = errors.New("mercadopago client: access token rejected")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mercadopago client: invalid response")
)
