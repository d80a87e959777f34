package stripepay

import "errors"

var (
	// ErrInternal возвращается при недоступности Stripe
	ErrInternal = errors.New("stripe client: internal error")

	// ErrUnauthorized возвращается, когда секретный ключ отклонен
	ErrUnauthorized = errors.New("stripe client: secret key rejected")
)
