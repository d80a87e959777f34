package notifier

import "errors"

var (
	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("notifier: failed to encode event")

	// ErrDelivery возвращается, когда получатель не принял событие
	ErrDelivery = errors.New("notifier: delivery failed")
)
