package notifier

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Metrics счетчик доставки уведомлений
type Metrics interface {
	IncNotification(driver, event, outcome string)
}

// MessageWriter запись сообщений в kafka
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
