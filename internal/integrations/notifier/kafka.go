package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Kafka публикует события в топик, ключ сообщения - код записи.
// События одной записи попадают в одну партицию и сохраняют порядок.
type Kafka struct {
	writer MessageWriter
}

// NewKafkaWriter создает writer с хеш-балансировкой по ключу
func NewKafkaWriter(brokers []string, topic string, timeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           timeout,
		AllowAutoTopicCreation: true,
	}
}

// NewKafka создает kafka-отправитель
func NewKafka(writer MessageWriter) *Kafka {
	return &Kafka{writer: writer}
}

func (k *Kafka) Driver() string { return "kafka" }

func (k *Kafka) Send(ctx context.Context, event domain.BookingEvent) error {
	body, err := encode(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Booking.Code),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

// Close закрывает writer
func (k *Kafka) Close() error {
	return k.writer.Close()
}
