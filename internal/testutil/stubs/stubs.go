// Package stubs holds small test doubles shared by usecase tests.
package stubs

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Notifier запоминает отправленные события. Если задан Err, возвращает его.
type Notifier struct {
	mu     sync.Mutex
	Err    error
	events []domain.BookingEvent
}

func (n *Notifier) Notify(_ context.Context, event domain.BookingEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.Err
}

// Events отправленные события
func (n *Notifier) Events() []domain.BookingEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.BookingEvent(nil), n.events...)
}

// Metrics считает операции по паре "операция/результат"
type Metrics struct {
	mu         sync.Mutex
	operations map[string]int
	payments   map[string]int
}

func (m *Metrics) IncBookingOperation(operation, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.operations == nil {
		m.operations = make(map[string]int)
	}
	m.operations[operation+"/"+outcome]++
}

func (m *Metrics) IncPaymentVerification(provider, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.payments == nil {
		m.payments = make(map[string]int)
	}
	m.payments[provider+"/"+result]++
}

// Operations число операций с указанным результатом
func (m *Metrics) Operations(operation, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operations[operation+"/"+outcome]
}

// PaymentChecks число проверок платежей с указанным результатом
func (m *Metrics) PaymentChecks(provider, result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payments[provider+"/"+result]
}

// Codes выдает коды из списка по очереди, затем BC-20250101-00000N
type Codes struct {
	mu    sync.Mutex
	Queue []string
	n     int
}

func (c *Codes) Generate() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Queue) > 0 {
		code := c.Queue[0]
		c.Queue = c.Queue[1:]
		return code
	}
	c.n++
	return fmt.Sprintf("BC-20250101-%06X", c.n)
}
