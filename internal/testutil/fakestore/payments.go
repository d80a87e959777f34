package fakestore

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	paymentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/payment"
)

// Payments фейковый репозиторий платежей
type Payments struct {
	store *Store
}

func (r *Payments) Create(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	st := r.store.state

	if _, ok := st.bookings[payment.BookingID]; !ok {
		return nil, paymentRepo.ErrInvalidReference
	}
	if payment.Status == domain.PaymentVerified {
		for _, p := range st.payments {
			if p.Status != domain.PaymentVerified {
				continue
			}
			if p.BookingID == payment.BookingID || (p.Provider == payment.Provider && p.OperationID == payment.OperationID) {
				return nil, paymentRepo.ErrAlreadyVerified
			}
		}
	}

	stored := *payment
	stored.ID = st.id()
	stored.CreatedAt = r.store.now()
	st.payments = append(st.payments, &stored)
	result := stored
	return &result, nil
}

func (r *Payments) ListByBooking(_ context.Context, bookingID int64) ([]*domain.Payment, error) {
	result := make([]*domain.Payment, 0)
	r.store.read(func(st *state) {
		for _, p := range st.payments {
			if p.BookingID == bookingID {
				cp := *p
				result = append(result, &cp)
			}
		}
	})
	return result, nil
}
