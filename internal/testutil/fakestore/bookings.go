package fakestore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
)

// Bookings фейковый репозиторий бронирований
type Bookings struct {
	store *Store
}

func (r *Bookings) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	st := r.store.state

	for _, b := range st.bookings {
		if b.Code == booking.Code {
			return nil, bookingRepo.ErrDuplicateCode
		}
	}
	p, ok := st.professionals[booking.ProfessionalID]
	if !ok {
		return nil, bookingRepo.ErrInvalidReference
	}

	stored := copyBooking(booking)
	stored.ID = st.id()
	stored.Date = domain.DateOnly(booking.Date)
	stored.ProfessionalName = p.Name
	stored.CreatedAt = r.store.now()
	stored.UpdatedAt = stored.CreatedAt
	st.bookings[stored.ID] = stored

	return copyBooking(stored), nil
}

func (r *Bookings) GetByCode(_ context.Context, code string) (*domain.Booking, error) {
	var result *domain.Booking
	r.store.read(func(st *state) {
		for _, b := range st.bookings {
			if b.Code == code {
				result = copyBooking(b)
				return
			}
		}
	})
	if result == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return result, nil
}

func (r *Bookings) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	r.store.read(func(st *state) {
		for _, b := range st.bookings {
			if matches(b, filter) {
				result = append(result, copyBooking(b))
			}
		}
	})
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ProfessionalID < b.ProfessionalID
	})
	return result, nil
}

func matches(b *domain.Booking, filter domain.BookingsFilter) bool {
	if filter.ProfessionalID != nil && b.ProfessionalID != *filter.ProfessionalID {
		return false
	}
	if filter.Date != nil && !b.Date.Equal(domain.DateOnly(*filter.Date)) {
		return false
	}
	if filter.ExcludeCode != nil && b.Code == *filter.ExcludeCode {
		return false
	}
	if filter.Status != nil {
		return b.Status == *filter.Status
	}
	if len(filter.Statuses) > 0 {
		for _, s := range filter.Statuses {
			if b.Status == s {
				return true
			}
		}
		return false
	}
	return filter.IncludeInactive || b.IsActive()
}

func (r *Bookings) Statistics(_ context.Context, from, to time.Time, professionalID *int64) (*domain.BookingStatistics, error) {
	stats := &domain.BookingStatistics{}
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	r.store.read(func(st *state) {
		for _, b := range st.bookings {
			if b.Date.Before(from) || b.Date.After(to) {
				continue
			}
			if professionalID != nil && b.ProfessionalID != *professionalID {
				continue
			}
			stats.Total++
			switch b.Status {
			case domain.StatusPending:
				stats.Pending++
			case domain.StatusConfirmed:
				stats.Confirmed++
			case domain.StatusCompleted:
				stats.Completed++
			case domain.StatusCancelled:
				stats.Cancelled++
				continue
			}
			stats.Revenue += b.TotalPrice
			stats.Deposits += b.DepositPaid
		}
	})
	return stats, nil
}

func (r *Bookings) UpdateStatus(_ context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	return r.update(id, from, func(b *domain.Booking) { b.Status = to })
}

func (r *Bookings) Confirm(_ context.Context, id int64, depositPaid float64) error {
	return r.update(id, []domain.BookingStatus{domain.StatusPending}, func(b *domain.Booking) {
		b.Status = domain.StatusConfirmed
		b.DepositPaid = depositPaid
	})
}

func (r *Bookings) UpdateSchedule(_ context.Context, booking *domain.Booking) error {
	return r.update(booking.ID, domain.ActiveStatuses, func(b *domain.Booking) {
		b.Date = domain.DateOnly(booking.Date)
		b.StartTime = booking.StartTime
		b.EndTime = booking.EndTime
	})
}

func (r *Bookings) update(id int64, from []domain.BookingStatus, apply func(b *domain.Booking)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.state.bookings[id]
	if !ok || !statusIn(b.Status, from) {
		return bookingRepo.ErrStatusConflict
	}
	apply(b)
	b.UpdatedAt = r.store.now()
	return nil
}

func statusIn(status domain.BookingStatus, list []domain.BookingStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

func (r *Bookings) AddChange(_ context.Context, change *domain.BookingChange) (*domain.BookingChange, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	st := r.store.state
	if _, ok := st.bookings[change.BookingID]; !ok {
		return nil, bookingRepo.ErrInvalidReference
	}
	stored := *change
	stored.ID = st.id()
	stored.CreatedAt = r.store.now()
	st.changes = append(st.changes, &stored)
	result := stored
	return &result, nil
}

func (r *Bookings) ListChanges(_ context.Context, bookingID int64) ([]*domain.BookingChange, error) {
	result := make([]*domain.BookingChange, 0)
	r.store.read(func(st *state) {
		for _, ch := range st.changes {
			if ch.BookingID == bookingID {
				cp := *ch
				result = append(result, &cp)
			}
		}
	})
	return result, nil
}
