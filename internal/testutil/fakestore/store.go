// Package fakestore is an in-memory implementation of the storage layer with
// transactional rollback. Usecase tests use it to check lifecycle properties
// (slot/booking consistency, atomic reschedule) without a database.
package fakestore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type txKey struct{}

type state struct {
	professionals map[int64]*domain.Professional
	services      map[int64]*domain.Service
	capabilities  map[int64]map[int64]struct{}
	slots         map[int64]*domain.Slot
	bookings      map[int64]*domain.Booking
	changes       []*domain.BookingChange
	payments      []*domain.Payment
	nextID        int64
}

func newState() *state {
	return &state{
		professionals: make(map[int64]*domain.Professional),
		services:      make(map[int64]*domain.Service),
		capabilities:  make(map[int64]map[int64]struct{}),
		slots:         make(map[int64]*domain.Slot),
		bookings:      make(map[int64]*domain.Booking),
	}
}

func (s *state) clone() *state {
	c := newState()
	c.nextID = s.nextID
	for id, p := range s.professionals {
		cp := *p
		c.professionals[id] = &cp
	}
	for id, svc := range s.services {
		cp := *svc
		c.services[id] = &cp
	}
	for prof, set := range s.capabilities {
		cs := make(map[int64]struct{}, len(set))
		for id := range set {
			cs[id] = struct{}{}
		}
		c.capabilities[prof] = cs
	}
	for id, sl := range s.slots {
		cp := *sl
		c.slots[id] = &cp
	}
	for id, b := range s.bookings {
		c.bookings[id] = copyBooking(b)
	}
	for _, ch := range s.changes {
		cp := *ch
		c.changes = append(c.changes, &cp)
	}
	for _, p := range s.payments {
		cp := *p
		c.payments = append(c.payments, &cp)
	}
	return c
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

func copyBooking(b *domain.Booking) *domain.Booking {
	cp := *b
	cp.Services = append([]domain.BookingService(nil), b.Services...)
	return &cp
}

// Store общее состояние всех фейковых репозиториев
type Store struct {
	txMu  sync.Mutex
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		state: newState(),
		now:   time.Now,
	}
}

// Catalog репозиторий мастеров и услуг
func (s *Store) Catalog() *Catalog { return &Catalog{store: s} }

// Slots репозиторий слотов
func (s *Store) Slots() *Slots { return &Slots{store: s} }

// Bookings репозиторий бронирований
func (s *Store) Bookings() *Bookings { return &Bookings{store: s} }

// Payments репозиторий платежей
func (s *Store) Payments() *Payments { return &Payments{store: s} }

// TxManager менеджер транзакций поверх хранилища
func (s *Store) TxManager() *TxManager { return &TxManager{store: s} }

func (s *Store) read(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// AddProfessional добавляет мастера и назначает ему услуги
func (s *Store) AddProfessional(p domain.Professional, serviceIDs ...int64) *domain.Professional {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.state.id()
	}
	s.state.professionals[p.ID] = &p
	set := make(map[int64]struct{}, len(serviceIDs))
	for _, id := range serviceIDs {
		set[id] = struct{}{}
	}
	s.state.capabilities[p.ID] = set
	cp := p
	return &cp
}

// AddService добавляет услугу
func (s *Store) AddService(svc domain.Service) *domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc.ID == 0 {
		svc.ID = s.state.id()
	}
	s.state.services[svc.ID] = &svc
	cp := svc
	return &cp
}

// AddSlots добавляет свободные слоты мастеру на дату
func (s *Store) AddSlots(professionalID int64, date time.Time, starts ...types.TimeOfDay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, start := range starts {
		id := s.state.id()
		s.state.slots[id] = &domain.Slot{
			ID:             id,
			ProfessionalID: professionalID,
			Date:           domain.DateOnly(date),
			StartTime:      start,
			Available:      true,
			CreatedAt:      s.now(),
		}
	}
}

// SlotsOf слоты мастера на дату по возрастанию времени
func (s *Store) SlotsOf(professionalID int64, date time.Time) []domain.Slot {
	result := make([]domain.Slot, 0)
	s.read(func(st *state) {
		for _, sl := range st.slots {
			if sl.ProfessionalID == professionalID && sl.Date.Equal(domain.DateOnly(date)) {
				result = append(result, *sl)
			}
		}
	})
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result
}

// AllBookings все бронирования по возрастанию ID
func (s *Store) AllBookings() []*domain.Booking {
	result := make([]*domain.Booking, 0)
	s.read(func(st *state) {
		for _, b := range st.bookings {
			result = append(result, copyBooking(b))
		}
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// TxManager выполняет функции атомарно: ошибка или паника откатывают все изменения.
// Транзакции выполняются строго по одной, что соответствует serializable.
type TxManager struct {
	store *Store
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn в транзакции
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	var snapshot *state
	m.store.read(func(st *state) { snapshot = st.clone() })

	defer func() {
		if p := recover(); p != nil {
			m.restore(snapshot)
			panic(p)
		}
		if err != nil {
			m.restore(snapshot)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, true))
}

func (m *TxManager) restore(snapshot *state) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.state = snapshot
}
