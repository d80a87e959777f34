package fakestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Slots фейковый репозиторий слотов
type Slots struct {
	store *Store
}

func (r *Slots) CreateBatch(_ context.Context, slots []*domain.Slot) (int, error) {
	created := 0
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	st := r.store.state
	for _, sl := range slots {
		if findSlot(st, sl.ProfessionalID, sl.Date, sl.StartTime) != nil {
			continue
		}
		id := st.id()
		st.slots[id] = &domain.Slot{
			ID:             id,
			ProfessionalID: sl.ProfessionalID,
			Date:           domain.DateOnly(sl.Date),
			StartTime:      sl.StartTime,
			Available:      sl.Available,
			CreatedAt:      r.store.now(),
		}
		created++
	}
	return created, nil
}

func (r *Slots) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	var result *domain.Slot
	r.store.read(func(st *state) {
		if sl, ok := st.slots[id]; ok {
			cp := *sl
			result = &cp
		}
	})
	if result == nil {
		return nil, slotRepo.ErrSlotNotFound
	}
	return result, nil
}

func (r *Slots) ListAvailable(_ context.Context, professionalIDs []int64, date time.Time) ([]*domain.Slot, error) {
	wanted := make(map[int64]struct{}, len(professionalIDs))
	for _, id := range professionalIDs {
		wanted[id] = struct{}{}
	}
	result := make([]*domain.Slot, 0)
	r.store.read(func(st *state) {
		for _, sl := range st.slots {
			if _, ok := wanted[sl.ProfessionalID]; ok && sl.Available && sl.Date.Equal(domain.DateOnly(date)) {
				cp := *sl
				result = append(result, &cp)
			}
		}
	})
	sortSlots(result)
	return result, nil
}

func (r *Slots) ListByProfessional(_ context.Context, professionalID int64, from, to time.Time) ([]*domain.Slot, error) {
	result := make([]*domain.Slot, 0)
	r.store.read(func(st *state) {
		for _, sl := range st.slots {
			if sl.ProfessionalID == professionalID && inRange(sl.Date, from, to) {
				cp := *sl
				result = append(result, &cp)
			}
		}
	})
	sortSlots(result)
	return result, nil
}

func (r *Slots) Occupy(_ context.Context, professionalID int64, date time.Time, window domain.Window) ([]types.TimeOfDay, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	st := r.store.state

	flipped := make([]types.TimeOfDay, 0)
	startFlipped := false
	for _, sl := range footprint(st, professionalID, date, window) {
		if !sl.Available {
			continue
		}
		sl.Available = false
		flipped = append(flipped, sl.StartTime)
		if sl.StartTime.Equal(window.Start) {
			startFlipped = true
		}
	}
	if !startFlipped {
		return nil, fmt.Errorf("%w: professional=%d start=%s", slotRepo.ErrSlotNotAvailable, professionalID, window.Start)
	}
	sort.Slice(flipped, func(i, j int) bool { return flipped[i] < flipped[j] })
	return flipped, nil
}

func (r *Slots) Release(_ context.Context, professionalID int64, date time.Time, window domain.Window) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var released int64
	for _, sl := range footprint(r.store.state, professionalID, date, window) {
		sl.Available = true
		released++
	}
	return released, nil
}

func (r *Slots) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sl, ok := r.store.state.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if !sl.Available {
		return slotRepo.ErrSlotOccupied
	}
	delete(r.store.state.slots, id)
	return nil
}

func (r *Slots) DeleteAvailableInRange(_ context.Context, professionalID int64, from, to time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var deleted int64
	for id, sl := range r.store.state.slots {
		if sl.ProfessionalID == professionalID && sl.Available && inRange(sl.Date, from, to) {
			delete(r.store.state.slots, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *Slots) Statistics(_ context.Context, professionalID int64, from, to time.Time) (*domain.SlotStatistics, error) {
	stats := &domain.SlotStatistics{}
	r.store.read(func(st *state) {
		for _, sl := range st.slots {
			if sl.ProfessionalID != professionalID || !inRange(sl.Date, from, to) {
				continue
			}
			stats.Total++
			if sl.Available {
				stats.Available++
			} else {
				stats.Occupied++
			}
		}
	})
	return stats, nil
}

func findSlot(st *state, professionalID int64, date time.Time, start types.TimeOfDay) *domain.Slot {
	for _, sl := range st.slots {
		if sl.ProfessionalID == professionalID && sl.Date.Equal(domain.DateOnly(date)) && sl.StartTime.Equal(start) {
			return sl
		}
	}
	return nil
}

func footprint(st *state, professionalID int64, date time.Time, window domain.Window) []*domain.Slot {
	result := make([]*domain.Slot, 0)
	for _, sl := range st.slots {
		if sl.ProfessionalID == professionalID && sl.Date.Equal(domain.DateOnly(date)) && window.Contains(sl.StartTime) {
			result = append(result, sl)
		}
	}
	return result
}

func inRange(date, from, to time.Time) bool {
	d := domain.DateOnly(date)
	return !d.Before(domain.DateOnly(from)) && !d.After(domain.DateOnly(to))
}

func sortSlots(list []*domain.Slot) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].ProfessionalID != list[j].ProfessionalID {
			return list[i].ProfessionalID < list[j].ProfessionalID
		}
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].StartTime < list[j].StartTime
	})
}
