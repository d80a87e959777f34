package fakestore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
)

// Catalog фейковый репозиторий мастеров и услуг
type Catalog struct {
	store *Store
}

func (c *Catalog) GetProfessionalByID(_ context.Context, id int64) (*domain.Professional, error) {
	var result *domain.Professional
	c.store.read(func(st *state) {
		if p, ok := st.professionals[id]; ok {
			cp := *p
			result = &cp
		}
	})
	if result == nil {
		return nil, catalogRepo.ErrProfessionalNotFound
	}
	return result, nil
}

func (c *Catalog) GetServicesByIDs(_ context.Context, ids []int64) (map[int64]*domain.Service, error) {
	result := make(map[int64]*domain.Service, len(ids))
	c.store.read(func(st *state) {
		for _, id := range ids {
			if svc, ok := st.services[id]; ok {
				cp := *svc
				result[id] = &cp
			}
		}
	})
	return result, nil
}

func (c *Catalog) ListQualifiedProfessionals(_ context.Context, serviceIDs []int64) ([]*domain.Professional, error) {
	distinct := domain.DistinctIDs(serviceIDs)
	result := make([]*domain.Professional, 0)
	if len(distinct) == 0 {
		return result, nil
	}
	c.store.read(func(st *state) {
		for id, p := range st.professionals {
			if p.Active && qualified(st, id, distinct) {
				cp := *p
				result = append(result, &cp)
			}
		}
	})
	sortProfessionals(result)
	return result, nil
}

func (c *Catalog) IsQualified(_ context.Context, professionalID int64, serviceIDs []int64) (bool, error) {
	distinct := domain.DistinctIDs(serviceIDs)
	if len(distinct) == 0 {
		return false, nil
	}
	var ok bool
	c.store.read(func(st *state) { ok = qualified(st, professionalID, distinct) })
	return ok, nil
}

func qualified(st *state, professionalID int64, serviceIDs []int64) bool {
	set := st.capabilities[professionalID]
	for _, id := range serviceIDs {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

func sortProfessionals(list []*domain.Professional) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}
