package domain

// Professional мастер салона
type Professional struct {
	ID             int64
	Name           string
	Email          *string
	Phone          *string
	Specialization *string
	Active         bool
}

// Service услуга салона
type Service struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	Deposit         float64 // предоплата, которую требует услуга
	Category        *string
	Active          bool
}

// ServiceBundle набор услуг одной записи в порядке выбора клиентом.
// Повторы допустимы и учитываются в длительности и цене.
type ServiceBundle []*Service

// TotalDuration суммарная длительность в минутах
func (b ServiceBundle) TotalDuration() int {
	total := 0
	for _, s := range b {
		total += s.DurationMinutes
	}
	return total
}

// TotalPrice суммарная стоимость
func (b ServiceBundle) TotalPrice() float64 {
	total := 0.0
	for _, s := range b {
		total += s.Price
	}
	return total
}

// RequiredDeposit предоплата записи: максимальная среди услуг
func (b ServiceBundle) RequiredDeposit() float64 {
	deposit := 0.0
	for _, s := range b {
		if s.Deposit > deposit {
			deposit = s.Deposit
		}
	}
	return deposit
}

// DistinctIDs уникальные ID услуг в порядке первого появления
func (b ServiceBundle) DistinctIDs() []int64 {
	return DistinctIDs(b.IDs())
}

// IDs ID услуг с повторами
func (b ServiceBundle) IDs() []int64 {
	ids := make([]int64, len(b))
	for i, s := range b {
		ids[i] = s.ID
	}
	return ids
}

// DistinctIDs убирает повторы, сохраняя порядок
func DistinctIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
