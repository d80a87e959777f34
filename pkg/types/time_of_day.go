package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
)

var (
	// ErrInvalidTimeFormat возвращается при разборе строки, не похожей на HH:MM
	ErrInvalidTimeFormat = errors.New("types: invalid time of day format")

	// ErrTimeOverflow возвращается, когда время выходит за пределы суток
	ErrTimeOverflow = errors.New("types: time of day out of range")
)

// TimeOfDay время суток в минутах от полуночи.
// Допустимый диапазон [0, 1440]; 1440 означает конец суток ("24:00")
// и используется только как граница интервала.
type TimeOfDay int

// NewTimeOfDay создает время суток из часов и минут
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || minute < 0 || minute >= MinutesPerHour {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrTimeOverflow, hour, minute)
	}
	total := hour*MinutesPerHour + minute
	if total > MinutesPerDay {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrTimeOverflow, hour, minute)
	}
	return TimeOfDay(total), nil
}

// MustTimeOfDay как NewTimeOfDay, но паникует при ошибке. Для констант и тестов.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayFromTime извлекает время суток из time.Time (секунды отбрасываются)
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*MinutesPerHour + t.Minute())
}

// ParseTimeOfDay разбирает "HH:MM" или "HH:MM:SS".
// Секунды допускаются только нулевые.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	values := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != 2 && !(i == 0 && len(p) == 1) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		values[i] = v
	}

	if len(values) == 3 && values[2] != 0 {
		return 0, fmt.Errorf("%w: seconds are not supported: %q", ErrInvalidTimeFormat, s)
	}
	if values[0] > 24 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	t, err := NewTimeOfDay(values[0], values[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return t, nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Hour возвращает час
func (t TimeOfDay) Hour() int {
	return int(t) / MinutesPerHour
}

// Minute возвращает минуты внутри часа
func (t TimeOfDay) Minute() int {
	return int(t) % MinutesPerHour
}

// AddMinutes сдвигает время. Результат за пределами суток является ошибкой.
func (t TimeOfDay) AddMinutes(minutes int) (TimeOfDay, error) {
	total := int(t) + minutes
	if total < 0 || total > MinutesPerDay {
		return 0, fmt.Errorf("%w: %s%+d min", ErrTimeOverflow, t, minutes)
	}
	return TimeOfDay(total), nil
}

func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t < other
}

func (t TimeOfDay) IsAfter(other TimeOfDay) bool {
	return t > other
}

func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t == other
}

// Valid проверяет, что значение лежит в допустимом диапазоне
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t <= MinutesPerDay
}

// String форматирует время как HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On возвращает момент времени в указанную дату
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(time.Duration(t) * time.Minute)
}

// Value реализует driver.Valuer для колонок типа TIME
func (t TimeOfDay) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrTimeOverflow, int(t))
	}
	return fmt.Sprintf("%02d:%02d:00", t.Hour(), t.Minute()), nil
}

// Scan реализует sql.Scanner. lib/pq отдает TIME строкой вида 09:00:00.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case time.Time:
		*t = TimeOfDayFromTime(v)
	case nil:
		return fmt.Errorf("%w: NULL time of day", ErrInvalidTimeFormat)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeFormat, src)
	}
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
