package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ErrMissingParam параметр запроса не передан
var ErrMissingParam = errors.New("missing parameter")

// PathInt64 положительный целый параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// PathString строковый параметр пути без пробелов по краям
func PathString(r *http.Request, name string) string {
	return strings.TrimSpace(mux.Vars(r)[name])
}

// QueryDate обязательная дата YYYY-MM-DD из query
func QueryDate(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return time.Parse(domain.DateFormat, raw)
}

// QueryOptionalInt64 необязательный целый параметр query
func QueryOptionalInt64(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}

// QueryInt64List список ID через запятую ("1,2,2"); повторы сохраняются
func QueryInt64List(r *http.Request, name string) ([]int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	parts := strings.Split(raw, ",")
	result := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s element %q", name, p)
		}
		result = append(result, v)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return result, nil
}

// QueryBool необязательный флаг query, по умолчанию false
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
