package bookingcode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Format(t *testing.T) {
	g := NewGeneratorWithClock(func() time.Time {
		return time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	})

	code := g.Generate()

	assert.True(t, Valid(code), code)
	assert.Equal(t, "BC-20250106-", code[:12])
}

func TestGenerate_Distinct(t *testing.T) {
	g := NewGenerator()
	seen := make(map[string]struct{})

	for i := 0; i < 200; i++ {
		seen[g.Generate()] = struct{}{}
	}

	// 24 бита случайности, 200 кодов почти наверняка различны
	assert.Greater(t, len(seen), 195)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("BC-20250106-0A1B2C"))
	assert.False(t, Valid("BC-20250106-0a1b2c"))
	assert.False(t, Valid("BC-2025016-0A1B2C"))
	assert.False(t, Valid("XX-20250106-0A1B2C"))
	assert.False(t, Valid(""))
}
