package bookingcode

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	prefix     = "BC"
	suffixLen  = 6
	dateLayout = "20060102"
)

var codePattern = regexp.MustCompile(`^BC-\d{8}-[0-9A-F]{6}$`)

// Generator выдает коды бронирований вида BC-YYYYMMDD-XXXXXX
type Generator struct {
	now func() time.Time
}

// NewGenerator создает генератор, использующий текущее время
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorWithClock создает генератор с заданным источником времени
func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Generate возвращает новый код. Уникальность гарантирует уникальный индекс в БД,
// при коллизии вызывающий запрашивает новый код.
func (g *Generator) Generate() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:suffixLen]
	return fmt.Sprintf("%s-%s-%s", prefix, g.now().Format(dateLayout), suffix)
}

// Valid проверяет формат кода
func Valid(code string) bool {
	return codePattern.MatchString(code)
}
