package generate_slots

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errUnknownWeekday = errors.New("unknown weekday")

// weekdayNames названия дней недели: английские, испанские и русские, полные и короткие.
// 0 = понедельник.
var weekdayNames = map[string]int{
	"monday": 0, "mon": 0, "lunes": 0, "lun": 0, "понедельник": 0, "пн": 0,
	"tuesday": 1, "tue": 1, "martes": 1, "mar": 1, "вторник": 1, "вт": 1,
	"wednesday": 2, "wed": 2, "miércoles": 2, "miercoles": 2, "mié": 2, "mie": 2, "среда": 2, "ср": 2,
	"thursday": 3, "thu": 3, "jueves": 3, "jue": 3, "четверг": 3, "чт": 3,
	"friday": 4, "fri": 4, "viernes": 4, "vie": 4, "пятница": 4, "пт": 4,
	"saturday": 5, "sat": 5, "sábado": 5, "sabado": 5, "sáb": 5, "sab": 5, "суббота": 5, "сб": 5,
	"sunday": 6, "sun": 6, "domingo": 6, "dom": 6, "воскресенье": 6, "вс": 6,
}

// Weekday день недели в запросе: индекс (0 = понедельник) или название
type Weekday int

func (w *Weekday) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return fmt.Errorf("%w: null", errUnknownWeekday)
	}

	var index int
	if err := json.Unmarshal(data, &index); err == nil {
		*w = Weekday(index)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: %s", errUnknownWeekday, string(data))
	}

	index, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownWeekday, name)
	}
	*w = Weekday(index)
	return nil
}
