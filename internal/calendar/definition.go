package calendar

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrNoDefinition is returned when the calendar definition is missing or not an object.
var ErrNoDefinition = errors.New("calendar definition is missing")

// Era is a named epoch of the calendar.
type Era struct {
	Short     string `json:"short_name"`
	Name      string `json:"name"`
	Backwards bool   `json:"backwards,omitempty"`
}

// Month is a named month with its normal and leap-year length in days.
type Month struct {
	Short      string `json:"short_name"`
	Name       string `json:"name"`
	NormalDays int    `json:"normal_days"`
	LeapDays   int    `json:"leap_days"`
}

// Weekday is a named day of the week.
type Weekday struct {
	Short string `json:"short_name"`
	Name  string `json:"name"`
}

// Definition holds the ordered name tables of an Aeon calendar.
type Definition struct {
	Eras       []Era     `json:"eras"`
	Months     []Month   `json:"months"`
	Weekdays   []Weekday `json:"weekdays"`
	HoursInDay int       `json:"hours_in_day"`
}

// ParseDefinition decodes the core.definitions.calendar object.
// Missing tables decode as empty; only a missing or non-object definition fails.
func ParseDefinition(raw gjson.Result) (Definition, error) {
	if !raw.IsObject() {
		return Definition{}, ErrNoDefinition
	}

	var def Definition
	for _, era := range raw.Get("eras").Array() {
		def.Eras = append(def.Eras, Era{
			Short:     era.Get("shortName").String(),
			Name:      era.Get("name").String(),
			Backwards: era.Get("isBackwards").Bool(),
		})
	}
	for _, month := range raw.Get("months").Array() {
		def.Months = append(def.Months, Month{
			Short:      month.Get("shortName").String(),
			Name:       month.Get("name").String(),
			NormalDays: int(month.Get("normalDuration").Int()),
			LeapDays:   int(month.Get("leapDuration").Int()),
		})
	}
	for _, weekday := range raw.Get("weekdays").Array() {
		def.Weekdays = append(def.Weekdays, Weekday{
			Short: weekday.Get("shortName").String(),
			Name:  weekday.Get("name").String(),
		})
	}
	def.HoursInDay = int(raw.Get("hoursInDay").Int())
	return def, nil
}
