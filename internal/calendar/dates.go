package calendar

import (
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// DatePoint is one raw date record. Nil fields are unknown.
type DatePoint struct {
	Era       *int
	Year      *int
	Month     *int
	Day       *int
	Weekday   *int
	Hour      *int
	Minute    *int
	Second    *int
	Timestamp *int64
}

// DurationPart is one unit of an item's duration, e.g. {"days", 2}.
type DurationPart struct {
	Unit      string
	Magnitude float64
}

// Dates is the date record of one item: its start and its duration.
type Dates struct {
	Start    *DatePoint
	Duration []DurationPart
}

// ParseDates decodes an itemDatesById record.
// A missing or malformed record yields Dates with no start and no duration.
func ParseDates(raw gjson.Result) Dates {
	var dates Dates
	if !raw.IsObject() {
		return dates
	}

	if start := raw.Get("startDate"); start.IsObject() {
		dates.Start = &DatePoint{
			Era:       optionalInt(start.Get("era")),
			Year:      optionalInt(start.Get("year")),
			Month:     optionalInt(start.Get("month")),
			Day:       optionalInt(start.Get("day")),
			Weekday:   optionalInt(start.Get("weekday")),
			Hour:      optionalInt(start.Get("hour")),
			Minute:    optionalInt(start.Get("minute")),
			Second:    optionalInt(start.Get("second")),
			Timestamp: optionalInt64(start.Get("timestamp")),
		}
	}

	if duration := raw.Get("duration"); duration.IsObject() {
		duration.ForEach(func(unit, magnitude gjson.Result) bool {
			if magnitude.Type == gjson.Number {
				dates.Duration = append(dates.Duration, DurationPart{
					Unit:      unit.String(),
					Magnitude: magnitude.Float(),
				})
			}
			return true
		})
	}
	return dates
}

// optionalInt64 accepts integral numbers and numeric strings.
func optionalInt64(v gjson.Result) *int64 {
	switch v.Type {
	case gjson.Number:
		if v.Num != math.Trunc(v.Num) {
			return nil
		}
		n := v.Int()
		return &n
	case gjson.String:
		n, err := strconv.ParseInt(v.Str, 10, 64)
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

func optionalInt(v gjson.Result) *int {
	n := optionalInt64(v)
	if n == nil {
		return nil
	}
	i := int(*n)
	return &i
}
