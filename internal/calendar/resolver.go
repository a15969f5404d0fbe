package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultHiddenEras lists the eras treated as the proleptic Gregorian default.
var DefaultHiddenEras = []string{"AD"}

// Named is a resolved table entry: the raw index and the entry's names.
type Named struct {
	Index int    `json:"index"`
	Short string `json:"short_name"`
	Name  string `json:"name"`
}

// Logger receives diagnostics about values that could not be resolved.
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// Resolver converts raw date records into calendar components and strings.
type Resolver struct {
	eras       []Named
	months     []Named
	weekdays   []Named
	hoursInDay int
	hidden     map[string]bool
	log        Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHiddenEras replaces the hidden era set. Names are matched against the
// era's full name.
func WithHiddenEras(names ...string) Option {
	return func(r *Resolver) {
		r.hidden = make(map[string]bool, len(names))
		for _, name := range names {
			r.hidden[name] = true
		}
	}
}

// WithLogger sets the logger for unresolved values.
func WithLogger(log Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a Resolver for the given calendar definition.
func NewResolver(def Definition, opts ...Option) *Resolver {
	r := &Resolver{
		eras:       make([]Named, 0, len(def.Eras)),
		months:     make([]Named, 0, len(def.Months)),
		weekdays:   make([]Named, 0, len(def.Weekdays)),
		hoursInDay: def.HoursInDay,
		log:        nopLogger{},
	}
	for i, era := range def.Eras {
		r.eras = append(r.eras, Named{Index: i, Short: era.Short, Name: era.Name})
	}
	for i, month := range def.Months {
		r.months = append(r.months, Named{Index: i + 1, Short: month.Short, Name: month.Name})
	}
	for i, weekday := range def.Weekdays {
		r.weekdays = append(r.weekdays, Named{Index: i, Short: weekday.Short, Name: weekday.Name})
	}
	WithHiddenEras(DefaultHiddenEras...)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsHidden reports whether the era name belongs to the hidden era set.
func (r *Resolver) IsHidden(eraName string) bool {
	return r.hidden[eraName]
}

// Era returns the start date's era.
func (r *Resolver) Era(d Dates) (Named, bool) {
	if d.Start == nil || d.Start.Era == nil {
		return Named{}, false
	}
	return r.at("era", r.eras, *d.Start.Era)
}

// Weekday returns the start date's weekday. Weekday indices are 0-based.
func (r *Resolver) Weekday(d Dates) (Named, bool) {
	if d.Start == nil || d.Start.Weekday == nil {
		return Named{}, false
	}
	return r.at("weekday", r.weekdays, *d.Start.Weekday)
}

// Month returns the start date's month. Month numbers are 1-based.
func (r *Resolver) Month(d Dates) (Named, bool) {
	if d.Start == nil || d.Start.Month == nil {
		return Named{}, false
	}
	return r.at("month", r.months, *d.Start.Month-1)
}

// Year returns the start date's year within its era.
func (r *Resolver) Year(d Dates) (int, bool) {
	if d.Start == nil {
		return 0, false
	}
	return deref(d.Start.Year)
}

// Day returns the start date's day of month.
func (r *Resolver) Day(d Dates) (int, bool) {
	if d.Start == nil {
		return 0, false
	}
	return deref(d.Start.Day)
}

// Hour returns the start date's hour.
// Hours beyond the calendar's day length are absent.
func (r *Resolver) Hour(d Dates) (int, bool) {
	if d.Start == nil || d.Start.Hour == nil {
		return 0, false
	}
	hour := *d.Start.Hour
	if hour < 0 || (r.hoursInDay > 0 && hour >= r.hoursInDay) {
		r.log.Debugf("hour %d out of range (%d hours in day)", hour, r.hoursInDay)
		return 0, false
	}
	return hour, true
}

// Minute returns the start date's minute.
func (r *Resolver) Minute(d Dates) (int, bool) {
	if d.Start == nil {
		return 0, false
	}
	return deref(d.Start.Minute)
}

// Second returns the start date's second.
func (r *Resolver) Second(d Dates) (int, bool) {
	if d.Start == nil {
		return 0, false
	}
	return deref(d.Start.Second)
}

// Timestamp returns the start date's timestamp in seconds since the calendar epoch.
func (r *Resolver) Timestamp(d Dates) (int64, bool) {
	if d.Start == nil || d.Start.Timestamp == nil {
		return 0, false
	}
	return *d.Start.Timestamp, true
}

// ISODate returns the start date as YYYY-MM-DD.
// Only dates in a hidden era have an ISO representation.
func (r *Resolver) ISODate(d Dates) (string, bool) {
	era, ok := r.Era(d)
	if !ok || !r.IsHidden(era.Name) {
		return "", false
	}
	year, ok := r.Year(d)
	if !ok {
		return "", false
	}
	month, ok := r.Month(d)
	if !ok {
		return "", false
	}
	day, ok := r.Day(d)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month.Index, day), true
}

// ISOTime returns the start time as HH:MM:SS. All three components are required.
func (r *Resolver) ISOTime(d Dates) (string, bool) {
	hour, ok := r.Hour(d)
	if !ok {
		return "", false
	}
	minute, ok := r.Minute(d)
	if !ok {
		return "", false
	}
	second, ok := r.Second(d)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second), true
}

// DateString returns a display date such as "Monday 6 February 1933".
// Unknown components are left out and a hidden era is not printed.
func (r *Resolver) DateString(d Dates) string {
	var parts []string
	if weekday, ok := r.Weekday(d); ok {
		parts = append(parts, weekday.Name)
	}
	if day, ok := r.Day(d); ok {
		parts = append(parts, strconv.Itoa(day))
	}
	if month, ok := r.Month(d); ok {
		parts = append(parts, month.Name)
	}
	if year, ok := r.Year(d); ok {
		parts = append(parts, strconv.Itoa(year))
	}
	if era, ok := r.Era(d); ok && !r.IsHidden(era.Name) {
		parts = append(parts, era.Name)
	}
	return strings.Join(parts, " ")
}

// TimeString returns a display time: "H", "H:MM" or "H:MM:SS".
// Seconds are shown only when nonzero.
func (r *Resolver) TimeString(d Dates) string {
	hour, ok := r.Hour(d)
	if !ok {
		return ""
	}
	s := strconv.Itoa(hour)
	minute, ok := r.Minute(d)
	if !ok {
		return s
	}
	s = fmt.Sprintf("%s:%02d", s, minute)
	if second, ok := r.Second(d); ok && second != 0 {
		s = fmt.Sprintf("%s:%02d", s, second)
	}
	return s
}

// DurationString returns the nonzero duration units, e.g. "2 days, 3 hours".
func (r *Resolver) DurationString(d Dates) string {
	parts := make([]string, 0, len(d.Duration))
	for _, part := range d.Duration {
		if part.Magnitude == 0 {
			continue
		}
		parts = append(parts, strconv.FormatFloat(part.Magnitude, 'f', -1, 64)+" "+part.Unit)
	}
	return strings.Join(parts, ", ")
}

// at looks up a table entry, reporting out-of-range indices as absent.
func (r *Resolver) at(kind string, table []Named, idx int) (Named, bool) {
	if idx < 0 || idx >= len(table) {
		r.log.Debugf("%s index %d out of range (%d defined)", kind, idx, len(table))
		return Named{}, false
	}
	return table[idx], true
}

func deref(v *int) (int, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
