// Package calendar resolves Aeon Timeline 3 date records against the
// project's calendar definition.
//
// Aeon stores every item date as a record of optional integer components
// (era, year, month, day, weekday, hour, minute, second) plus a timestamp
// in seconds since the calendar's own epoch. The calendar definition names
// the eras, months and weekdays those indices point into.
//
// # Absent values
//
// Every component may be missing from the export. The Resolver never
// substitutes zero for a missing component: each query returns an ok flag
// and an index that falls outside the definition's tables is reported as
// absent, not as an error.
//
//	def, _ := calendar.ParseDefinition(gjson.Get(payload, "core.definitions.calendar"))
//	res := calendar.NewResolver(def, calendar.WithHiddenEras("AD"))
//	dates := calendar.ParseDates(gjson.Get(payload, "core.data.itemDatesById."+uid))
//	if iso, ok := res.ISODate(dates); ok {
//		fmt.Println(iso) // 1933-02-06
//	}
//
// # Hidden eras
//
// Eras whose full name is in the hidden set are treated as the default era:
// they are left out of display strings and are the only eras that produce
// ISO-8601 dates. The set defaults to DefaultHiddenEras.
package calendar
