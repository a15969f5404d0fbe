package timeline

import "sort"

// SortByDate returns the given UIDs ordered by date.
//
// Dated items come first, ordered by era index, then timestamp, then unique
// label; an item without an era sorts before era 0. Undated items follow in
// their input order. UIDs that are not live items are discarded.
func (m *Model) SortByDate(uids []string) []string {
	var dated, undated []*Item
	for _, uid := range uids {
		item, ok := m.items[uid]
		if !ok {
			continue
		}
		if item.Dated() {
			dated = append(dated, item)
		} else {
			undated = append(undated, item)
		}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		a, b := dated[i], dated[j]
		if ea, eb := eraIndex(a), eraIndex(b); ea != eb {
			return ea < eb
		}
		if *a.Timestamp != *b.Timestamp {
			return *a.Timestamp < *b.Timestamp
		}
		return a.Label < b.Label
	})

	sorted := make([]string, 0, len(dated)+len(undated))
	for _, item := range dated {
		sorted = append(sorted, item.UID)
	}
	for _, item := range undated {
		sorted = append(sorted, item.UID)
	}
	return sorted
}

func eraIndex(item *Item) int {
	if item.Era == nil {
		return -1
	}
	return item.Era.Index
}
