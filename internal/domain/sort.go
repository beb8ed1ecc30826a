package domain

import "sort"

// SortTickets returns a new slice ordered most recently updated first.
// Equal timestamps tie-break on descending number, then ascending id, so
// the ordering is deterministic across runs.
func SortTickets(tickets []Ticket) []Ticket {
	out := append([]Ticket(nil), tickets...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		if a.Number != b.Number {
			return a.Number > b.Number
		}
		return a.ID < b.ID
	})
	return out
}
