package domain

import "strings"

// AssigneeFilter matches tickets by assignee. A nil ID matches only
// unassigned tickets.
type AssigneeFilter struct {
	ID *string
}

// TicketFilter narrows ticket listings. Unset fields (nil pointers, empty
// Search) are ignored; set fields combine with AND semantics.
type TicketFilter struct {
	StatusColumnID *string
	Assignee       *AssigneeFilter
	Tag            *string
	Search         string
}

// Matches reports whether the ticket satisfies every set filter field.
func (f TicketFilter) Matches(ticket Ticket) bool {
	if f.StatusColumnID != nil && ticket.StatusColumnID != *f.StatusColumnID {
		return false
	}
	if f.Assignee != nil && !matchesAssignee(ticket.AssigneeID, f.Assignee.ID) {
		return false
	}
	if f.Tag != nil && !HasTag(ticket.Tags, *f.Tag) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		title := strings.ToLower(ticket.Title)
		description := strings.ToLower(ticket.Description)
		if !strings.Contains(title, needle) && !strings.Contains(description, needle) {
			return false
		}
	}
	return true
}

func matchesAssignee(actual, wanted *string) bool {
	if wanted == nil {
		return actual == nil
	}
	return actual != nil && *actual == *wanted
}

// FilterTickets returns the tickets matching filter, in input order.
func FilterTickets(tickets []Ticket, filter TicketFilter) []Ticket {
	out := make([]Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if filter.Matches(ticket) {
			out = append(out, ticket)
		}
	}
	return out
}

// MergeFilters shallow-merges partial filters right-biased: for each field
// the last filter that sets it wins.
func MergeFilters(filters ...TicketFilter) TicketFilter {
	var merged TicketFilter
	for _, filter := range filters {
		if filter.StatusColumnID != nil {
			merged.StatusColumnID = filter.StatusColumnID
		}
		if filter.Assignee != nil {
			merged.Assignee = filter.Assignee
		}
		if filter.Tag != nil {
			merged.Tag = filter.Tag
		}
		if filter.Search != "" {
			merged.Search = filter.Search
		}
	}
	return merged
}
