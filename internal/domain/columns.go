package domain

import "sort"

// SortColumns returns a new slice ordered ascending by position. The sort
// is stable so equal positions keep their input order.
func SortColumns(columns []WorkflowColumn) []WorkflowColumn {
	out := append([]WorkflowColumn(nil), columns...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

// FindColumn looks up a column by id.
func FindColumn(columns []WorkflowColumn, id string) (WorkflowColumn, bool) {
	for _, column := range columns {
		if column.ID == id {
			return column, true
		}
	}
	return WorkflowColumn{}, false
}

// InitialColumn returns the column with the minimum position, the landing
// stage for new tickets. ok is false for an empty column list.
func InitialColumn(columns []WorkflowColumn) (WorkflowColumn, bool) {
	if len(columns) == 0 {
		return WorkflowColumn{}, false
	}
	initial := columns[0]
	for _, column := range columns[1:] {
		if column.Position < initial.Position {
			initial = column
		}
	}
	return initial, true
}
