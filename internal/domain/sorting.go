package domain

import "github.com/cristianoliveira/listkit/internal/listview"

// SortFields returns the typed accessors every column sorts by.
func SortFields() map[string]listview.Accessor[Record] {
	return map[string]listview.Accessor[Record]{
		ColumnID:        func(r Record) any { return r.ID },
		ColumnName:      func(r Record) any { return r.Name },
		ColumnStatus:    func(r Record) any { return string(r.Status) },
		ColumnAmount:    func(r Record) any { return r.Amount },
		ColumnQuantity:  func(r Record) any { return r.Quantity },
		ColumnRef:       func(r Record) any { return r.Ref },
		ColumnCreatedAt: func(r Record) any { return r.CreatedAt },
	}
}

// NewSorter builds the record sorter. natural orders "item2" before "item10".
func NewSorter(natural, caseInsensitive bool) *listview.Sorter[Record] {
	return listview.NewSorter(SortFields(),
		listview.WithNaturalStrings(natural),
		listview.WithCaseInsensitive(caseInsensitive),
	)
}
