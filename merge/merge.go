// Package merge combines the rows of a 'main' table with the rows of any number of other tables,
// dropping rows whose merge key has already been seen.
package merge

import (
	"fmt"
)

// Table is an ordered list of rows of cell values. Rows may be ragged - Google Sheets omits
// trailing empty cells.
type Table [][]string

// Result holds the merged table along with the rows contributed by the 'other' tables.
type Result struct {
	Merged  Table
	Added   Table
	Skipped int
}

// Merge returns the main table followed by every row from the other tables with a key (the value
// in column) that is not already in the main table or in an earlier row. Tables are processed in
// order and rows in table order, so the first occurrence of a key wins. Rows in the main table are
// never deduplicated against each other. A row that does not extend as far as column has an
// empty key.
func Merge(main Table, others []Table, column int) (*Result, error) {
	if column < 0 {
		return nil, fmt.Errorf("invalid merge column (%v)", column)
	}

	seen := map[string]bool{}
	for _, row := range main {
		seen[key(row, column)] = true
	}

	added := Table{}
	skipped := 0
	for _, table := range others {
		for _, row := range table {
			k := key(row, column)
			if seen[k] {
				skipped++
				continue
			}

			added = append(added, row)
			seen[k] = true
		}
	}

	merged := make(Table, 0, len(main)+len(added))
	merged = append(merged, main...)
	merged = append(merged, added...)

	return &Result{
		Merged:  merged,
		Added:   added,
		Skipped: skipped,
	}, nil
}

// Width returns the number of columns in the widest row across all the tables.
func Width(tables ...Table) int {
	width := 0
	for _, table := range tables {
		for _, row := range table {
			if len(row) > width {
				width = len(row)
			}
		}
	}

	return width
}

func key(row []string, column int) string {
	if column < len(row) {
		return row[column]
	}

	return ""
}
