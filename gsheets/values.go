package gsheets

import (
	"fmt"

	"github.com/twystd/sheets-merge/merge"
)

func toTable(rows [][]interface{}) merge.Table {
	table := make(merge.Table, 0, len(rows))

	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			switch value := v.(type) {
			case string:
				record[i] = value
			case nil:
				record[i] = ""
			default:
				record[i] = fmt.Sprintf("%v", value)
			}
		}

		table = append(table, record)
	}

	return table
}

func toValues(table merge.Table) [][]interface{} {
	values := make([][]interface{}, 0, len(table))

	for _, record := range table {
		row := make([]interface{}, len(record))
		for i, v := range record {
			row[i] = v
		}

		values = append(values, row)
	}

	return values
}
