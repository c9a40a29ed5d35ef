package commands

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/twystd/sheets-merge/merge"
)

func tableToTSV(f io.Writer, table merge.Table) error {
	if len(table) == 0 {
		return fmt.Errorf("Empty sheet")
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	for _, record := range table {
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func tsvToTable(f io.Reader) (merge.Table, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("TSV file is empty")
	}

	return merge.Table(records), nil
}
