package commands

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/twystd/sheets-merge/merge"
)

func tableToXLSX(w io.Writer, table merge.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("error creating XLSX stream writer (%w)", err)
	}

	for i, record := range table {
		row := make([]interface{}, len(record))
		for j, v := range record {
			row[j] = v
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("error writing XLSX row %v (%w)", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	_, err = f.WriteTo(w)

	return err
}

func xlsxToTable(r io.Reader) (merge.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid XLSX file (%w)", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("XLSX worksheet '%v' is empty", sheets[0])
	}

	return merge.Table(rows), nil
}
