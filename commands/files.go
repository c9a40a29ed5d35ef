package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/twystd/sheets-merge/merge"
)

func isXLSX(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".xlsx")
}

// save writes the table to a TSV or XLSX file (depending on the file extension), via a temporary
// file so that an existing file is not left half written.
func save(file string, table merge.Table) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".sheets-merge-*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if isXLSX(file) {
		err = tableToXLSX(tmp, table)
	} else {
		err = tableToTSV(tmp, table)
	}

	if err != nil {
		return fmt.Errorf("error creating %v (%w)", file, err)
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}

// load reads a table from a TSV or XLSX file.
func load(file string) (merge.Table, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	if isXLSX(file) {
		return xlsxToTable(f)
	}

	return tsvToTable(f)
}
