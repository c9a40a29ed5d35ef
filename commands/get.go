package commands

import (
	"context"
	"flag"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var GetCmd = Get{
	url:  "",
	area: "",
	file: time.Now().Format("2006-01-02T150405.tsv"),
}

type Get struct {
	command
	url  string
	area string
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves a Google Sheets worksheet range and stores it to a local TSV or XLSX file"
}

func (cmd *Get) Usage() string {
	return "--credentials <file> --url <url> --range <range> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --url <URL> --range <range> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a Google Sheets worksheet to a TSV or XLSX file (depending on the file extension)")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheets-merge --debug get --credentials "credentials.json" \`)
	fmt.Println(`                             --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                             --range "Class Data!A1:F" \`)
	fmt.Println(`                             --file "example.xlsx"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")
	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range e.g. 'Class Data!A1:F'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV or XLSX file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...interface{}) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if strings.TrimSpace(cmd.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if strings.TrimSpace(cmd.area) == "" {
		return fmt.Errorf("--range is a required option")
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	if match := regexp.MustCompile(`(.+?)!.*`).FindStringSubmatch(cmd.area); len(match) < 2 {
		return fmt.Errorf("invalid range '%s' - expected something like 'Class Data!A1:F'", cmd.area)
	}

	spreadsheet, err := spreadsheetID(cmd.url)
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  range:%s", spreadsheet, cmd.area)
	}

	ctx := context.Background()
	google, err := cmd.service(ctx)
	if err != nil {
		return err
	}

	table, err := google.Get(ctx, spreadsheet, cmd.area)
	if err != nil {
		return err
	}

	if len(table) == 0 {
		return fmt.Errorf("no data in spreadsheet/range")
	}

	if err := save(cmd.file, table); err != nil {
		return err
	}

	infof("Retrieved %v rows to file %s", len(table), cmd.file)

	return nil
}
