package commands

import (
	"context"
	"flag"
	"fmt"
	"regexp"
	"strings"
)

var PutCmd = Put{
	url:   "",
	area:  "",
	file:  "",
	clear: false,
}

type Put struct {
	command
	url   string
	area  string
	file  string
	clear bool
}

func (c *Put) FlagSet() *flag.FlagSet {
	flagset := c.flagset("put")

	flagset.StringVar(&c.url, "url", c.url, "Spreadsheet URL")
	flagset.StringVar(&c.area, "range", c.area, "Spreadsheet range e.g. 'Merged!A1:E'")
	flagset.StringVar(&c.file, "file", c.file, "TSV or XLSX file")
	flagset.BoolVar(&c.clear, "clear", c.clear, "Clears the range before uploading the file")

	return flagset
}

func (c *Put) Execute(args ...interface{}) error {
	options := args[0].(*Options)

	c.debug = options.Debug

	if strings.TrimSpace(c.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if strings.TrimSpace(c.area) == "" {
		return fmt.Errorf("--range is a required option")
	}

	if strings.TrimSpace(c.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	spreadsheetId, err := spreadsheetID(c.url)
	if err != nil {
		return err
	}

	if match := regexp.MustCompile(`(.+?)!([a-zA-Z]+)([0-9]+):([a-zA-Z]+)([0-9]+)?`).FindStringSubmatch(c.area); len(match) < 5 {
		return fmt.Errorf("invalid spreadsheet range '%s' - expected something like 'Merged!A1:E'", c.area)
	}

	table, err := load(c.file)
	if err != nil {
		return err
	}

	if c.debug {
		debugf("Spreadsheet - ID:%s  range:%s  rows:%v", spreadsheetId, c.area, len(table))
	}

	ctx := context.Background()
	google, err := c.service(ctx)
	if err != nil {
		return err
	}

	if c.clear {
		infof("Clearing %v", c.area)
		if err := google.Clear(ctx, spreadsheetId, []string{c.area}); err != nil {
			return err
		}
	}

	if err := google.Put(ctx, spreadsheetId, c.area, table); err != nil {
		return err
	}

	infof("Uploaded %v to Google Sheets %v", c.file, c.area)

	return nil
}

func (c *Put) Name() string {
	return "put"
}

func (c *Put) Description() string {
	return "Uploads a TSV or XLSX file to a Google Sheets worksheet"
}

func (c *Put) Usage() string {
	return "--credentials <file> --url <url> --range <range> --file <file>"
}

func (c *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] put [options] --url <URL> --range <range> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Uploads a TSV or XLSX file to a Google Sheets worksheet")
	fmt.Println()

	helpOptions(c.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println()
	fmt.Println(`    sheets-merge --debug put --credentials "credentials.json" \`)
	fmt.Println(`                             --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                             --range "Merged!A1:E" \`)
	fmt.Println(`                             --file "merged.tsv"`)
	fmt.Println()
}
