package commands

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/twystd/sheets-merge/config"
	"github.com/twystd/sheets-merge/gsheets"
	"github.com/twystd/sheets-merge/input"
)

const APP = "sheets-merge"

type Options struct {
	Debug bool
}

var settings = Defaults()

// Defaults returns the platform default settings.
func Defaults() config.Config {
	return config.Config{
		Workdir:     DEFAULT_WORKDIR,
		Credentials: DEFAULT_CREDENTIALS,
		Tokens:      "",
		Title:       "",
	}
}

// Configure replaces the defaults for the command line options. It must be invoked before the
// command line is parsed.
func Configure(c config.Config) {
	settings = c
}

type command struct {
	workdir     string
	credentials string
	tokens      string
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	if c.workdir == "" {
		c.workdir = settings.Workdir
	}

	if c.credentials == "" {
		c.credentials = settings.Credentials
	}

	if c.tokens == "" {
		c.tokens = settings.Tokens
	}

	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, etc)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file (service account key or OAuth client)")
	flagset.StringVar(&c.tokens, "tokens", c.tokens, "Path for the OAuth tokens file. Defaults to <workdir>/.google/<credentials>.tokens")

	return flagset
}

// tokensFile returns the OAuth tokens file for the credentials e.g. <workdir>/.google/credentials.tokens
func (c *command) tokensFile() string {
	if c.tokens != "" {
		return c.tokens
	}

	_, file := filepath.Split(c.credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(c.workdir, ".google", fmt.Sprintf("%s.tokens", name))
}

func (c *command) service(ctx context.Context) (*gsheets.Service, error) {
	if strings.TrimSpace(c.credentials) == "" {
		return nil, fmt.Errorf("--credentials is a required option")
	}

	client, account, err := gsheets.Authorize(ctx, c.credentials, c.tokensFile(), gsheets.SHEETS, gsheets.DRIVE)
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	if c.debug {
		debugf("Authorised as %v", account)
	}

	return gsheets.NewService(ctx, client, account)
}

// spreadsheetID extracts the spreadsheet ID from a Google Sheets URL.
func spreadsheetID(url string) (string, error) {
	id, ok := input.SpreadsheetID(url)
	if !ok {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return id, nil
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")
	fmt.Println()

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	fmt.Println()
	fmt.Println("    --debug         Displays internal information for diagnosing errors")
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
