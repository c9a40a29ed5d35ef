// Package config loads the default settings for sheets-merge from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	WORKDIR     = "SHEETS_MERGE_WORKDIR"
	CREDENTIALS = "SHEETS_MERGE_CREDENTIALS"
	TOKENS      = "SHEETS_MERGE_TOKENS"
	TITLE       = "SHEETS_MERGE_TITLE"
)

type Config struct {
	Workdir     string
	Credentials string
	Tokens      string
	Title       string
}

// Load reads the .env files (if they exist) into the environment and then returns the settings,
// using the defaults for anything that is not set. Variables already in the environment take
// precedence over the .env files. A .env file that cannot be parsed is skipped and reported in the
// returned error, along with the settings from the remaining sources.
func Load(defaults Config, files ...string) (Config, error) {
	var errs []error

	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			if err := godotenv.Load(file); err != nil {
				errs = append(errs, fmt.Errorf("error loading %v (%w)", file, err))
			}
		}
	}

	c := Config{
		Workdir:     lookup(WORKDIR, defaults.Workdir),
		Credentials: lookup(CREDENTIALS, defaults.Credentials),
		Tokens:      lookup(TOKENS, defaults.Tokens),
		Title:       lookup(TITLE, defaults.Title),
	}

	return c, errors.Join(errs...)
}

func lookup(key string, defval string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}

	return defval
}
