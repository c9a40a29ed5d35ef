// Package input validates the answers to the merge prompts and converts the merge column
// specifier to a zero-based column index.
package input

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalid = errors.New("invalid input")

var (
	ErrSheetCount = fmt.Errorf("%w: must be an integer greater than 1", ErrInvalid)
	ErrSheetKey   = fmt.Errorf("%w: invalid key format", ErrInvalid)
	ErrColumn     = fmt.Errorf("%w: invalid column ID (either letters only or integer > 0)", ErrInvalid)
	ErrEmail      = fmt.Errorf("%w: invalid email address (expected a gmail.com or googlemail.com address)", ErrInvalid)
)

var (
	keyRegex     = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	urlRegex     = regexp.MustCompile(`^https://docs\.google\.com/spreadsheets/d/([^/?#]+)(?:[/?#].*)?$`)
	lettersRegex = regexp.MustCompile(`^[A-Za-z]+$`)
	digitsRegex  = regexp.MustCompile(`^[0-9]+$`)
	emailRegex   = regexp.MustCompile(`^[a-z0-9](\.?[a-z0-9]){5,}@g(oogle)?mail\.com$`)
)

// ParseSheetCount returns the number of sheets to merge, which must be at least 2.
func ParseSheetCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 2 {
		return 0, ErrSheetCount
	}

	return n, nil
}

// ParseSheetKey accepts either a bare spreadsheet key or a spreadsheet URL, returning the key.
// Empty keys are rejected.
func ParseSheetKey(s string) (string, error) {
	key := strings.TrimSpace(s)

	if id, ok := SpreadsheetID(key); ok {
		key = id
	}

	if !keyRegex.MatchString(key) {
		return "", ErrSheetKey
	}

	return key, nil
}

// SpreadsheetID extracts the spreadsheet key from a Google Sheets URL, ignoring any path, query
// or fragment after the key.
func SpreadsheetID(url string) (string, bool) {
	if match := urlRegex.FindStringSubmatch(strings.TrimSpace(url)); len(match) > 1 {
		return match[1], true
	}

	return "", false
}

// ParseColumn validates a column specifier ("C", "aa", "3") and returns the zero-based column index.
func ParseColumn(s string) (int, error) {
	col := strings.TrimSpace(s)

	if col == "" || col[0] == '0' {
		return 0, ErrColumn
	}

	if !lettersRegex.MatchString(col) && !digitsRegex.MatchString(col) {
		return 0, ErrColumn
	}

	return ColumnIndex(col)
}

// ColumnIndex converts a spreadsheet column (letters, A=1 .. Z=26, AA=27, or a 1-based number) to a
// zero-based index. The index is not checked against any table.
func ColumnIndex(col string) (int, error) {
	if lettersRegex.MatchString(col) {
		n := 0
		for _, c := range strings.ToUpper(col) {
			if n > (math.MaxInt-26)/26 {
				return 0, fmt.Errorf("%w: column '%v' out of range", ErrColumn, col)
			}

			n = n*26 + int(c-'A') + 1
		}

		return n - 1, nil
	}

	n, err := strconv.Atoi(col)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: '%v'", ErrColumn, col)
	}

	return n - 1, nil
}

// ColumnName is the inverse of ColumnIndex for letter columns, e.g. 0 -> "A", 26 -> "AA".
func ColumnName(index int) string {
	if index < 0 {
		return ""
	}

	name := []byte{}
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		name = append([]byte{byte('A' + (n-1)%26)}, name...)
	}

	return string(name)
}

// ParseEmail accepts only Gmail addresses with at least 6 characters before the '@'.
func ParseEmail(s string) (string, error) {
	email := strings.TrimSpace(s)
	if !emailRegex.MatchString(email) {
		return "", ErrEmail
	}

	return email, nil
}
