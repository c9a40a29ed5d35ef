package prompt

import (
	"fmt"

	"github.com/twystd/sheets-merge/input"
)

// Prompter asks a question until the answer passes validation. Implementations never substitute
// a default answer - the only way out of the loop other than a valid answer is an error e.g. the
// user cancelling the prompt.
type Prompter interface {
	Ask(title string, validate func(string) error) (string, error)
	Note(text string)
}

// Request is the validated set of answers for a merge.
type Request struct {
	Keys      []string
	Column    int
	Recipient string
}

// Collect prompts for the number of sheets, each sheet key, the merge column and (optionally)
// the email address of the user to share the merged spreadsheet with.
func Collect(p Prompter, recipient bool) (*Request, error) {
	count, err := ask(p, "Number of sheets to merge:", input.ParseSheetCount)
	if err != nil {
		return nil, err
	}

	p.Note("*Sheet keys can be found in the url of the spreadsheet")

	keys := []string{}
	for i := 0; i < count; i++ {
		key, err := ask(p, fmt.Sprintf("Enter Sheet#%v key:", i+1), input.ParseSheetKey)
		if err != nil {
			return nil, err
		}

		keys = append(keys, key)
	}

	column, err := ask(p, "Enter column to merge on:", input.ParseColumn)
	if err != nil {
		return nil, err
	}

	request := Request{
		Keys:   keys,
		Column: column,
	}

	if recipient {
		if request.Recipient, err = ask(p, "Enter the email to share the merged sheet with:", input.ParseEmail); err != nil {
			return nil, err
		}
	}

	return &request, nil
}

func ask[T any](p Prompter, title string, parse func(string) (T, error)) (T, error) {
	var v T

	validate := func(s string) error {
		_, err := parse(s)
		return err
	}

	s, err := p.Ask(title, validate)
	if err != nil {
		return v, err
	}

	return parse(s)
}
