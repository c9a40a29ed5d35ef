package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/twystd/sheets-merge/gsheets"
	"github.com/twystd/sheets-merge/input"
	"github.com/twystd/sheets-merge/merge"
	"github.com/twystd/sheets-merge/prompt"
)

// MergeCmd is the default command i.e. the command that is run if no command is given on the
// command line.
var MergeCmd = Merge{
	title:      "",
	xlsx:       "",
	append:     false,
	dryrun:     false,
	accessible: false,
	out:        os.Stdout,
}

type Merge struct {
	command
	title      string
	xlsx       string
	append     bool
	dryrun     bool
	accessible bool
	out        io.Writer
}

// spreadsheets is the subset of the Google Sheets/Drive API used to merge spreadsheets.
type spreadsheets interface {
	Account() string
	Fetch(ctx context.Context, key string) (merge.Table, error)
	Append(ctx context.Context, key string, rows merge.Table) error
	Publish(ctx context.Context, title string, table merge.Table) (*gsheets.Published, error)
	Share(ctx context.Context, fileID string, email string) error
}

func (cmd *Merge) Name() string {
	return "merge"
}

func (cmd *Merge) Description() string {
	return "Merges the rows of two or more Google Sheets spreadsheets into a single spreadsheet"
}

func (cmd *Merge) Usage() string {
	return "[--credentials <file>] [--title <title>] [--xlsx <file>] [--append] [--dryrun]"
}

func (cmd *Merge) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [merge] [options]\n", APP)
	fmt.Println()
	fmt.Println("  Prompts for the spreadsheets to merge and the column to merge on, and then merges the")
	fmt.Println("  rows of the spreadsheets into a new spreadsheet that is shared with the email address")
	fmt.Println("  entered at the final prompt. A row from the second and subsequent spreadsheets is only")
	fmt.Println("  included if the value in the merge column has not already been seen.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println()
	fmt.Println(`    sheets-merge`)
	fmt.Println(`    SHEETS_MERGE_CREDENTIALS="credentials.json" sheets-merge`)
	fmt.Println(`    sheets-merge merge --credentials "credentials.json" --title "Merged contacts" --xlsx "merged.xlsx"`)
	fmt.Println(`    sheets-merge merge --credentials "credentials.json" --append`)
	fmt.Println()
}

func (cmd *Merge) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("merge")

	if cmd.title == "" {
		cmd.title = settings.Title
	}

	flagset.StringVar(&cmd.title, "title", cmd.title, "Title for the merged spreadsheet. Defaults to 'Merged <yyyy-mm-dd HH:mm:ss>'")
	flagset.StringVar(&cmd.xlsx, "xlsx", cmd.xlsx, "Also saves the merged rows to a local XLSX (or TSV) file")
	flagset.BoolVar(&cmd.append, "append", cmd.append, "Appends the new rows to the first spreadsheet instead of creating a new spreadsheet")
	flagset.BoolVar(&cmd.dryrun, "dryrun", cmd.dryrun, "Merges the spreadsheets without writing anything to Google Sheets")
	flagset.BoolVar(&cmd.accessible, "accessible", cmd.accessible, "Uses plain line-oriented prompts (for screen readers)")

	return flagset
}

func (cmd *Merge) Execute(args ...any) error {
	if len(args) > 0 {
		if options, ok := args[0].(*Options); ok {
			cmd.debug = options.Debug
		}
	}

	if cmd.out == nil {
		cmd.out = os.Stdout
	}

	ctx := context.Background()
	google, err := cmd.service(ctx)
	if err != nil {
		return err
	}

	console := prompt.NewConsole(os.Stdin, cmd.out, cmd.accessible)

	return cmd.merge(ctx, google, console)
}

func (cmd *Merge) merge(ctx context.Context, google spreadsheets, p prompt.Prompter) error {
	recipient := !cmd.append && !cmd.dryrun

	request, err := prompt.Collect(p, recipient)
	if err != nil {
		return err
	}

	main, others, err := cmd.fetch(ctx, google, request.Keys)
	if err != nil {
		return err
	}

	width := merge.Width(append([]merge.Table{main}, others...)...)
	if width == 0 {
		return fmt.Errorf("no data in any of the spreadsheets")
	} else if request.Column >= width {
		return fmt.Errorf("%w: column %v is outside the spreadsheets (last column is %v)",
			input.ErrColumn,
			input.ColumnName(request.Column),
			input.ColumnName(width-1))
	}

	result, err := merge.Merge(main, others, request.Column)
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("Merged on column %v - rows:%v  added:%v  skipped:%v",
			input.ColumnName(request.Column),
			len(result.Merged),
			len(result.Added),
			result.Skipped)
	}

	if cmd.xlsx != "" {
		if err := save(cmd.xlsx, result.Merged); err != nil {
			return fmt.Errorf("error saving merged rows to %v (%w)", cmd.xlsx, err)
		}

		infof("Saved merged rows to %v", cmd.xlsx)
	}

	switch {
	case cmd.dryrun:
		fmt.Fprintf(cmd.out, "Merged %v rows (%v added, %v duplicates skipped) - dry run, nothing written\n",
			len(result.Merged),
			len(result.Added),
			result.Skipped)
		return nil

	case cmd.append:
		if err := google.Append(ctx, request.Keys[0], result.Added); err != nil {
			return fmt.Errorf("merging failed while appending to the first sheet (%w)", err)
		}

		fmt.Fprintf(cmd.out, "Merged successfully (%v rows appended)\n", len(result.Added))
		return nil

	default:
		return cmd.publish(ctx, google, result.Merged, request.Recipient)
	}
}

// fetch retrieves the rows of each spreadsheet in order, failing on the first spreadsheet that
// cannot be retrieved.
func (cmd *Merge) fetch(ctx context.Context, google spreadsheets, keys []string) (merge.Table, []merge.Table, error) {
	tables := make([]merge.Table, 0, len(keys))

	for i, key := range keys {
		table, err := google.Fetch(ctx, key)
		if err != nil {
			return nil, nil, fmt.Errorf("couldn't fetch sheet #%v whose key is %v, please make sure the key is valid and the document is shared with %v and try again (%w)",
				i+1,
				key,
				google.Account(),
				err)
		}

		if cmd.debug {
			debugf("Fetched sheet #%v (%v) - %v rows", i+1, key, len(table))
		}

		tables = append(tables, table)
	}

	return tables[0], tables[1:], nil
}

// publish creates the merged spreadsheet and transfers it to the recipient. Sharing is attempted
// even if writing the rows failed, so that the recipient has access to whatever was created.
func (cmd *Merge) publish(ctx context.Context, google spreadsheets, table merge.Table, recipient string) error {
	title := strings.TrimSpace(cmd.title)
	if title == "" {
		title = fmt.Sprintf("Merged %v", time.Now().Format("2006-01-02 15:04:05"))
	}

	published, err := google.Publish(ctx, title, table)
	if published == nil {
		return fmt.Errorf("error creating merged spreadsheet (%w)", err)
	}

	var shareErr error
	if e := google.Share(ctx, published.ID, recipient); e != nil {
		shareErr = fmt.Errorf("merged spreadsheet %v could not be shared with %v (%w)", published.URL, recipient, e)
	}

	if err == nil && shareErr == nil {
		fmt.Fprintf(cmd.out, "Merged successfully: %v\n", published.URL)
		fmt.Fprintf(cmd.out, "Ownership transferred to %v\n", recipient)
		return nil
	}

	fmt.Fprintf(cmd.out, "Merged spreadsheet: %v\n", published.URL)

	return errors.Join(err, shareErr)
}
