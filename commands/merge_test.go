package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twystd/sheets-merge/gsheets"
	"github.com/twystd/sheets-merge/input"
	"github.com/twystd/sheets-merge/merge"
)

type answers []string

func (a *answers) Ask(title string, validate func(string) error) (string, error) {
	for len(*a) > 0 {
		answer := (*a)[0]
		*a = (*a)[1:]

		if validate(answer) == nil {
			return answer, nil
		}
	}

	return "", io.EOF
}

func (a *answers) Note(text string) {
}

type mock struct {
	sheets   map[string]merge.Table
	appended map[string]merge.Table
	created  map[string]merge.Table
	shared   map[string]string

	fetchErr   error
	appendErr  error
	createErr  error
	writeErr   error
	shareErr   error
	fetched    []string
	publishing bool
}

func newMock(sheets map[string]merge.Table) *mock {
	return &mock{
		sheets:   sheets,
		appended: map[string]merge.Table{},
		created:  map[string]merge.Table{},
		shared:   map[string]string{},
	}
}

func (m *mock) Account() string {
	return "merge@example.iam.gserviceaccount.com"
}

func (m *mock) Fetch(ctx context.Context, key string) (merge.Table, error) {
	m.fetched = append(m.fetched, key)

	if table, ok := m.sheets[key]; ok {
		return table, nil
	}

	if m.fetchErr != nil {
		return nil, m.fetchErr
	}

	return nil, errors.New("404 Not Found")
}

func (m *mock) Append(ctx context.Context, key string, rows merge.Table) error {
	if m.appendErr != nil {
		return m.appendErr
	}

	m.appended[key] = rows

	return nil
}

func (m *mock) Publish(ctx context.Context, title string, table merge.Table) (*gsheets.Published, error) {
	m.publishing = true

	if m.createErr != nil {
		return nil, m.createErr
	}

	published := gsheets.Published{
		ID:  "merged",
		URL: "https://docs.google.com/spreadsheets/d/merged",
	}

	if m.writeErr != nil {
		return &published, m.writeErr
	}

	m.created[title] = table

	return &published, nil
}

func (m *mock) Share(ctx context.Context, fileID string, email string) error {
	if m.shareErr != nil {
		return m.shareErr
	}

	m.shared[fileID] = email

	return nil
}

var contacts = map[string]merge.Table{
	"A": {
		{"id", "name"},
		{"1", "x"},
		{"2", "y"},
	},
	"B": {
		{"id", "name"},
		{"2", "z"},
		{"3", "w"},
	},
}

func newTestMerge(title string) (*Merge, *bytes.Buffer) {
	var out bytes.Buffer

	return &Merge{
		title: title,
		out:   &out,
	}, &out
}

func TestMerge(t *testing.T) {
	cmd, out := newTestMerge("Merged contacts")
	google := newMock(contacts)
	p := answers{"2", "A", "B", "A", "someone@gmail.com"}

	require.NoError(t, cmd.merge(context.Background(), google, &p))

	expected := merge.Table{
		{"id", "name"},
		{"1", "x"},
		{"2", "y"},
		{"3", "w"},
	}

	assert.Equal(t, []string{"A", "B"}, google.fetched)
	assert.Equal(t, expected, google.created["Merged contacts"])
	assert.Equal(t, "someone@gmail.com", google.shared["merged"])
	assert.Contains(t, out.String(), "https://docs.google.com/spreadsheets/d/merged")
}

func TestMergeWithDefaultTitle(t *testing.T) {
	cmd, _ := newTestMerge("")
	google := newMock(contacts)
	p := answers{"2", "A", "B", "1", "someone@gmail.com"}

	require.NoError(t, cmd.merge(context.Background(), google, &p))
	require.Len(t, google.created, 1)

	for title := range google.created {
		assert.Regexp(t, `^Merged [0-9]{4}-[0-9]{2}-[0-9]{2} [0-9]{2}:[0-9]{2}:[0-9]{2}$`, title)
	}
}

func TestMergeWithAppend(t *testing.T) {
	cmd, out := newTestMerge("")
	cmd.append = true

	google := newMock(contacts)
	p := answers{"2", "A", "B", "A"}

	require.NoError(t, cmd.merge(context.Background(), google, &p))

	assert.Equal(t, merge.Table{{"3", "w"}}, google.appended["A"])
	assert.False(t, google.publishing)
	assert.Empty(t, google.shared)
	assert.Contains(t, out.String(), "Merged successfully")
}

func TestMergeWithAppendError(t *testing.T) {
	cmd, _ := newTestMerge("")
	cmd.append = true

	google := newMock(contacts)
	google.appendErr = errors.New("403 Forbidden")
	p := answers{"2", "A", "B", "A"}

	err := cmd.merge(context.Background(), google, &p)

	assert.ErrorContains(t, err, "appending to the first sheet")
}

func TestMergeWithDryRun(t *testing.T) {
	cmd, out := newTestMerge("")
	cmd.dryrun = true

	google := newMock(contacts)
	p := answers{"2", "A", "B", "A"}

	require.NoError(t, cmd.merge(context.Background(), google, &p))

	assert.False(t, google.publishing)
	assert.Empty(t, google.appended)
	assert.Contains(t, out.String(), "Merged 4 rows (1 added, 2 duplicates skipped)")
}

func TestMergeWithXLSXBackup(t *testing.T) {
	file := filepath.Join(t.TempDir(), "merged.xlsx")

	cmd, _ := newTestMerge("")
	cmd.dryrun = true
	cmd.xlsx = file

	google := newMock(contacts)
	p := answers{"2", "A", "B", "A"}

	require.NoError(t, cmd.merge(context.Background(), google, &p))

	table, err := load(file)
	require.NoError(t, err)

	assert.Equal(t, merge.Table{{"id", "name"}, {"1", "x"}, {"2", "y"}, {"3", "w"}}, table)
}

func TestMergeWithInaccessibleSheet(t *testing.T) {
	cmd, _ := newTestMerge("")
	google := newMock(contacts)
	p := answers{"3", "A", "missing", "B", "A", "someone@gmail.com"}

	err := cmd.merge(context.Background(), google, &p)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "couldn't fetch sheet #2 whose key is missing")
	assert.Contains(t, err.Error(), google.Account())
	assert.Equal(t, []string{"A", "missing"}, google.fetched)
	assert.False(t, google.publishing)
}

func TestMergeWithColumnOutOfRange(t *testing.T) {
	cmd, _ := newTestMerge("")
	google := newMock(contacts)
	p := answers{"2", "A", "B", "D", "someone@gmail.com"}

	err := cmd.merge(context.Background(), google, &p)

	assert.ErrorIs(t, err, input.ErrColumn)
	assert.False(t, google.publishing)
}

func TestMergeWithEmptySheets(t *testing.T) {
	cmd, _ := newTestMerge("")
	google := newMock(map[string]merge.Table{"A": {}, "B": {}})
	p := answers{"2", "A", "B", "A", "someone@gmail.com"}

	assert.Error(t, cmd.merge(context.Background(), google, &p))
	assert.False(t, google.publishing)
}

func TestMergeWithCreateError(t *testing.T) {
	cmd, _ := newTestMerge("")
	google := newMock(contacts)
	google.createErr = errors.New("quota exceeded")
	p := answers{"2", "A", "B", "A", "someone@gmail.com"}

	err := cmd.merge(context.Background(), google, &p)

	assert.ErrorContains(t, err, "quota exceeded")
	assert.Empty(t, google.shared)
}

func TestMergeWithWriteError(t *testing.T) {
	cmd, out := newTestMerge("")
	google := newMock(contacts)
	google.writeErr = errors.New("write failed")
	p := answers{"2", "A", "B", "A", "someone@gmail.com"}

	err := cmd.merge(context.Background(), google, &p)

	assert.ErrorIs(t, err, google.writeErr)
	assert.Equal(t, "someone@gmail.com", google.shared["merged"])
	assert.Contains(t, out.String(), "https://docs.google.com/spreadsheets/d/merged")
}

func TestMergeWithShareError(t *testing.T) {
	cmd, out := newTestMerge("")
	google := newMock(contacts)
	google.shareErr = errors.New("share failed")
	p := answers{"2", "A", "B", "A", "someone@gmail.com"}

	err := cmd.merge(context.Background(), google, &p)

	assert.ErrorIs(t, err, google.shareErr)
	assert.Len(t, google.created, 1)
	assert.Contains(t, out.String(), "https://docs.google.com/spreadsheets/d/merged")
}

func TestMergeWithAbortedPrompt(t *testing.T) {
	cmd, _ := newTestMerge("")
	google := newMock(contacts)
	p := answers{"2", "A"}

	err := cmd.merge(context.Background(), google, &p)

	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, google.fetched)
}

func TestMergeReportsWriteErrorOnce(t *testing.T) {
	var logged bytes.Buffer

	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	cmd, out := newTestMerge("")
	google := newMock(contacts)
	google.writeErr = errors.New("write failed")
	p := answers{"2", "A", "B", "A", "someone@gmail.com"}

	err := cmd.merge(context.Background(), google, &p)

	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(err.Error(), "write failed"))
	assert.NotContains(t, logged.String(), "write failed")
	assert.NotContains(t, out.String(), "write failed")
}
