// Package gsheets wraps the Google Sheets and Google Drive APIs used to fetch, publish and share
// spreadsheets.
package gsheets

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/twystd/sheets-merge/merge"
)

const (
	SHEETS = sheets.SpreadsheetsScope
	DRIVE  = drive.DriveScope
)

// Service is an explicitly constructed handle for the Sheets and Drive APIs.
type Service struct {
	sheets  *sheets.Service
	drive   *drive.Service
	account string
}

// Published identifies a newly created spreadsheet.
type Published struct {
	ID  string
	URL string
}

// NewService creates the Sheets and Drive clients. The additional options are applied to both
// clients (e.g. option.WithEndpoint for testing).
func NewService(ctx context.Context, client *http.Client, account string, opts ...option.ClientOption) (*Service, error) {
	options := append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)

	s, err := sheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	d, err := drive.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Drive client (%w)", err)
	}

	return &Service{
		sheets:  s,
		drive:   d,
		account: account,
	}, nil
}

// Account returns the identity that source spreadsheets need to be shared with.
func (s *Service) Account() string {
	return s.account
}

// Fetch returns all the values from the first worksheet of a spreadsheet.
func (s *Service) Fetch(ctx context.Context, key string) (merge.Table, error) {
	title, err := s.worksheet(ctx, key)
	if err != nil {
		return nil, err
	}

	response, err := s.sheets.Spreadsheets.Values.Get(key, quote(title)).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet (%w)", err)
	}

	return toTable(response.Values), nil
}

// Append adds rows to the end of the first worksheet of an existing spreadsheet.
func (s *Service) Append(ctx context.Context, key string, rows merge.Table) error {
	if len(rows) == 0 {
		return nil
	}

	title, err := s.worksheet(ctx, key)
	if err != nil {
		return err
	}

	values := sheets.ValueRange{
		Values: toValues(rows),
	}

	if _, err := s.sheets.Spreadsheets.Values.Append(key, quote(title), &values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("error appending rows to sheet (%w)", err)
	}

	return nil
}

// Publish creates a new spreadsheet and writes the table to the first worksheet. If the
// spreadsheet is created but the rows cannot be written, both the new spreadsheet and the
// error are returned.
func (s *Service) Publish(ctx context.Context, title string, table merge.Table) (*Published, error) {
	rq := sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: title,
		},
	}

	spreadsheet, err := s.sheets.Spreadsheets.Create(&rq).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create spreadsheet (%w)", err)
	}

	published := Published{
		ID:  spreadsheet.SpreadsheetId,
		URL: spreadsheet.SpreadsheetUrl,
	}

	if published.URL == "" {
		published.URL = fmt.Sprintf("https://docs.google.com/spreadsheets/d/%v", published.ID)
	}

	if len(table) == 0 {
		return &published, nil
	}

	worksheet := "Sheet1"
	if len(spreadsheet.Sheets) > 0 && spreadsheet.Sheets[0].Properties != nil {
		worksheet = spreadsheet.Sheets[0].Properties.Title
	}

	values := sheets.ValueRange{
		Values: toValues(table),
	}

	if _, err := s.sheets.Spreadsheets.Values.Update(published.ID, quote(worksheet)+"!A1", &values).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return &published, fmt.Errorf("error writing rows to spreadsheet %v (%w)", published.URL, err)
	}

	return &published, nil
}

// Share makes the user the owner of the file.
func (s *Service) Share(ctx context.Context, fileID string, email string) error {
	permission := drive.Permission{
		Type:         "user",
		Role:         "owner",
		EmailAddress: email,
	}

	if _, err := s.drive.Permissions.Create(fileID, &permission).
		TransferOwnership(true).
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("error sharing spreadsheet with %v (%w)", email, err)
	}

	return nil
}

// Get retrieves the values in a spreadsheet range e.g. 'Data!A1:E'.
func (s *Service) Get(ctx context.Context, key string, area string) (merge.Table, error) {
	response, err := s.sheets.Spreadsheets.Values.Get(key, area).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet (%w)", err)
	}

	return toTable(response.Values), nil
}

// Put writes the table to a spreadsheet range, starting at the top left cell of the range.
func (s *Service) Put(ctx context.Context, key string, area string, table merge.Table) error {
	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data: []*sheets.ValueRange{
			&sheets.ValueRange{
				Range:  area,
				Values: toValues(table),
			},
		},
	}

	if _, err := s.sheets.Spreadsheets.Values.BatchUpdate(key, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("error writing to sheet (%w)", err)
	}

	return nil
}

// Clear clears the values (but not the formatting) from the spreadsheet ranges.
func (s *Service) Clear(ctx context.Context, key string, ranges []string) error {
	rq := sheets.BatchClearValuesRequest{
		Ranges: ranges,
	}

	if _, err := s.sheets.Spreadsheets.Values.BatchClear(key, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("error clearing sheet (%w)", err)
	}

	return nil
}

// worksheet returns the title of the first worksheet in a spreadsheet.
func (s *Service) worksheet(ctx context.Context, key string) (string, error) {
	spreadsheet, err := s.sheets.Spreadsheets.Get(key).
		Fields("spreadsheetId,sheets.properties(sheetId,title,index)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Index == 0 {
			return sheet.Properties.Title, nil
		}
	}

	return "", fmt.Errorf("spreadsheet %v has no worksheets", key)
}

func quote(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
