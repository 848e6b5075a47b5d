package sheets

import (
	"context"
	"fmt"
	"sync"

	sheetsapi "google.golang.org/api/sheets/v4"
)

// RemoteStore talks to one spreadsheet through the Sheets API. Data
// rows start at sheet row 2; index 0 through this interface is row 2 on
// the wire.
type RemoteStore struct {
	svc           *sheetsapi.Service
	spreadsheetID string

	mu      sync.Mutex
	ensured map[string]bool
}

func NewRemoteStore(svc *sheetsapi.Service, spreadsheetID string) *RemoteStore {
	return &RemoteStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		ensured:       map[string]bool{},
	}
}

func (s *RemoteStore) ReadRows(ctx context.Context, table string) ([][]string, error) {
	width := len(Headers(table))
	readRange := fmt.Sprintf("%s!A2:%s", table, lastColumn(width))
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, value := range raw {
			row = append(row, fmt.Sprint(value))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *RemoteStore) AppendRow(ctx context.Context, table string, row []string) error {
	width := len(Headers(table))
	appendRange := fmt.Sprintf("%s!A:%s", table, lastColumn(width))
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, appendRange, &sheetsapi.ValueRange{Values: [][]interface{}{toCells(row)}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %s: %w", table, err)
	}
	return nil
}

func (s *RemoteStore) UpdateRow(ctx context.Context, table string, index int, row []string) error {
	width := len(Headers(table))
	sheetRow := index + 2
	updateRange := fmt.Sprintf("%s!A%d:%s%d", table, sheetRow, lastColumn(width), sheetRow)
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, updateRange, &sheetsapi.ValueRange{Values: [][]interface{}{toCells(row)}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s row %d: %w", table, sheetRow, err)
	}
	return nil
}

// Ensure creates the sheet if absent and rewrites the header row on any
// cell or length mismatch. Memoized per table for the process lifetime;
// safe against concurrent reads since only row 1 is ever written.
func (s *RemoteStore) Ensure(ctx context.Context, table string, headers []string) error {
	s.mu.Lock()
	done := s.ensured[table]
	s.mu.Unlock()
	if done {
		return nil
	}

	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ensure %s: %w", table, err)
	}
	exists := false
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == table {
			exists = true
			break
		}
	}
	if !exists {
		_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
			Requests: []*sheetsapi.Request{{
				AddSheet: &sheetsapi.AddSheetRequest{
					Properties: &sheetsapi.SheetProperties{Title: table},
				},
			}},
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("ensure %s: add sheet: %w", table, err)
		}
	}

	headerRange := fmt.Sprintf("%s!A1:Z1", table)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ensure %s: read header: %w", table, err)
	}
	var firstRow []interface{}
	if len(resp.Values) > 0 {
		firstRow = resp.Values[0]
	}
	if !headerMatches(firstRow, headers) {
		_, err = s.svc.Spreadsheets.Values.
			Update(s.spreadsheetID, table+"!A1", &sheetsapi.ValueRange{Values: [][]interface{}{toCells(headers)}}).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("ensure %s: write header: %w", table, err)
		}
	}

	s.mu.Lock()
	s.ensured[table] = true
	s.mu.Unlock()
	return nil
}

func headerMatches(firstRow []interface{}, headers []string) bool {
	if len(firstRow) != len(headers) {
		return false
	}
	for i, want := range headers {
		if fmt.Sprint(firstRow[i]) != want {
			return false
		}
	}
	return true
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, value := range row {
		cells[i] = value
	}
	return cells
}
