// Package sheets stores tables as worksheets of a Google spreadsheet.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/myflowlab/stem-certification-quiz/internal/sheet"
)

// Config selects the spreadsheet and credentials.
type Config struct {
	SpreadsheetID   string
	CredentialsFile string // service account JSON; empty uses application default credentials
}

// TableStore reads and overwrites whole worksheets.
type TableStore struct {
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetID string
}

// NewTableStore creates a Sheets API client. Extra options are applied after the defaults.
func NewTableStore(ctx context.Context, cfg Config, extra ...option.ClientOption) (*TableStore, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is empty")
	}

	opts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	opts = append(opts, extra...)

	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &TableStore{
		values:        gsheets.NewSpreadsheetsValuesService(srv),
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

// ReadTable returns the worksheet with its first row as header.
func (s *TableStore) ReadTable(ctx context.Context, name string) (sheet.Table, error) {
	resp, err := s.values.Get(s.spreadsheetID, name).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return sheet.Table{}, fmt.Errorf("get worksheet %s: %w", name, err)
	}

	return fromValues(resp.Values), nil
}

// WriteTable overwrites the worksheet from A1 with a single update.
// Cells of the previous extent outside the new table are blanked in the same request,
// so a failed update leaves the worksheet unchanged.
func (s *TableStore) WriteTable(ctx context.Context, name string, t sheet.Table) error {
	current, err := s.values.Get(s.spreadsheetID, name).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get worksheet %s: %w", name, err)
	}

	rows, cols := extent(current.Values)
	vr := &gsheets.ValueRange{Values: pad(toValues(t), rows, cols)}
	_, err = s.values.Update(s.spreadsheetID, name+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update worksheet %s: %w", name, err)
	}

	return nil
}

func extent(values [][]interface{}) (rows, cols int) {
	for _, r := range values {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return len(values), cols
}

// pad grows values to at least rows x cols, filling with empty strings.
// Writing an empty string clears a cell.
func pad(values [][]interface{}, rows, cols int) [][]interface{} {
	for len(values) < rows {
		values = append(values, nil)
	}
	_, width := extent(values)
	if cols > width {
		width = cols
	}
	for i, r := range values {
		for len(r) < width {
			r = append(r, "")
		}
		values[i] = r
	}
	return values
}

func fromValues(values [][]interface{}) sheet.Table {
	var t sheet.Table
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		if i == 0 {
			t.Header = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func toValues(t sheet.Table) [][]interface{} {
	out := make([][]interface{}, 0, len(t.Rows)+1)
	out = append(out, row(t.Header))
	for _, r := range t.Rows {
		out = append(out, row(r))
	}
	return out
}

func row(cells []string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	case bool:
		return sheet.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
