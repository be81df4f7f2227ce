// Package sheet defines the row-oriented storage contract the application persists through.
// A table is a worksheet: the first row is the header, the remaining rows are records.
package sheet

import (
	"context"
	"strconv"
	"strings"
)

// Table names used by the application.
const (
	TableUsers       = "users"
	TableQuestions   = "questions"
	TableAccessCodes = "access_codes"
)

// Store reads and fully overwrites named tables.
type Store interface {
	ReadTable(ctx context.Context, name string) (Table, error)
	WriteTable(ctx context.Context, name string, t Table) error
}

// Record is one row keyed by header name.
type Record map[string]string

// Table is a header plus string rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Records returns the rows keyed by header, skipping rows that are entirely empty.
// Short rows are padded with empty values.
func (t Table) Records() []Record {
	out := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		if isBlank(row) {
			continue
		}
		rec := make(Record, len(t.Header))
		for i, col := range t.Header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

// FromRecords builds a table with the given column order.
// Columns present in base but missing from columns are appended so extra worksheet columns survive a rewrite.
func FromRecords(columns []string, base []string, records []Record) Table {
	header := mergeHeader(columns, base)
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(header))
		for i, col := range header {
			row[i] = rec[col]
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	c := Table{Header: append([]string(nil), t.Header...)}
	c.Rows = make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		c.Rows[i] = append([]string(nil), r...)
	}
	return c
}

// Get returns a trimmed value.
func (r Record) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// Int parses an integer cell. Empty or malformed cells read as 0.
func (r Record) Int(key string) int {
	v := r.Get(key)
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}

// Bool parses boolean-like cells: 1/0, true/false, yes/no, activated.
func (r Record) Bool(key string) bool {
	return ParseBool(r.Get(key))
}

// ParseBool reads spreadsheet boolean spellings.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "1.0", "true", "yes", "y", "activated", "active":
		return true
	default:
		return false
	}
}

// FormatBool writes booleans as 1/0.
func FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func mergeHeader(columns, base []string) []string {
	header := append([]string(nil), columns...)
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		seen[c] = struct{}{}
	}
	for _, c := range base {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; !ok {
			header = append(header, c)
			seen[c] = struct{}{}
		}
	}
	return header
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
