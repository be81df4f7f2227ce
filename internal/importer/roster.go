// Package importer turns uploaded candidate lists into roster entries.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/sheet"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, upload .csv or .xlsx")
	ErrNoAccessCodeCol   = errors.New("upload has no access code column")
)

// header aliases normalized to roster columns.
var aliases = map[string]string{
	"access_code": "access_code",
	"accesscode":  "access_code",
	"code":        "access_code",
	"status":      "status",
	"activated":   "status",
	"name":        "name",
	"full_name":   "name",
	"nric":        "nric",
	"ic":          "nric",
	"email":       "email",
	"e-mail":      "email",
}

// ParseRoster reads a .csv or .xlsx upload. The first row is the header.
// When the file has no status column every code is treated as activated.
func ParseRoster(r io.Reader, filename string) ([]entities.AccessCodeEntry, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readXLSX(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = normalizeHeader(h)
	}

	t := sheet.Table{Header: header, Rows: rows[1:]}
	if !contains(header, "access_code") {
		return nil, ErrNoAccessCodeCol
	}
	hasStatus := contains(header, "status")

	recs := t.Records()
	out := make([]entities.AccessCodeEntry, 0, len(recs))
	for _, rec := range recs {
		activated := true
		if hasStatus {
			activated = rec.Bool("status")
		}
		out = append(out, entities.AccessCodeEntry{
			AccessCode: rec.Get("access_code"),
			Activated:  activated,
			Name:       rec.Get("name"),
			NRIC:       rec.Get("nric"),
			Email:      rec.Get("email"),
		})
	}
	return out, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return rows, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	if a, ok := aliases[h]; ok {
		return a
	}
	return h
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
