package repository

import (
	"context"
	"strings"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/sheet"
)

var accessCodeColumns = []string{"access_code", "status", "name", "nric", "email"}

// MergeReport summarizes a roster upload.
type MergeReport struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// AccessCodeRepository provides access to the candidate roster worksheet.
type AccessCodeRepository struct {
	store sheet.Store
}

// NewAccessCodeRepository creates a new AccessCodeRepository.
func NewAccessCodeRepository(store sheet.Store) *AccessCodeRepository {
	return &AccessCodeRepository{store: store}
}

// List returns the roster in sheet order.
func (r *AccessCodeRepository) List(ctx context.Context) ([]*entities.AccessCodeEntry, error) {
	_, recs, err := readRecords(ctx, r.store, sheet.TableAccessCodes)
	if err != nil {
		return nil, err
	}

	out := make([]*entities.AccessCodeEntry, 0, len(recs))
	for _, rec := range recs {
		out = append(out, accessCodeFromRecord(rec))
	}
	return out, nil
}

// Get finds a roster entry by code. Missing codes return (nil, nil).
func (r *AccessCodeRepository) Get(ctx context.Context, code string) (*entities.AccessCodeEntry, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)
	for _, e := range entries {
		if e.AccessCode == code {
			return e, nil
		}
	}
	return nil, nil
}

// Merge appends entries whose code is not in the roster yet.
// Codes already present, or repeated within the upload, keep the first entry.
func (r *AccessCodeRepository) Merge(ctx context.Context, entries []entities.AccessCodeEntry) (MergeReport, error) {
	base, recs, err := readRecords(ctx, r.store, sheet.TableAccessCodes)
	if err != nil {
		return MergeReport{}, err
	}

	seen := make(map[string]struct{}, len(recs)+len(entries))
	for _, rec := range recs {
		seen[rec.Get("access_code")] = struct{}{}
	}

	var report MergeReport
	for _, e := range entries {
		code := strings.TrimSpace(e.AccessCode)
		if code == "" {
			report.Skipped++
			continue
		}
		if _, dup := seen[code]; dup {
			report.Skipped++
			continue
		}
		seen[code] = struct{}{}
		e.AccessCode = code
		recs = append(recs, accessCodeToRecord(e))
		report.Added++
	}

	if report.Added == 0 {
		return report, nil
	}

	if err := writeRecords(ctx, r.store, sheet.TableAccessCodes, accessCodeColumns, base, recs); err != nil {
		return MergeReport{}, err
	}
	return report, nil
}

func accessCodeFromRecord(rec sheet.Record) *entities.AccessCodeEntry {
	return &entities.AccessCodeEntry{
		AccessCode: rec.Get("access_code"),
		Activated:  rec.Bool("status"),
		Name:       rec.Get("name"),
		NRIC:       rec.Get("nric"),
		Email:      rec.Get("email"),
	}
}

func accessCodeToRecord(e entities.AccessCodeEntry) sheet.Record {
	return sheet.Record{
		"access_code": e.AccessCode,
		"status":      sheet.FormatBool(e.Activated),
		"name":        e.Name,
		"nric":        e.NRIC,
		"email":       e.Email,
	}
}
