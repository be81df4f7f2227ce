// Package repository maps worksheet rows to domain entities.
// Every mutation reads the whole table, changes it in memory and overwrites it.
package repository

import (
	"context"
	"fmt"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/sheet"
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, entities.ErrStorageUnavailable, err)
}

func readRecords(ctx context.Context, store sheet.Store, name string) (sheet.Table, []sheet.Record, error) {
	t, err := store.ReadTable(ctx, name)
	if err != nil {
		return sheet.Table{}, nil, unavailable("read "+name, err)
	}
	return t, t.Records(), nil
}

func writeRecords(ctx context.Context, store sheet.Store, name string, columns []string, base sheet.Table, recs []sheet.Record) error {
	t := sheet.FromRecords(columns, base.Header, recs)
	if err := store.WriteTable(ctx, name, t); err != nil {
		return unavailable("write "+name, err)
	}
	return nil
}
