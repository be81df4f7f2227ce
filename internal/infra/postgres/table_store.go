package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/myflowlab/stem-certification-quiz/internal/sheet"
)

const schema = `
	CREATE TABLE IF NOT EXISTS sheet_rows (
		sheet   TEXT    NOT NULL,
		row_num INTEGER NOT NULL,
		cells   TEXT[]  NOT NULL,
		PRIMARY KEY (sheet, row_num)
	)
`

// TableStore keeps worksheet-shaped tables in PostgreSQL.
// Row 0 of every sheet holds the header.
type TableStore struct {
	db         DBTX
	transactor *Transactor
}

// NewTableStore creates a TableStore. The transactor makes every overwrite atomic.
func NewTableStore(db DBTX, transactor *Transactor) *TableStore {
	return &TableStore{db: db, transactor: transactor}
}

// EnsureSchema creates the backing table if it does not exist.
func (s *TableStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// ReadTable loads all rows of a sheet in order.
func (s *TableStore) ReadTable(ctx context.Context, name string) (sheet.Table, error) {
	query := `
		SELECT row_num, cells
		FROM sheet_rows
		WHERE sheet = $1
		ORDER BY row_num
	`

	rows, err := s.db.Query(ctx, query, name)
	if err != nil {
		return sheet.Table{}, fmt.Errorf("read table %s: %w", name, err)
	}
	defer rows.Close()

	var t sheet.Table
	for rows.Next() {
		var (
			num   int
			cells []string
		)
		if err := rows.Scan(&num, &cells); err != nil {
			return sheet.Table{}, fmt.Errorf("scan row: %w", err)
		}
		if num == 0 {
			t.Header = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return sheet.Table{}, fmt.Errorf("iterate rows: %w", err)
	}

	return t, nil
}

// WriteTable replaces every row of a sheet inside one transaction.
func (s *TableStore) WriteTable(ctx context.Context, name string, t sheet.Table) error {
	return s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM sheet_rows WHERE sheet = $1", name); err != nil {
			return fmt.Errorf("clear table %s: %w", name, err)
		}

		batch := &pgx.Batch{}
		insert := "INSERT INTO sheet_rows (sheet, row_num, cells) VALUES ($1, $2, $3)"
		batch.Queue(insert, name, 0, nonNil(t.Header))
		for i, row := range t.Rows {
			batch.Queue(insert, name, i+1, nonNil(row))
		}

		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("insert row %d of %s: %w", i, name, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}

		return nil
	})
}

func nonNil(cells []string) []string {
	if cells == nil {
		return []string{}
	}
	return cells
}
