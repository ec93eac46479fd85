package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/waste-tracker/internal/domain"
	"github.com/YelzhanWeb/waste-tracker/internal/interfaces"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS waste_entries (
		seq            BIGSERIAL PRIMARY KEY,
		id             TEXT NOT NULL UNIQUE,
		logged_at      TEXT NOT NULL,
		station        TEXT NOT NULL,
		waste_type     TEXT NOT NULL,
		item_name      TEXT NOT NULL,
		quantity_type  TEXT NOT NULL,
		quantity_value DOUBLE PRECISION NOT NULL,
		notes          TEXT NOT NULL DEFAULT ''
	)
`

// entryRepository stores entries in Postgres. seq keeps append order so
// LoadAll matches the JSONL store's ordering contract.
type entryRepository struct {
	db DB
}

func NewEntryRepository(db DB) interfaces.EntryRepository {
	return &entryRepository{db: db}
}

// EnsureSchema creates the entries table if it does not exist.
func EnsureSchema(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (r *entryRepository) Append(ctx context.Context, entry domain.WasteEntry) error {
	query := `
		INSERT INTO waste_entries (id, logged_at, station, waste_type, item_name,
		                           quantity_type, quantity_value, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	rec := entry.Record()
	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.Timestamp, rec.Station, rec.WasteType, rec.ItemName,
		rec.QuantityType, rec.QuantityValue, rec.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

func (r *entryRepository) LoadAll(ctx context.Context) (interfaces.LoadResult, error) {
	var result interfaces.LoadResult

	query := `
		SELECT id, logged_at, station, waste_type, item_name, quantity_type, quantity_value, notes
		FROM waste_entries
		ORDER BY seq
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return result, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	rowNum := 0
	for rows.Next() {
		rowNum++
		var rec domain.Record
		if err := rows.Scan(
			&rec.ID, &rec.Timestamp, &rec.Station, &rec.WasteType, &rec.ItemName,
			&rec.QuantityType, &rec.QuantityValue, &rec.Notes,
		); err != nil {
			result.Skipped = append(result.Skipped, interfaces.SkippedLine{Line: rowNum, Reason: err.Error()})
			continue
		}

		entry, err := domain.Reconstruct(rec)
		if err != nil {
			result.Skipped = append(result.Skipped, interfaces.SkippedLine{Line: rowNum, Reason: err.Error()})
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("failed to read entries: %w", err)
	}
	return result, nil
}

func (r *entryRepository) DeleteByID(ctx context.Context, id string) (interfaces.DeleteResult, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM waste_entries WHERE id = $1`, id)
	if err != nil {
		return interfaces.DeleteResult{}, fmt.Errorf("failed to delete entry: %w", err)
	}
	return interfaces.DeleteResult{Removed: int(tag.RowsAffected())}, nil
}

// Compact removes rows that cannot be reconstructed (blank id or timestamp).
func (r *entryRepository) Compact(ctx context.Context) (interfaces.LoadResult, error) {
	result, err := r.LoadAll(ctx)
	if err != nil {
		return result, err
	}
	if len(result.Skipped) == 0 {
		return result, nil
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM waste_entries WHERE id = '' OR logged_at = ''`); err != nil {
		return result, fmt.Errorf("failed to compact entries: %w", err)
	}
	return result, nil
}
