package interfaces

import (
	"context"

	"github.com/YelzhanWeb/waste-tracker/internal/domain"
)

// SkippedLine describes a stored record that could not be turned back into
// an entry.
type SkippedLine struct {
	Line   int
	Reason string
}

// LoadResult is a full scan of the store in append order.
type LoadResult struct {
	Entries []domain.WasteEntry
	Skipped []SkippedLine
}

// DeleteResult reports a delete. DroppedCorrupt counts unreadable records
// that did not survive the rewrite.
type DeleteResult struct {
	Removed        int
	DroppedCorrupt int
}

// Интерфейсы Репозиториев (Adapter/JSONL, Adapter/Postgres)
type EntryRepository interface {
	Append(ctx context.Context, entry domain.WasteEntry) error
	LoadAll(ctx context.Context) (LoadResult, error)
	DeleteByID(ctx context.Context, id string) (DeleteResult, error)
	Compact(ctx context.Context) (LoadResult, error)
}

// TableWriter receives the flattened export (Adapter/Tabular).
type TableWriter interface {
	WriteTable(path string, header []string, rows [][]string) error
}
