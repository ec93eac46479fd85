package interfaces

import (
	"context"
	"errors"

	"github.com/YelzhanWeb/waste-tracker/internal/domain"
)

// Команды для сервисов
type LogEntryCommand struct {
	Station       string
	WasteType     string
	ItemName      string
	QuantityType  string
	QuantityValue float64
	Notes         string
}

// Интерфейсы Сервисов (Business Logic)
type WasteLogService interface {
	LogEntry(ctx context.Context, cmd LogEntryCommand) (domain.WasteEntry, error)
	Entries(ctx context.Context) ([]domain.WasteEntry, error)
	Search(ctx context.Context, text string) ([]domain.WasteEntry, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
	Repair(ctx context.Context) (LoadResult, error)
}

var ErrNothingToExport = errors.New("no entries available to export")

type ExportService interface {
	Export(ctx context.Context) (ExportResult, error)
}

type ExportResult struct {
	Path string
	Rows int
}
