package export

import (
	"context"
	"fmt"
	"strconv"

	"github.com/YelzhanWeb/waste-tracker/internal/adapter/logger"
	"github.com/YelzhanWeb/waste-tracker/internal/domain"
	"github.com/YelzhanWeb/waste-tracker/internal/interfaces"
)

// Header is the fixed column order of every export.
var Header = []string{
	"id",
	"timestamp",
	"station",
	"waste_type",
	"item_name",
	"quantity_type",
	"quantity_value",
	"notes",
}

// Rows flattens entries into export rows, one per entry, in input order.
func Rows(entries []domain.WasteEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.Timestamp,
			string(e.Station),
			string(e.WasteType),
			e.ItemName,
			string(e.QuantityType),
			strconv.FormatFloat(e.QuantityValue, 'f', -1, 64),
			e.Notes,
		})
	}
	return rows
}

type Service struct {
	repo   interfaces.EntryRepository
	writer interfaces.TableWriter
	path   string
	logger logger.Logger
}

func NewService(repo interfaces.EntryRepository, writer interfaces.TableWriter, path string, logger logger.Logger) *Service {
	return &Service{
		repo:   repo,
		writer: writer,
		path:   path,
		logger: logger,
	}
}

var _ interfaces.ExportService = (*Service)(nil)

func (s *Service) Export(ctx context.Context) (interfaces.ExportResult, error) {
	result, err := s.repo.LoadAll(ctx)
	if err != nil {
		return interfaces.ExportResult{}, fmt.Errorf("failed to load entries: %w", err)
	}
	if len(result.Entries) == 0 {
		return interfaces.ExportResult{}, interfaces.ErrNothingToExport
	}

	rows := Rows(result.Entries)
	if err := s.writer.WriteTable(s.path, Header, rows); err != nil {
		s.logger.Error("export_failed", "Failed to write export file", "", map[string]interface{}{"path": s.path}, err)
		return interfaces.ExportResult{}, fmt.Errorf("failed to write export: %w", err)
	}

	s.logger.Info("export_written", "Entries exported", "", map[string]interface{}{
		"path":    s.path,
		"rows":    len(rows),
		"skipped": len(result.Skipped),
	})

	return interfaces.ExportResult{Path: s.path, Rows: len(rows)}, nil
}
