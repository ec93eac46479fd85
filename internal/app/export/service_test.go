package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/YelzhanWeb/waste-tracker/internal/adapter/jsonl"
	"github.com/YelzhanWeb/waste-tracker/internal/adapter/logger"
	"github.com/YelzhanWeb/waste-tracker/internal/adapter/tabular"
	"github.com/YelzhanWeb/waste-tracker/internal/domain"
	"github.com/YelzhanWeb/waste-tracker/internal/interfaces"
)

func sampleEntries() []domain.WasteEntry {
	return []domain.WasteEntry{
		{ID: "1", Timestamp: "2026-05-01T10:00:00Z", Station: domain.StationGrill, WasteType: domain.WasteTrim, ItemName: "steak", QuantityType: domain.QuantityPounds, QuantityValue: 2.5, Notes: "fat cap"},
		{ID: "2", Timestamp: "2026-05-01T11:00:00Z", Station: domain.StationPasta, WasteType: domain.WasteSpoilage, ItemName: "ricotta", QuantityType: domain.QuantityQuarts, QuantityValue: 0.1},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleEntries())

	want := [][]string{
		{"1", "2026-05-01T10:00:00Z", "grill", "trim", "steak", "lbs", "2.5", "fat cap"},
		{"2", "2026-05-01T11:00:00Z", "pasta", "spoilage", "ricotta", "qt", "0.1", ""},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows mismatch:\n got %v\nwant %v", rows, want)
	}
	if len(Header) != 8 || Header[0] != "id" || Header[7] != "notes" {
		t.Errorf("unexpected header %v", Header)
	}
	if len(Rows(nil)) != 0 {
		t.Error("expected no rows for empty input")
	}
}

func TestService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := jsonl.NewStore(filepath.Join(dir, "data", "log.jsonl"), false, nil)
	for _, e := range sampleEntries() {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	path := filepath.Join(dir, "reports", "export.csv")
	svc := NewService(store, tabular.ForPath(path), path, logger.Nop())

	result, err := svc.Export(ctx)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.Rows != 2 || result.Path != path {
		t.Errorf("unexpected result %+v", result)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != strings.Join(Header, ",") {
		t.Errorf("unexpected header line %q", lines[0])
	}
	if len(lines) != 3 {
		t.Errorf("expected header plus 2 rows, got %d lines", len(lines))
	}
}

func TestService_ExportEmptyLog(t *testing.T) {
	dir := t.TempDir()
	store := jsonl.NewStore(filepath.Join(dir, "log.jsonl"), false, nil)
	path := filepath.Join(dir, "export.csv")
	svc := NewService(store, tabular.CSVWriter{}, path, logger.Nop())

	if _, err := svc.Export(context.Background()); !errors.Is(err, interfaces.ErrNothingToExport) {
		t.Errorf("expected ErrNothingToExport, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an empty log")
	}
}
