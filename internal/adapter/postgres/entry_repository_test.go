package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/YelzhanWeb/waste-tracker/internal/domain"
)

type execCall struct {
	sql  string
	args []any
}

type fakeTag int64

func (t fakeTag) RowsAffected() int64 { return int64(t) }

type fakeDB struct {
	execs    []execCall
	affected int64
	execErr  error
	rows     []domain.Record
	queryErr error
}

func (f *fakeDB) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{recs: f.rows, idx: -1}, nil
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (CommandTag, error) {
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	if f.execErr != nil {
		return nil, f.execErr
	}
	return fakeTag(f.affected), nil
}

func (f *fakeDB) Close() {}

type fakeRows struct {
	recs []domain.Record
	idx  int
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.recs)
}

func (r *fakeRows) Scan(dest ...any) error {
	rec := r.recs[r.idx]
	strs := []string{rec.ID, rec.Timestamp, rec.Station, rec.WasteType, rec.ItemName, rec.QuantityType}
	for i, s := range strs {
		*(dest[i].(*string)) = s
	}
	*(dest[6].(*float64)) = rec.QuantityValue
	*(dest[7].(*string)) = rec.Notes
	return nil
}

func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Close()     {}

func TestEntryRepository_Append(t *testing.T) {
	db := &fakeDB{}
	repo := NewEntryRepository(db)

	e := domain.WasteEntry{
		ID: "abc", Timestamp: "2026-07-01T08:00:00Z", Station: domain.StationMiddle,
		WasteType: domain.WasteOverproduction, ItemName: "farro", QuantityType: domain.QuantityQuarts,
		QuantityValue: 1.5, Notes: "Sunday prep",
	}
	if err := repo.Append(context.Background(), e); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if len(db.execs) != 1 || !strings.Contains(db.execs[0].sql, "INSERT INTO waste_entries") {
		t.Fatalf("unexpected exec calls %+v", db.execs)
	}
	args := db.execs[0].args
	if args[0] != "abc" || args[2] != "middle" || args[6] != 1.5 || args[7] != "Sunday prep" {
		t.Errorf("unexpected insert args %v", args)
	}
}

func TestEntryRepository_LoadAll(t *testing.T) {
	db := &fakeDB{rows: []domain.Record{
		{ID: "1", Timestamp: "t1", Station: "grill", WasteType: "trim", ItemName: "steak", QuantityType: "lbs", QuantityValue: 2},
		{ID: "", Timestamp: "t2", Station: "grill", WasteType: "trim", ItemName: "ghost", QuantityType: "lbs", QuantityValue: 1},
		{ID: "3", Timestamp: "t3", Station: "pasta", WasteType: "spoilage", ItemName: "cream", QuantityType: "qt", QuantityValue: 0.5},
	}}
	repo := NewEntryRepository(db)

	result, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(result.Entries) != 2 || result.Entries[0].ID != "1" || result.Entries[1].ID != "3" {
		t.Errorf("unexpected entries %+v", result.Entries)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Line != 2 {
		t.Errorf("unexpected skipped %+v", result.Skipped)
	}
}

func TestEntryRepository_DeleteByID(t *testing.T) {
	db := &fakeDB{affected: 1}
	repo := NewEntryRepository(db)

	res, err := repo.DeleteByID(context.Background(), "abc")
	if err != nil || res.Removed != 1 || res.DroppedCorrupt != 0 {
		t.Fatalf("DeleteByID: res=%+v err=%v", res, err)
	}
	if db.execs[0].args[0] != "abc" {
		t.Errorf("unexpected delete args %v", db.execs[0].args)
	}

	db.execErr = errors.New("connection reset")
	if _, err := repo.DeleteByID(context.Background(), "abc"); err == nil {
		t.Error("expected error to propagate")
	}
}

func TestEnsureSchema(t *testing.T) {
	db := &fakeDB{}
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if !strings.Contains(db.execs[0].sql, "CREATE TABLE IF NOT EXISTS waste_entries") {
		t.Errorf("unexpected schema sql %q", db.execs[0].sql)
	}
}
