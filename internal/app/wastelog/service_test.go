package wastelog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/YelzhanWeb/waste-tracker/internal/adapter/jsonl"
	"github.com/YelzhanWeb/waste-tracker/internal/adapter/logger"
	"github.com/YelzhanWeb/waste-tracker/internal/clock"
	"github.com/YelzhanWeb/waste-tracker/internal/domain"
	"github.com/YelzhanWeb/waste-tracker/internal/interfaces"
)

type recordingPublisher struct {
	msgs []interfaces.WasteEventMessage
	err  error
}

func (p *recordingPublisher) PublishWasteEvent(_ context.Context, msg interfaces.WasteEventMessage) error {
	p.msgs = append(p.msgs, msg)
	return p.err
}

func newTestService(t *testing.T, pub interfaces.EventPublisher) (*Service, *jsonl.Store, *clock.Fixed) {
	t.Helper()
	clk := &clock.Fixed{T: time.Date(2026, 6, 1, 17, 0, 0, 0, time.UTC)}
	store := jsonl.NewStore(filepath.Join(t.TempDir(), "waste_log.jsonl"), false, nil)
	return NewService(store, pub, clk, logger.Nop()), store, clk
}

func cmd(item string) interfaces.LogEntryCommand {
	return interfaces.LogEntryCommand{
		Station:       "grill",
		WasteType:     "burnt/overcooked",
		ItemName:      item,
		QuantityType:  "po",
		QuantityValue: 2,
	}
}

func TestService_LogEntry(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc, store, _ := newTestService(t, pub)

	entry, err := svc.LogEntry(ctx, cmd("Half chicken"))
	if err != nil {
		t.Fatalf("LogEntry failed: %v", err)
	}
	if entry.Timestamp != "2026-06-01T17:00:00Z" {
		t.Errorf("unexpected timestamp %s", entry.Timestamp)
	}

	result, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(result.Entries) != 1 || result.Entries[0] != entry {
		t.Errorf("entry not persisted: %+v", result.Entries)
	}

	if len(pub.msgs) != 1 || pub.msgs[0].Kind != interfaces.EventEntryLogged || pub.msgs[0].EntryID != entry.ID {
		t.Errorf("unexpected published messages %+v", pub.msgs)
	}
}

func TestService_LogEntryValidation(t *testing.T) {
	pub := &recordingPublisher{}
	svc, store, _ := newTestService(t, pub)

	bad := cmd("steak")
	bad.QuantityValue = 0
	if _, err := svc.LogEntry(context.Background(), bad); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}

	result, _ := store.LoadAll(context.Background())
	if len(result.Entries) != 0 || len(pub.msgs) != 0 {
		t.Error("invalid entries must not be stored or published")
	}
}

func TestService_PublishFailureDoesNotFailLog(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc, _, _ := newTestService(t, pub)

	if _, err := svc.LogEntry(context.Background(), cmd("steak")); err != nil {
		t.Errorf("expected success despite publish failure, got %v", err)
	}
}

func TestService_SearchAndDelete(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc, _, clk := newTestService(t, pub)

	var logged []domain.WasteEntry
	for _, item := range []string{"Pork chop", "Brioche", "pork belly"} {
		e, err := svc.LogEntry(ctx, cmd(item))
		if err != nil {
			t.Fatalf("LogEntry failed: %v", err)
		}
		logged = append(logged, e)
		clk.Advance(time.Minute)
	}

	matches, err := svc.Search(ctx, "pork")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 2 || matches[0].ID != logged[0].ID || matches[1].ID != logged[2].ID {
		t.Fatalf("unexpected matches %+v", matches)
	}

	res, err := svc.Delete(ctx, logged[0].ID)
	if err != nil || res.Removed != 1 {
		t.Fatalf("Delete: res=%+v err=%v", res, err)
	}
	last := pub.msgs[len(pub.msgs)-1]
	if last.Kind != interfaces.EventEntryDeleted || last.EntryID != logged[0].ID {
		t.Errorf("unexpected delete event %+v", last)
	}

	entries, _ := svc.Entries(ctx)
	if len(entries) != 2 || entries[0].ID != logged[1].ID || entries[1].ID != logged[2].ID {
		t.Errorf("unexpected remaining entries %+v", entries)
	}

	published := len(pub.msgs)
	res, err = svc.Delete(ctx, "does-not-exist")
	if err != nil || res.Removed != 0 {
		t.Errorf("missing id: res=%+v err=%v", res, err)
	}
	if len(pub.msgs) != published {
		t.Error("no event expected when nothing was deleted")
	}
}
