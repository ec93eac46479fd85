package wastelog

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/waste-tracker/internal/adapter/logger"
	"github.com/YelzhanWeb/waste-tracker/internal/clock"
	"github.com/YelzhanWeb/waste-tracker/internal/domain"
	"github.com/YelzhanWeb/waste-tracker/internal/interfaces"
)

type Service struct {
	repo      interfaces.EntryRepository
	publisher interfaces.EventPublisher
	factory   *domain.EntryFactory
	clock     clock.Clock
	logger    logger.Logger
}

// NewService wires the log service. publisher may be nil when event
// notifications are disabled.
func NewService(repo interfaces.EntryRepository, publisher interfaces.EventPublisher, clk clock.Clock, logger logger.Logger) *Service {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		factory:   domain.NewEntryFactory(clk),
		clock:     clk,
		logger:    logger,
	}
}

var _ interfaces.WasteLogService = (*Service)(nil)

func (s *Service) LogEntry(ctx context.Context, cmd interfaces.LogEntryCommand) (domain.WasteEntry, error) {
	entry, err := s.factory.Create(domain.NewEntryInput{
		Station:       domain.Station(cmd.Station),
		WasteType:     domain.WasteType(cmd.WasteType),
		ItemName:      cmd.ItemName,
		QuantityType:  domain.QuantityType(cmd.QuantityType),
		QuantityValue: cmd.QuantityValue,
		Notes:         cmd.Notes,
	})
	if err != nil {
		s.logger.Error("validation_failed", "Entry validation failed", "", nil, err)
		return domain.WasteEntry{}, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("append_failed", "Failed to append entry", entry.ID, nil, err)
		return domain.WasteEntry{}, err
	}
	s.logger.Debug("entry_logged", "Entry appended to log", entry.ID, map[string]interface{}{
		"station":  entry.Station,
		"item":     entry.ItemName,
		"quantity": entry.QuantityValue,
		"unit":     entry.QuantityType,
	})

	// The entry is already durable; a failed notification is not a failed log.
	if err := s.publisher.PublishWasteEvent(ctx, interfaces.NewLoggedMessage(entry, s.clock.Now())); err != nil {
		s.logger.Error("publish_failed", "Failed to publish entry event", entry.ID, nil, err)
	}

	return entry, nil
}

func (s *Service) Entries(ctx context.Context) ([]domain.WasteEntry, error) {
	result, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	if len(result.Skipped) > 0 {
		s.logger.Warn("log_has_corrupt_lines", "Some log lines were skipped", "", map[string]interface{}{
			"skipped": len(result.Skipped),
		})
	}
	return result.Entries, nil
}

func (s *Service) Search(ctx context.Context, text string) ([]domain.WasteEntry, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FindByItem(entries, text), nil
}

// Delete removes the entry with id. Zero removed means it was not found.
func (s *Service) Delete(ctx context.Context, id string) (interfaces.DeleteResult, error) {
	result, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error("delete_failed", "Failed to delete entry", id, nil, err)
		return interfaces.DeleteResult{}, err
	}
	if result.Removed == 0 {
		return result, nil
	}

	msg := interfaces.WasteEventMessage{
		Kind:       interfaces.EventEntryDeleted,
		EntryID:    id,
		OccurredAt: s.clock.Now(),
	}
	if err := s.publisher.PublishWasteEvent(ctx, msg); err != nil {
		s.logger.Error("publish_failed", "Failed to publish delete event", id, nil, err)
	}

	return result, nil
}

// Repair drops unreadable records from the store.
func (s *Service) Repair(ctx context.Context) (interfaces.LoadResult, error) {
	result, err := s.repo.Compact(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to compact log: %w", err)
	}
	return result, nil
}

type nopPublisher struct{}

func (nopPublisher) PublishWasteEvent(context.Context, interfaces.WasteEventMessage) error {
	return nil
}
