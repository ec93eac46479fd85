package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/YelzhanWeb/waste-tracker/internal/clock"
)

// TimestampLayout is the ISO-8601 layout used for new entries.
const TimestampLayout = time.RFC3339Nano

// WasteEntry represents one logged waste event. Entries are values and are
// never modified after creation.
type WasteEntry struct {
	ID            string
	Timestamp     string
	Station       Station
	WasteType     WasteType
	ItemName      string
	QuantityType  QuantityType
	QuantityValue float64
	Notes         string
}

// NewEntryInput carries the fields a cook supplies for a new entry.
type NewEntryInput struct {
	Station       Station
	WasteType     WasteType
	ItemName      string
	QuantityType  QuantityType
	QuantityValue float64
	Notes         string
}

// Record is the flat serialized form of an entry, one per log line.
type Record struct {
	ID            string  `json:"id"`
	Timestamp     string  `json:"timestamp"`
	Station       string  `json:"station"`
	WasteType     string  `json:"waste_type"`
	ItemName      string  `json:"item_name"`
	QuantityType  string  `json:"quantity_type"`
	QuantityValue float64 `json:"quantity_value"`
	Notes         string  `json:"notes"`
}

var (
	ErrInvalidStation      = errors.New("invalid station")
	ErrInvalidWasteType    = errors.New("invalid waste type")
	ErrInvalidQuantityType = errors.New("invalid quantity type")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrEmptyItemName       = errors.New("item name cannot be empty")
	ErrMissingField        = errors.New("missing required field")
)

// EntryFactory mints new entries. It owns id and timestamp assignment.
type EntryFactory struct {
	clock clock.Clock
	newID func() string
}

func NewEntryFactory(clk clock.Clock) *EntryFactory {
	return &EntryFactory{
		clock: clk,
		newID: uuid.NewString,
	}
}

// Create validates the input and returns an entry with a fresh id and the
// current timestamp.
func (f *EntryFactory) Create(in NewEntryInput) (WasteEntry, error) {
	if err := in.Validate(); err != nil {
		return WasteEntry{}, err
	}

	return WasteEntry{
		ID:            f.newID(),
		Timestamp:     f.clock.Now().Format(TimestampLayout),
		Station:       in.Station,
		WasteType:     in.WasteType,
		ItemName:      strings.TrimSpace(in.ItemName),
		QuantityType:  in.QuantityType,
		QuantityValue: in.QuantityValue,
		Notes:         strings.TrimSpace(in.Notes),
	}, nil
}

// Validate applies the creation-time rules.
func (in NewEntryInput) Validate() error {
	if !in.Station.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStation, in.Station)
	}
	if !in.WasteType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidWasteType, in.WasteType)
	}
	if strings.TrimSpace(in.ItemName) == "" {
		return ErrEmptyItemName
	}
	if !in.QuantityType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidQuantityType, in.QuantityType)
	}
	if math.IsNaN(in.QuantityValue) || math.IsInf(in.QuantityValue, 0) || in.QuantityValue <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, in.QuantityValue)
	}
	return nil
}

// Reconstruct rebuilds a previously created entry. The id and timestamp are
// taken from the record as-is. Enumerated fields are not checked so that
// older or hand-edited logs still load.
func Reconstruct(rec Record) (WasteEntry, error) {
	if rec.ID == "" {
		return WasteEntry{}, fmt.Errorf("%w: id", ErrMissingField)
	}
	if rec.Timestamp == "" {
		return WasteEntry{}, fmt.Errorf("%w: timestamp", ErrMissingField)
	}

	return WasteEntry{
		ID:            rec.ID,
		Timestamp:     rec.Timestamp,
		Station:       Station(rec.Station),
		WasteType:     WasteType(rec.WasteType),
		ItemName:      rec.ItemName,
		QuantityType:  QuantityType(rec.QuantityType),
		QuantityValue: rec.QuantityValue,
		Notes:         rec.Notes,
	}, nil
}

// Record returns the serialized form of the entry.
func (e WasteEntry) Record() Record {
	return Record{
		ID:            e.ID,
		Timestamp:     e.Timestamp,
		Station:       string(e.Station),
		WasteType:     string(e.WasteType),
		ItemName:      e.ItemName,
		QuantityType:  string(e.QuantityType),
		QuantityValue: e.QuantityValue,
		Notes:         e.Notes,
	}
}

// Date returns the calendar day part of the timestamp.
func (e WasteEntry) Date() string {
	if len(e.Timestamp) < 10 {
		return e.Timestamp
	}
	return e.Timestamp[:10]
}

// Marshal encodes the entry as a single JSON object without a trailing newline.
func Marshal(e WasteEntry) ([]byte, error) {
	data, err := json.Marshal(e.Record())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entry %s: %w", e.ID, err)
	}
	return data, nil
}

// wireRecord distinguishes absent fields from zero values while decoding.
type wireRecord struct {
	ID            *string  `json:"id"`
	Timestamp     *string  `json:"timestamp"`
	Station       *string  `json:"station"`
	WasteType     *string  `json:"waste_type"`
	ItemName      *string  `json:"item_name"`
	QuantityType  *string  `json:"quantity_type"`
	QuantityValue *float64 `json:"quantity_value"`
	Notes         *string  `json:"notes"`
}

// Unmarshal decodes one log line. Every field except notes must be present.
func Unmarshal(data []byte) (WasteEntry, error) {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return WasteEntry{}, fmt.Errorf("failed to decode entry: %w", err)
	}

	required := []struct {
		name    string
		present bool
	}{
		{"id", w.ID != nil},
		{"timestamp", w.Timestamp != nil},
		{"station", w.Station != nil},
		{"waste_type", w.WasteType != nil},
		{"item_name", w.ItemName != nil},
		{"quantity_type", w.QuantityType != nil},
		{"quantity_value", w.QuantityValue != nil},
	}
	for _, f := range required {
		if !f.present {
			return WasteEntry{}, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	rec := Record{
		ID:            *w.ID,
		Timestamp:     *w.Timestamp,
		Station:       *w.Station,
		WasteType:     *w.WasteType,
		ItemName:      *w.ItemName,
		QuantityType:  *w.QuantityType,
		QuantityValue: *w.QuantityValue,
	}
	if w.Notes != nil {
		rec.Notes = *w.Notes
	}

	return Reconstruct(rec)
}
