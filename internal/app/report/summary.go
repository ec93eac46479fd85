package report

import (
	"sort"

	"github.com/YelzhanWeb/waste-tracker/internal/domain"
)

// Summary holds raw quantity totals regardless of unit. Missing keys read
// as zero through the accessor methods.
type Summary struct {
	TotalEntries int
	ByStation    map[domain.Station]float64
	ByWasteType  map[domain.WasteType]float64
	ByUnit       map[domain.QuantityType]float64
}

func (s Summary) Station(st domain.Station) float64 {
	return s.ByStation[st]
}

func (s Summary) WasteType(wt domain.WasteType) float64 {
	return s.ByWasteType[wt]
}

func (s Summary) Unit(qt domain.QuantityType) float64 {
	return s.ByUnit[qt]
}

// Summarize sums quantity_value per station, waste type and unit.
func Summarize(entries []domain.WasteEntry) Summary {
	s := Summary{
		TotalEntries: len(entries),
		ByStation:    make(map[domain.Station]float64),
		ByWasteType:  make(map[domain.WasteType]float64),
		ByUnit:       make(map[domain.QuantityType]float64),
	}
	for _, e := range entries {
		s.ByStation[e.Station] += e.QuantityValue
		s.ByWasteType[e.WasteType] += e.QuantityValue
		s.ByUnit[e.QuantityType] += e.QuantityValue
	}
	return s
}

// Buckets keeps weight, count and volume apart. Weight is in pounds.
type Buckets struct {
	Weight   float64
	Portions float64
	Volume   float64
}

func (b Buckets) IsZero() bool {
	return b.Weight <= 0 && b.Portions <= 0 && b.Volume <= 0
}

func (b *Buckets) add(e domain.WasteEntry) {
	switch e.QuantityType {
	case domain.QuantityPounds:
		b.Weight += e.QuantityValue
	case domain.QuantityOunces:
		b.Weight += e.QuantityValue / domain.OuncesPerPound
	case domain.QuantityPortions:
		b.Portions += e.QuantityValue
	case domain.QuantityQuarts:
		b.Volume += e.QuantityValue
	}
}

// ItemStat is one row of the top items section.
type ItemStat struct {
	Name   string
	Count  int
	ByType map[domain.WasteType]ItemTypeStat
}

type ItemTypeStat struct {
	Count int
	Buckets
}

// UnitSummary is the unit-segregated report. Entries with an unknown unit
// are counted but contribute to no bucket.
type UnitSummary struct {
	TotalEntries     int
	Totals           Buckets
	ByStation        map[domain.Station]Buckets
	ByWasteType      map[domain.WasteType]Buckets
	Problem          Buckets
	ProblemByStation map[domain.Station]Buckets
	ItemFrequency    map[string]int
	items            []ItemStat
}

func SummarizeByUnitClass(entries []domain.WasteEntry) UnitSummary {
	s := UnitSummary{
		TotalEntries:     len(entries),
		ByStation:        make(map[domain.Station]Buckets),
		ByWasteType:      make(map[domain.WasteType]Buckets),
		ProblemByStation: make(map[domain.Station]Buckets),
		ItemFrequency:    make(map[string]int),
	}

	itemIndex := make(map[string]int)
	for _, e := range entries {
		s.Totals.add(e)

		b := s.ByStation[e.Station]
		b.add(e)
		s.ByStation[e.Station] = b

		b = s.ByWasteType[e.WasteType]
		b.add(e)
		s.ByWasteType[e.WasteType] = b

		if e.WasteType.IsProblem() {
			s.Problem.add(e)
			b = s.ProblemByStation[e.Station]
			b.add(e)
			s.ProblemByStation[e.Station] = b
		}

		s.ItemFrequency[e.ItemName]++
		idx, ok := itemIndex[e.ItemName]
		if !ok {
			idx = len(s.items)
			itemIndex[e.ItemName] = idx
			s.items = append(s.items, ItemStat{Name: e.ItemName, ByType: make(map[domain.WasteType]ItemTypeStat)})
		}
		item := &s.items[idx]
		item.Count++
		ts := item.ByType[e.WasteType]
		ts.Count++
		ts.add(e)
		item.ByType[e.WasteType] = ts
	}

	return s
}

// TopItems returns the n most frequently logged items. Ties keep the order
// in which items were first logged.
func (s UnitSummary) TopItems(n int) []ItemStat {
	items := make([]ItemStat, len(s.items))
	copy(items, s.items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	if n >= 0 && n < len(items) {
		items = items[:n]
	}
	return items
}
