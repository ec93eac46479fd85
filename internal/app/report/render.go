package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/YelzhanWeb/waste-tracker/internal/domain"
)

const topItemsShown = 5

// Render prints the unit-segregated report in the layout cooks are used to.
func Render(w io.Writer, s UnitSummary) {
	fmt.Fprintf(w, "Total entries: %d\n", s.TotalEntries)

	fmt.Fprintln(w, "\nTotal waste by unit")
	fmt.Fprintf(w, "  Weight: %.2f lbs\n", s.Totals.Weight)
	fmt.Fprintf(w, "  Portions: %.0f\n", s.Totals.Portions)
	fmt.Fprintf(w, "  Volume: %.2f qt\n", s.Totals.Volume)

	fmt.Fprintln(w, "\n** Problem Waste (excluding trim) **")
	fmt.Fprintf(w, "  Weight: %.2f lbs\n", s.Problem.Weight)
	if s.Problem.Portions > 0 {
		fmt.Fprintf(w, "  Portions: %.0f\n", s.Problem.Portions)
	}
	if s.Problem.Volume > 0 {
		fmt.Fprintf(w, "  Volume: %.2f qt\n", s.Problem.Volume)
	}

	fmt.Fprintln(w, "\nBy waste type:")
	for _, wt := range domain.AllWasteTypes() {
		b := s.ByWasteType[wt]
		if b.IsZero() {
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", wt, formatBuckets(b))
	}

	fmt.Fprintln(w, "\nProblem waste by station:")
	for _, st := range domain.AllStations() {
		b := s.ProblemByStation[st]
		if b.IsZero() {
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", st, formatBuckets(b))
	}

	fmt.Fprintln(w, "\nTop items by frequency:")
	for _, item := range s.TopItems(topItemsShown) {
		var parts []string
		for _, wt := range domain.AllWasteTypes() {
			ts, ok := item.ByType[wt]
			if !ok || ts.Count == 0 {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s %s", formatBuckets(ts.Buckets), wt))
		}
		fmt.Fprintf(w, "  %s: %d entries (%s)\n", item.Name, item.Count, strings.Join(parts, "; "))
	}
	fmt.Fprintln(w)
}

// RenderRaw prints unit-agnostic totals. Mixed units are summed as-is.
func RenderRaw(w io.Writer, s Summary) {
	fmt.Fprintf(w, "Total entries: %d\n", s.TotalEntries)

	fmt.Fprintln(w, "\nBy station:")
	for _, st := range domain.AllStations() {
		fmt.Fprintf(w, "  %-12s %.2f\n", st.Label(), s.Station(st))
	}
	fmt.Fprintln(w, "\nBy waste type:")
	for _, wt := range domain.AllWasteTypes() {
		fmt.Fprintf(w, "  %-17s %.2f\n", wt.Label(), s.WasteType(wt))
	}
	fmt.Fprintln(w, "\nBy unit:")
	for _, qt := range domain.AllQuantityTypes() {
		fmt.Fprintf(w, "  %-9s %.2f\n", qt.Label(), s.Unit(qt))
	}
	fmt.Fprintln(w)
}

func formatBuckets(b Buckets) string {
	var parts []string
	if b.Weight > 0 {
		parts = append(parts, fmt.Sprintf("%.2f lbs", b.Weight))
	}
	if b.Portions > 0 {
		parts = append(parts, fmt.Sprintf("%.0f po", b.Portions))
	}
	if b.Volume > 0 {
		parts = append(parts, fmt.Sprintf("%.2f qt", b.Volume))
	}
	return strings.Join(parts, ", ")
}
