package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/YelzhanWeb/waste-tracker/internal/adapter/logger"
	"github.com/YelzhanWeb/waste-tracker/internal/app/report"
	"github.com/YelzhanWeb/waste-tracker/internal/domain"
	"github.com/YelzhanWeb/waste-tracker/internal/interfaces"
)

// Console is the line-oriented menu cooks use at the pass.
type Console struct {
	prompt   *prompter
	out      io.Writer
	wasteLog interfaces.WasteLogService
	exporter interfaces.ExportService
	logger   logger.Logger
}

func New(in io.Reader, out io.Writer, wasteLog interfaces.WasteLogService, exporter interfaces.ExportService, logger logger.Logger) *Console {
	return &Console{
		prompt:   &prompter{in: bufio.NewReader(in), out: out},
		out:      out,
		wasteLog: wasteLog,
		exporter: exporter,
		logger:   logger,
	}
}

// Run serves the menu until the user exits or input runs out.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Welcome to Waste Tracker!")
	fmt.Fprintln(c.out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printMenu()
		choice, err := c.prompt.readLine("Select an option (1-5): ")
		if err != nil {
			return c.finish(err)
		}

		var actionErr error
		switch choice {
		case "1":
			actionErr = c.logEntry(ctx)
		case "2":
			actionErr = c.showSummary(ctx)
		case "3":
			actionErr = c.export(ctx)
		case "4":
			actionErr = c.deleteEntry(ctx)
		case "5":
			fmt.Fprintln(c.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid selection. Please enter a number between 1 and 5.")
			fmt.Fprintln(c.out)
			continue
		}

		if actionErr == nil {
			continue
		}
		if errors.Is(actionErr, io.EOF) || ctx.Err() != nil {
			return c.finish(actionErr)
		}
		c.logger.Error("menu_action_failed", "Menu action failed", choice, nil, actionErr)
		fmt.Fprintf(c.out, "Error: %v\n\n", actionErr)
	}
}

func (c *Console) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Goodbye!")
		return nil
	}
	return err
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out, "Waste Tracker Menu")
	fmt.Fprintln(c.out, "1. Log new waste entry")
	fmt.Fprintln(c.out, "2. View summary report")
	fmt.Fprintln(c.out, "3. Export data to CSV")
	fmt.Fprintln(c.out, "4. Delete an entry")
	fmt.Fprintln(c.out, "5. Exit")
}

func (c *Console) logEntry(ctx context.Context) error {
	fmt.Fprintln(c.out, "\n-- Log New Waste Entry --")

	station, err := c.prompt.choice("Enter station", names(domain.AllStations()))
	if err != nil {
		return err
	}
	wasteType, err := c.prompt.choice("Enter waste type", names(domain.AllWasteTypes()))
	if err != nil {
		return err
	}
	item, err := c.prompt.required("Enter item name/description: ", "Item description cannot be empty.")
	if err != nil {
		return err
	}
	quantityType, err := c.prompt.choice("Enter quantity type", names(domain.AllQuantityTypes()))
	if err != nil {
		return err
	}
	value, err := c.prompt.positiveFloat("Enter quantity value: ")
	if err != nil {
		return err
	}

	// Ounces are stored as pounds so weight totals stay in one unit.
	if domain.QuantityType(quantityType) == domain.QuantityOunces {
		value /= domain.OuncesPerPound
		quantityType = string(domain.QuantityPounds)
		fmt.Fprintf(c.out, "  (Converted to %.2f lbs)\n", value)
	}

	notes, err := c.prompt.readLine("Enter any additional notes (optional): ")
	if err != nil {
		return err
	}

	if _, err := c.wasteLog.LogEntry(ctx, interfaces.LogEntryCommand{
		Station:       station,
		WasteType:     wasteType,
		ItemName:      item,
		QuantityType:  quantityType,
		QuantityValue: value,
		Notes:         notes,
	}); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Entry saved.")
	fmt.Fprintln(c.out)
	return nil
}

func (c *Console) showSummary(ctx context.Context) error {
	fmt.Fprintln(c.out, "\n-- Summary Report --")

	entries, err := c.wasteLog.Entries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No entries logged yet.")
		fmt.Fprintln(c.out)
		return nil
	}

	report.Render(c.out, report.SummarizeByUnitClass(entries))
	return nil
}

func (c *Console) export(ctx context.Context) error {
	fmt.Fprintln(c.out, "\n-- Export to CSV --")

	result, err := c.exporter.Export(ctx)
	if errors.Is(err, interfaces.ErrNothingToExport) {
		fmt.Fprintln(c.out, "No entries available to export.")
		fmt.Fprintln(c.out)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Data exported to %s.\n\n", result.Path)
	return nil
}

func (c *Console) deleteEntry(ctx context.Context) error {
	fmt.Fprintln(c.out, "\n-- Delete Entry --")

	entries, err := c.wasteLog.Entries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No entries to delete.")
		fmt.Fprintln(c.out)
		return nil
	}

	term, err := c.prompt.readLine("Enter item name to search (or 'list' to show all): ")
	if err != nil {
		return err
	}
	if term == "" {
		fmt.Fprintln(c.out, "Search cancelled!")
		fmt.Fprintln(c.out)
		return nil
	}

	matches := entries
	if !strings.EqualFold(term, "list") {
		matches = domain.FindByItem(entries, term)
	}
	if len(matches) == 0 {
		fmt.Fprintf(c.out, "No entries match '%s'.\n\n", term)
		return nil
	}

	fmt.Fprintf(c.out, "\nFound %d matching entries:\n", len(matches))
	for i, e := range matches {
		fmt.Fprintf(c.out, " %d. %s\n", i+1, DisplayLine(e))
	}

	raw, err := c.prompt.readLine("\nEnter number to delete (or 0 to cancel): ")
	if err != nil {
		return err
	}
	n, convErr := strconv.Atoi(raw)
	switch {
	case convErr != nil:
		fmt.Fprintln(c.out, "Invalid input. Deletion cancelled!")
		fmt.Fprintln(c.out)
		return nil
	case n == 0:
		fmt.Fprintln(c.out, "Deletion cancelled.")
		fmt.Fprintln(c.out)
		return nil
	case n < 1 || n > len(matches):
		fmt.Fprintln(c.out, "Invalid selection. Deletion cancelled!")
		fmt.Fprintln(c.out)
		return nil
	}

	selected := matches[n-1]
	fmt.Fprintf(c.out, "\nAbout to delete: %s - %s %s (%s)\n",
		selected.ItemName, formatQuantity(selected.QuantityValue), selected.QuantityType, selected.Station)
	confirm, err := c.prompt.readLine("Are you sure (y/n): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "y") {
		fmt.Fprintln(c.out, "Deletion cancelled!")
		fmt.Fprintln(c.out)
		return nil
	}

	result, err := c.wasteLog.Delete(ctx, selected.ID)
	if err != nil {
		return err
	}
	if result.Removed == 0 {
		fmt.Fprintln(c.out, "Entry no longer exists. Nothing deleted.")
		fmt.Fprintln(c.out)
		return nil
	}

	fmt.Fprintln(c.out, "Entry deleted.")
	if result.DroppedCorrupt > 0 {
		fmt.Fprintf(c.out, "  (%d unreadable log lines were also removed)\n", result.DroppedCorrupt)
	}
	fmt.Fprintln(c.out)
	return nil
}

// DisplayLine renders an entry as "[YYYY-MM-DD] item - qty unit (station)".
func DisplayLine(e domain.WasteEntry) string {
	return fmt.Sprintf("[%s] %s - %s %s (%s)",
		e.Date(), e.ItemName, formatQuantity(e.QuantityValue), e.QuantityType, e.Station)
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
