package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/YelzhanWeb/waste-tracker/internal/interfaces"
)

// SheetName is the worksheet used for XLSX exports.
const SheetName = "waste_log"

// ForPath picks the writer matching the export file extension. Anything
// other than .xlsx is written as CSV.
func ForPath(path string) interfaces.TableWriter {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return XLSXWriter{NumericColumns: []string{"quantity_value"}}
	}
	return CSVWriter{}
}

type CSVWriter struct{}

func (CSVWriter) WriteTable(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	return file.Close()
}

// XLSXWriter writes a single-sheet workbook. Cells in NumericColumns are
// stored as numbers so spreadsheet formulas work on them.
type XLSXWriter struct {
	NumericColumns []string
}

func (x XLSXWriter) WriteTable(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	numeric := make(map[int]bool)
	for i, col := range header {
		for _, n := range x.NumericColumns {
			if col == n {
				numeric[i] = true
			}
		}
	}

	if err := setRow(f, 1, toCells(header, nil)); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, i+2, toCells(row, numeric)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func toCells(row []string, numeric map[int]bool) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		if numeric[i] {
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				cells[i] = n
				continue
			}
		}
		cells[i] = v
	}
	return cells
}

func setRow(f *excelize.File, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
