// Package export writes render results into host documents. The writer
// only performs cell-level placement; it takes no part in
// interpretation or layout decisions.
package export

import (
	"fmt"

	"github.com/ppx007/smart-attendance/internal/report"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExcelWriter places a RenderResult into an .xlsx workbook
type ExcelWriter struct {
	logger *zap.Logger
}

// NewExcelWriter creates a writer
func NewExcelWriter(logger *zap.Logger) *ExcelWriter {
	return &ExcelWriter{logger: logger}
}

// Write creates a workbook with one sheet named sheetName and saves it
// to outputPath. The location string is passed through from the caller;
// the writer knows nothing about how it was chosen.
func (w *ExcelWriter) Write(result *report.RenderResult, sheetName, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	styleIDs, err := w.buildStyles(f, result)
	if err != nil {
		return fmt.Errorf("failed to build styles: %w", err)
	}

	headerRows := len(result.Headers)
	columnTitleRow := headerRows - 1

	for r, row := range result.Headers {
		styleKey := "header"
		if r < columnTitleRow {
			styleKey = "title"
		}
		for c, value := range row {
			cellRef, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("invalid cell coordinate: %w", err)
			}
			w.setCell(f, sheetName, cellRef, value)
			if id, ok := styleIDs[styleKey]; ok {
				_ = f.SetCellStyle(sheetName, cellRef, cellRef, id)
			}
		}
	}

	for r, row := range result.Rows {
		for c, value := range row {
			cellRef, err := excelize.CoordinatesToCellName(c+1, headerRows+r+1)
			if err != nil {
				return fmt.Errorf("invalid cell coordinate: %w", err)
			}
			w.setCell(f, sheetName, cellRef, value)
			if id, ok := styleIDs["body"]; ok {
				_ = f.SetCellStyle(sheetName, cellRef, cellRef, id)
			}
		}
	}

	for _, merge := range result.Merges {
		top, err := excelize.CoordinatesToCellName(merge.StartCol+1, merge.StartRow+1)
		if err != nil {
			return fmt.Errorf("invalid merge start: %w", err)
		}
		bottom, err := excelize.CoordinatesToCellName(merge.EndCol+1, merge.EndRow+1)
		if err != nil {
			return fmt.Errorf("invalid merge end: %w", err)
		}
		if err := f.MergeCell(sheetName, top, bottom); err != nil {
			return fmt.Errorf("failed to merge %s:%s: %w", top, bottom, err)
		}
	}

	for i, width := range result.ColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("invalid column index: %w", err)
		}
		// Pixel widths map to Excel character units at roughly 7px each
		if err := f.SetColWidth(sheetName, col, col, float64(width)/7.0); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, height := range result.RowHeights {
		if err := f.SetRowHeight(sheetName, i+1, float64(height)); err != nil {
			return fmt.Errorf("failed to set row height: %w", err)
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("Workbook written",
		zap.String("sheet", sheetName),
		zap.String("path", outputPath),
		zap.Int("rows", len(result.Rows)))

	return nil
}

// buildStyles registers the result's region styles with the workbook
func (w *ExcelWriter) buildStyles(f *excelize.File, result *report.RenderResult) (map[string]int, error) {
	ids := make(map[string]int, len(result.Styles))
	for region, style := range result.Styles {
		id, err := f.NewStyle(toExcelizeStyle(style))
		if err != nil {
			return nil, fmt.Errorf("style for region %q: %w", region, err)
		}
		ids[region] = id
	}
	return ids, nil
}

func toExcelizeStyle(style report.CellStyle) *excelize.Style {
	s := &excelize.Style{
		Font: &excelize.Font{
			Bold: style.Bold,
		},
	}
	if style.FontSize > 0 {
		s.Font.Size = float64(style.FontSize)
	}
	if style.FontColor != "" {
		s.Font.Color = style.FontColor
	}
	if style.FillColor != "" {
		s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{style.FillColor}}
	}
	if style.Align != "" {
		s.Alignment = &excelize.Alignment{Horizontal: style.Align, Vertical: "center"}
	}
	if style.Border {
		s.Border = []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		}
	}
	return s
}

// setCell writes one value, logging rather than failing on bad cells
func (w *ExcelWriter) setCell(f *excelize.File, sheet, cell string, value any) {
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		w.logger.Warn("Failed to set cell value",
			zap.String("sheet", sheet),
			zap.String("cell", cell),
			zap.Error(err))
	}
}
