package report

import (
	"fmt"

	"scorecard/internal/pipeline"

	"github.com/xuri/excelize/v2"
)

const rankingSheet = "IV Ranking"

// WriteWorkbook exports the sweep result to an Excel workbook: one ranking
// sheet plus a level-statistics sheet per variable.
func WriteWorkbook(path string, result *pipeline.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return fmt.Errorf("failed to rename ranking sheet: %w", err)
	}

	headers := []interface{}{"Variable", "IV", "Efficiency", "Levels", "Goods", "Bads"}
	if err := writeRow(f, rankingSheet, 1, headers); err != nil {
		return err
	}
	for i, r := range result.Reports {
		row := []interface{}{r.Variable, r.IV, r.Efficiency, len(r.Levels), r.Goods, r.Bads}
		if err := writeRow(f, rankingSheet, i+2, row); err != nil {
			return err
		}
	}

	for _, r := range result.Reports {
		sheet := sheetName(r.Variable)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}

		levelHeaders := []interface{}{"Level", "Good", "Bad", "Total", "PctGood", "PctBad", "WOE", "IV", "Smoothed"}
		if err := writeRow(f, sheet, 1, levelHeaders); err != nil {
			return err
		}
		for i, lvl := range r.Levels {
			row := []interface{}{lvl.Label, lvl.Good, lvl.Bad, lvl.Total, lvl.PctGood, lvl.PctBad, lvl.WOE, lvl.IV, lvl.Smoothed}
			if err := writeRow(f, sheet, i+2, row); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// sheetName keeps variable names within Excel's 31-character sheet limit.
func sheetName(variable string) string {
	if len(variable) > 31 {
		return variable[:31]
	}
	return variable
}
