// Package tabular loads CSV and Excel files into the in-memory observation
// table, coercing columns to numeric where every non-missing value parses and
// inferring a semantic role per field.
package tabular

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"scorecard/domain/core"
	domaintabular "scorecard/domain/tabular"
	"scorecard/internal"

	"github.com/xuri/excelize/v2"
)

// missing value markers accepted in raw cells
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
}

// discreteCardinalityMax bounds how many distinct integer values a numeric
// column may have and still be treated as naturally discrete.
const discreteCardinalityMax = 12

// DataReader handles reading Excel and CSV files into an observation table
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	target   string
	logger   *internal.Logger
}

// NewDataReader creates a reader for the given file. The target name marks
// which field is loaded as the binary target.
func NewDataReader(filePath, target string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		target:   target,
		logger:   internal.DefaultLogger,
	}
}

// Read loads the file into a table.
func (r *DataReader) Read() (*domaintabular.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s file must have a header row and at least one data row", strings.ToUpper(r.fileType))
	}
	return r.buildTable(rows)
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("[DataReader] CSV file read (%d rows)", len(rows))
	return rows, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	r.logger.Debug("[DataReader] sheet %s read (%d rows)", sheets[0], len(rows))
	return rows, nil
}

// buildTable converts raw string rows into a typed observation table.
func (r *DataReader) buildTable(rows [][]string) (*domaintabular.Table, error) {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	data := rows[1:]

	tbl := domaintabular.NewTable(filepath.Base(r.filePath))
	for col, name := range headers {
		if name == "" {
			return nil, fmt.Errorf("%w: column %d has an empty header", core.ErrInputShape, col)
		}

		cells := make([]string, len(data))
		for i, row := range data {
			if col < len(row) {
				cells[i] = strings.TrimSpace(row[col])
			}
		}

		numeric, ok := coerceNumeric(cells)
		if !ok {
			if err := tbl.AddLabels(name, domaintabular.RoleCategorical, normalizeLabels(cells)); err != nil {
				return nil, err
			}
			continue
		}

		role := inferNumericRole(name, r.target, numeric)
		if err := tbl.AddNumeric(name, role, numeric); err != nil {
			return nil, err
		}
	}

	if r.target != "" {
		if _, err := tbl.Target(r.target); err != nil {
			return nil, fmt.Errorf("target %s: %w", r.target, err)
		}
	}

	r.logger.Info("[DataReader] loaded %s: %d rows, %d fields", tbl.Name, tbl.Rows(), len(tbl.Fields()))
	return tbl, nil
}

// coerceNumeric parses all cells as float64, mapping missing markers to NaN.
// It reports false when any non-missing cell fails to parse.
func coerceNumeric(cells []string) ([]float64, bool) {
	out := make([]float64, len(cells))
	sawValue := false
	for i, cell := range cells {
		if missingMarkers[strings.ToLower(cell)] {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
		sawValue = true
	}
	return out, sawValue
}

// normalizeLabels maps missing markers to the empty string.
func normalizeLabels(cells []string) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		if missingMarkers[strings.ToLower(cell)] {
			continue
		}
		out[i] = cell
	}
	return out
}

// inferNumericRole classifies a numeric column as target, naturally discrete,
// or continuous.
func inferNumericRole(name, target string, values []float64) domaintabular.Role {
	if name == target {
		return domaintabular.RoleTarget
	}

	distinct := make(map[float64]struct{})
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v != math.Trunc(v) {
			return domaintabular.RoleContinuous
		}
		distinct[v] = struct{}{}
	}
	if len(distinct) <= discreteCardinalityMax {
		return domaintabular.RoleDiscrete
	}
	return domaintabular.RoleContinuous
}
