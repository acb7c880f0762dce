// Package export renders parse results into multi-sheet XLSX workbooks and
// bundles batch outputs into zip archives. It is the consumer of the parser's
// output structure; nothing here feeds back into parsing.
package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/rolandschnurr/dfq-converter/internal/dfq"
	"github.com/rolandschnurr/dfq-converter/internal/kfields"
)

// Sheet names are fixed; downstream tooling addresses them by name.
const (
	sheetValues          = "Messwerte"
	sheetStats           = "Statistiken"
	sheetCharacteristics = "Merkmals-Info"
	sheetHeader          = "Header-Info"
)

const timestampFormat = "yyyy-mm-dd hh:mm:ss"

// Excel builds the workbook for one parsed file: the projected value table,
// descriptive statistics, the per-characteristic field sheet and the raw
// header dump. labels translates K-field codes to display text.
func Excel(res *dfq.Result, table *dfq.Table, labels kfields.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetValues); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	tsStyle, err := newTimestampStyle(f)
	if err != nil {
		return nil, err
	}

	if err := writeValues(f, res, table, tsStyle); err != nil {
		return nil, err
	}
	if err := writeStats(f, table); err != nil {
		return nil, err
	}
	if err := writeCharacteristics(f, res, labels); err != nil {
		return nil, err
	}
	if err := writeHeader(f, res, labels); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func newTimestampStyle(f *excelize.File) (int, error) {
	format := timestampFormat
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return 0, fmt.Errorf("export: timestamp style: %w", err)
	}
	return style, nil
}

// writeValues renders the projected table plus the constant part columns
// (Teil-Nr/Teil-Bez from K1001/K1002, /1-indexed spelling preferred).
func writeValues(f *excelize.File, res *dfq.Result, table *dfq.Table, tsStyle int) error {
	partNo := res.Metadata.GetAny("N/A", "K1001/1", "K1001")
	partName := res.Metadata.GetAny("N/A", "K1002/1", "K1002")

	columns := append(append([]string{}, table.Columns...), "Teil-Nr", "Teil-Bez")
	if err := writeRow(f, sheetValues, 1, toAnys(columns)); err != nil {
		return err
	}

	for i, row := range table.Rows {
		cells := append(append([]any{}, row...), partNo, partName)
		if err := writeStyledRow(f, sheetValues, i+2, cells, tsStyle); err != nil {
			return err
		}
	}
	return nil
}

func writeStats(f *excelize.File, table *dfq.Table) error {
	if _, err := f.NewSheet(sheetStats); err != nil {
		return fmt.Errorf("export: %s: %w", sheetStats, err)
	}
	header := []any{"Spalte", "Anzahl", "Mittelwert", "StdAbw", "Min", "Max"}
	if err := writeRow(f, sheetStats, 1, header); err != nil {
		return err
	}

	row := 2
	for col, name := range table.Columns {
		values := numericColumn(table, col)
		if len(values) == 0 {
			continue
		}
		d := describe(values)
		cells := []any{name, d.Count, d.Mean, d.Std, d.Min, d.Max}
		if err := writeRow(f, sheetStats, row, cells); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeCharacteristics(f *excelize.File, res *dfq.Result, labels kfields.Table) error {
	if len(res.Characteristics) == 0 {
		return nil
	}
	if _, err := f.NewSheet(sheetCharacteristics); err != nil {
		return fmt.Errorf("export: %s: %w", sheetCharacteristics, err)
	}

	indices := make([]int, 0, len(res.Characteristics))
	codeSet := map[string]bool{}
	for idx, ch := range res.Characteristics {
		indices = append(indices, idx)
		for code := range ch {
			codeSet[code] = true
		}
	}
	sort.Ints(indices)
	codes := make([]string, 0, len(codeSet))
	for code := range codeSet {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	header := []any{"Merkmal-Index"}
	for _, code := range codes {
		header = append(header, labels.Label(code))
	}
	if err := writeRow(f, sheetCharacteristics, 1, header); err != nil {
		return err
	}

	for i, idx := range indices {
		cells := []any{idx}
		for _, code := range codes {
			cells = append(cells, res.Characteristics[idx][code])
		}
		if err := writeRow(f, sheetCharacteristics, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, res *dfq.Result, labels kfields.Table) error {
	if len(res.Metadata) == 0 {
		return nil
	}
	if _, err := f.NewSheet(sheetHeader); err != nil {
		return fmt.Errorf("export: %s: %w", sheetHeader, err)
	}
	if err := writeRow(f, sheetHeader, 1, []any{"K-Feld", "Bezeichnung", "Wert"}); err != nil {
		return err
	}

	codes := make([]string, 0, len(res.Metadata))
	for code := range res.Metadata {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for i, code := range codes {
		cells := []any{code, labels.Label(code), res.Metadata[code]}
		if err := writeRow(f, sheetHeader, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	return writeStyledRow(f, sheet, row, cells, 0)
}

// writeStyledRow writes one row; dfq.Timestamp cells become real datetime
// cells with the timestamp style, invalid timestamps stay empty.
func writeStyledRow(f *excelize.File, sheet string, row int, cells []any, tsStyle int) error {
	for col, v := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("export: cell %d/%d: %w", col+1, row, err)
		}
		if ts, ok := v.(dfq.Timestamp); ok {
			if !ts.Valid {
				continue
			}
			if err := f.SetCellValue(sheet, cell, ts.Time); err != nil {
				return fmt.Errorf("export: set %s: %w", cell, err)
			}
			if tsStyle != 0 {
				if err := f.SetCellStyle(sheet, cell, cell, tsStyle); err != nil {
					return fmt.Errorf("export: style %s: %w", cell, err)
				}
			}
			continue
		}
		if v == nil {
			continue
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("export: set %s: %w", cell, err)
		}
	}
	return nil
}

func toAnys(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// numericColumn collects the float64 cells of one table column.
func numericColumn(table *dfq.Table, col int) []float64 {
	var values []float64
	for _, row := range table.Rows {
		if col >= len(row) {
			continue
		}
		if v, ok := row[col].(float64); ok {
			values = append(values, v)
		}
	}
	return values
}
