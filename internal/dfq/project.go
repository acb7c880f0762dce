package dfq

import "sort"

// Table is the export-ready projection of a Result. Cells hold string,
// float64, int or Timestamp values; the spreadsheet writer decides how to
// render each.
type Table struct {
	// Wide reports the shape: one row per event with one column per
	// characteristic (wide), or one row per record (long).
	Wide    bool
	Columns []string
	Rows    [][]any
}

// Long-form column headers, matching the workbook sheets.
var longColumns = []string{"Messung Nr.", "Merkmal", "Wert", "Attribut", "Zeitstempel", "GUID"}

// ProjectTable reshapes the long-form record stream into a wide table when
// any event spans more than one characteristic. Single-characteristic
// results stay long-form, where a pivot would add no information.
// Rows are ordered ascending by event id in both shapes.
func ProjectTable(res *Result, log *Logbook) *Table {
	if res.Empty() {
		return &Table{Columns: longColumns}
	}
	if maxCharacteristicsPerEvent(res.Measurements) > 1 {
		return projectWide(res, log)
	}
	return projectLong(res)
}

func maxCharacteristicsPerEvent(records []MeasurementRecord) int {
	seen := map[int]map[int]bool{}
	max := 0
	for _, r := range records {
		chars := seen[r.EventID]
		if chars == nil {
			chars = map[int]bool{}
			seen[r.EventID] = chars
		}
		chars[r.CharacteristicIndex] = true
		if len(chars) > max {
			max = len(chars)
		}
	}
	return max
}

func projectLong(res *Result) *Table {
	t := &Table{Columns: longColumns}
	records := sortedByEvent(res.Measurements)
	for _, r := range records {
		t.Rows = append(t.Rows, []any{
			r.EventID,
			res.Characteristics.DisplayName(r.CharacteristicIndex),
			r.Value,
			r.Attribute,
			r.Timestamp,
			r.GUID,
		})
	}
	return t
}

func projectWide(res *Result, log *Logbook) *Table {
	indices := characteristicIndices(res.Measurements)

	t := &Table{Wide: true, Columns: []string{"Messung Nr.", "Zeitstempel"}}
	for _, idx := range indices {
		t.Columns = append(t.Columns, res.Characteristics.DisplayName(idx))
	}

	col := make(map[int]int, len(indices)) // characteristic index -> column
	for i, idx := range indices {
		col[idx] = i + 2
	}

	var (
		rows   = map[int][]any{}
		filled = map[[2]int]bool{}
		events []int
	)
	for _, r := range res.Measurements {
		row, ok := rows[r.EventID]
		if !ok {
			row = make([]any, len(t.Columns))
			row[0] = r.EventID
			row[1] = r.Timestamp
			rows[r.EventID] = row
			events = append(events, r.EventID)
		}
		key := [2]int{r.EventID, r.CharacteristicIndex}
		if filled[key] {
			// More than one value for the same event/characteristic
			// pair is a dialect-recognition defect; keep the first.
			log.Printf("Doppelter Wert für Messung %d, Merkmal %d ignoriert",
				r.EventID, r.CharacteristicIndex)
			continue
		}
		filled[key] = true
		row[col[r.CharacteristicIndex]] = r.Value
	}

	sort.Ints(events)
	for _, id := range events {
		t.Rows = append(t.Rows, rows[id])
	}
	return t
}

// characteristicIndices returns the distinct indices referenced by the
// records, ascending.
func characteristicIndices(records []MeasurementRecord) []int {
	seen := map[int]bool{}
	for _, r := range records {
		seen[r.CharacteristicIndex] = true
	}
	indices := make([]int, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

func sortedByEvent(records []MeasurementRecord) []MeasurementRecord {
	out := make([]MeasurementRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].EventID < out[j].EventID })
	return out
}
