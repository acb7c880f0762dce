// Package dfq parses the Q-DAS DFQ ASCII transfer format into a normalized,
// tabular record set. The package has no I/O dependencies: callers hand it
// decoded text and receive a Result plus a user-facing parse log.
//
// The format interleaves K-field metadata lines (K1001, K2001/3, ...) with
// measurement lines that come in several incompatible physical encodings
// ("dialects"). See dialect.go for the recognizer chain.
package dfq

import (
	"strconv"
	"time"
)

// Timestamp is a calendar time with an explicit validity flag.
// An invalid Timestamp means "the source carried no parseable time",
// which is distinct from a zero time and is never substituted with the
// current wall clock.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// MeasurementRecord is one characteristic observation. A single source line
// may yield several records (one per channel); they share an EventID.
type MeasurementRecord struct {
	// EventID groups all records produced by one source line.
	// Monotonically increasing, starting at 1.
	EventID int

	// CharacteristicIndex is the 1-based index of the measured
	// characteristic, matching the K2xxx/<index> header fields.
	CharacteristicIndex int

	Value     float64
	Attribute int
	Timestamp Timestamp

	// GUID is an external correlation identifier attached by a trailing
	// K0097 line. Set at most once, after the record is created.
	GUID string
}

// Metadata is the flat header map: full K-field code (including a /index
// suffix, verbatim) to its raw string value. A later line with the same
// code overwrites the earlier value.
type Metadata map[string]string

// Get returns the value for code, or def when absent.
func (m Metadata) Get(code, def string) string {
	if v, ok := m[code]; ok {
		return v
	}
	return def
}

// GetAny returns the first present value among codes, or def.
// Part fields are commonly looked up as K1001/1 before K1001.
func (m Metadata) GetAny(def string, codes ...string) string {
	for _, c := range codes {
		if v, ok := m[c]; ok {
			return v
		}
	}
	return def
}

// Characteristic holds the K2xxx field values describing one measured
// characteristic, keyed by base code (no index suffix).
type Characteristic map[string]string

// Characteristics maps 1-based characteristic indices to their field sets.
type Characteristics map[int]Characteristic

// ensure returns the characteristic entry for idx, creating it if absent.
func (c Characteristics) ensure(idx int) Characteristic {
	ch, ok := c[idx]
	if !ok {
		ch = Characteristic{}
		c[idx] = ch
	}
	return ch
}

// DisplayName resolves a human-readable name for a characteristic index:
// the long name (K2002), then the number/short name (K2001), then a
// synthesized fallback label.
func (c Characteristics) DisplayName(idx int) string {
	if ch, ok := c[idx]; ok {
		if v := ch[codeLongName]; v != "" {
			return v
		}
		if v := ch[codeShortName]; v != "" {
			return v
		}
	}
	return "Characteristic_" + strconv.Itoa(idx)
}

// Tolerance carries the specification limits of a characteristic.
// Either bound may be absent when the header omits it or the raw value
// is not numeric.
type Tolerance struct {
	Lower, Upper       float64
	HasLower, HasUpper bool
}

// Tolerance parses the lower/upper specification limits (K2110/K2111)
// for idx on demand. Non-numeric values are treated as absent.
func (c Characteristics) Tolerance(idx int) Tolerance {
	var t Tolerance
	ch, ok := c[idx]
	if !ok {
		return t
	}
	if v, err := strconv.ParseFloat(ch[codeLowerLimit], 64); err == nil {
		t.Lower, t.HasLower = v, true
	}
	if v, err := strconv.ParseFloat(ch[codeUpperLimit], 64); err == nil {
		t.Upper, t.HasUpper = v, true
	}
	return t
}

// Result is the sole artifact crossing the parser's output boundary.
type Result struct {
	Metadata        Metadata
	Characteristics Characteristics
	Measurements    []MeasurementRecord
}

// Empty reports whether parsing found no usable measurement data.
func (r *Result) Empty() bool {
	return r == nil || len(r.Measurements) == 0
}
