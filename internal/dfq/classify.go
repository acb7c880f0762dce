package dfq

import (
	"regexp"
	"strings"
)

// K-field codes with structural meaning to the parser. Everything else is
// carried opaquely in Metadata; human labels live in the kfields package.
const (
	codeLongName   = "K2002"
	codeShortName  = "K2001"
	codeLowerLimit = "K2110"
	codeUpperLimit = "K2111"

	// correlationCode carries an external identifier (typically a GUID)
	// for the most recently produced record.
	correlationCode = "K0097"

	// characteristicPrefix is the code family whose indexed fields
	// describe individual characteristics.
	characteristicPrefix = "K2"
)

// fieldLineRe matches the fixed K-field tag: one letter, exactly four
// digits, optionally /<index>, followed by whitespace or end of line.
var fieldLineRe = regexp.MustCompile(`^[A-Z][0-9]{4}(/[0-9]+)?(\s|$)`)

type lineKind int

const (
	lineBlank lineKind = iota
	lineField
	lineCorrelation
	lineMeasurement
)

// classify routes one already-trimmed line. Field lines go to the field
// parser, correlation lines to the event correlator, and everything else
// non-blank is a measurement candidate for the dialect chain.
func classify(line string) lineKind {
	if line == "" {
		return lineBlank
	}
	if !fieldLineRe.MatchString(line) {
		return lineMeasurement
	}
	code, _, _ := splitFieldLine(line)
	if base, _, _ := strings.Cut(code, "/"); base == correlationCode {
		return lineCorrelation
	}
	return lineField
}

// splitFieldLine splits a field line on the first run of whitespace into
// the full code (including any /index suffix) and the trimmed value.
// ok is false when the line has no separable value.
func splitFieldLine(line string) (code, value string, ok bool) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, "", false
	}
	value = strings.TrimSpace(line[i+1:])
	if value == "" {
		return line[:i], "", false
	}
	return line[:i], value, true
}
