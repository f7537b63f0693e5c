// Package stats owns the per-player batting counters and the ratios derived from them.
package stats

import "fmt"

// Field identifies one of the twelve counting statistics on a stat line.
type Field int

const (
	AB Field = iota
	H
	Doubles
	Triples
	HR
	BB
	SO
	R
	RBI
	SB
	HBP
	SF

	numFields
)

// Fields lists every counting statistic in export order.
var Fields = [numFields]Field{AB, H, Doubles, Triples, HR, BB, SO, R, RBI, SB, HBP, SF}

// fieldNames are the box-score short names. 2B/3B are kept verbatim.
var fieldNames = [numFields]string{"AB", "H", "2B", "3B", "HR", "BB", "SO", "R", "RBI", "SB", "HBP", "SF"}

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Valid reports whether f is one of the twelve recognised fields.
func (f Field) Valid() bool {
	return f >= 0 && f < numFields
}

// ParseField maps a short name such as "RBI" or "2B" to its Field.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, &InvalidFieldError{Name: name}
}

// InvalidFieldError is returned when a caller names a field outside the fixed twelve.
// It signals a programming error in the caller, not bad user data.
type InvalidFieldError struct {
	Name string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid stat field %q", e.Name)
}

func checkField(f Field) error {
	if !f.Valid() {
		return &InvalidFieldError{Name: f.String()}
	}
	return nil
}
