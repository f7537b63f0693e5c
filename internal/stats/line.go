package stats

import "encoding/json"

// Line is one player's cumulative counting statistics. Every field is >= 0.
type Line struct {
	AB      int `json:"AB"`
	H       int `json:"H"`
	Doubles int `json:"2B"`
	Triples int `json:"3B"`
	HR      int `json:"HR"`
	BB      int `json:"BB"`
	SO      int `json:"SO"`
	R       int `json:"R"`
	RBI     int `json:"RBI"`
	SB      int `json:"SB"`
	HBP     int `json:"HBP"`
	SF      int `json:"SF"`
}

// Get returns the value of f, or 0 for an unrecognised field.
func (l *Line) Get(f Field) int {
	if p := l.ptr(f); p != nil {
		return *p
	}
	return 0
}

func (l *Line) ptr(f Field) *int {
	switch f {
	case AB:
		return &l.AB
	case H:
		return &l.H
	case Doubles:
		return &l.Doubles
	case Triples:
		return &l.Triples
	case HR:
		return &l.HR
	case BB:
		return &l.BB
	case SO:
		return &l.SO
	case R:
		return &l.R
	case RBI:
		return &l.RBI
	case SB:
		return &l.SB
	case HBP:
		return &l.HBP
	case SF:
		return &l.SF
	}
	return nil
}

// Values returns the twelve counters in export order.
func (l *Line) Values() [numFields]int {
	var out [numFields]int
	for i, f := range Fields {
		out[i] = l.Get(f)
	}
	return out
}

// UnmarshalJSON decodes a line leniently: unknown keys are ignored and
// malformed values become 0 instead of failing the decode.
func (l *Line) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an object at all (null, a number, a string): treat as empty.
		*l = Line{}
		return nil
	}
	*l = LineFromMap(raw)
	return nil
}

// LineFromMap builds a line from loosely typed key/value data, coercing every
// value with Coerce. Keys that are not field names are ignored.
func LineFromMap(raw map[string]any) Line {
	var l Line
	for i, f := range Fields {
		if v, ok := raw[fieldNames[i]]; ok {
			*l.ptr(f) = Coerce(v)
		}
	}
	return l
}
