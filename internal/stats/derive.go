package stats

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Metrics are the ratios computed from a stat line. They are recomputed on
// every read and never stored.
type Metrics struct {
	TB  int
	AVG float64
	OBP float64
	SLG float64
	OPS float64
}

// Derive computes total bases and the slash-line ratios for l.
// Zero denominators yield exactly 0. Hit-type consistency
// (2B+3B+HR <= H) is not checked, so singles can go negative on a bad line.
func Derive(l Line) Metrics {
	singles := l.H - l.Doubles - l.Triples - l.HR
	tb := singles + 2*l.Doubles + 3*l.Triples + 4*l.HR

	var m Metrics
	m.TB = tb
	if l.AB > 0 {
		m.AVG = float64(l.H) / float64(l.AB)
		m.SLG = float64(tb) / float64(l.AB)
	}
	if pa := l.AB + l.BB + l.HBP + l.SF; pa > 0 {
		m.OBP = float64(l.H+l.BB+l.HBP) / float64(pa)
	}
	m.OPS = m.OBP + m.SLG
	return m
}

// FormatRatio renders a ratio with exactly three decimals, e.g. "0.300".
// A value exactly halfway between two thousandths rounds away from zero
// (1/16 is "0.063"); the decision uses the exact binary value, so 1.0005,
// stored just below the half, renders "1.000".
func FormatRatio(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
	x := new(big.Float).SetPrec(128).SetFloat64(math.Abs(v))
	x.Mul(x, big.NewFloat(1000))
	n, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(128).Sub(x, new(big.Float).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	if len(digits) < 4 {
		digits = strings.Repeat("0", 4-len(digits)) + digits
	}
	out := digits[:len(digits)-3] + "." + digits[len(digits)-3:]
	if v < 0 {
		out = "-" + out
	}
	return out
}
