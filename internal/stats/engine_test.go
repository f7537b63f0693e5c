package stats

import (
	"errors"
	"math"
	"testing"
)

func TestEnsureIsIdempotent(t *testing.T) {
	e := NewEngine()

	first := e.Ensure("p1")
	if _, err := e.Adjust("p1", RBI, 3); err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	second := e.Ensure("p1")

	if first != second {
		t.Error("expected Ensure to return the same line on repeated calls")
	}
	if second.RBI != 3 {
		t.Errorf("Ensure must not reset existing values: RBI=%d", second.RBI)
	}
}

func TestAdjustClampsAtZero(t *testing.T) {
	for _, f := range Fields {
		for _, tc := range []struct {
			start, delta, want int
		}{
			{0, 1, 1},
			{0, -1, 0},
			{2, -5, 0},
			{4, -1, 3},
			{7, 10, 17},
		} {
			e := NewEngine()
			if _, err := e.SetAbsolute("p", f, tc.start); err != nil {
				t.Fatalf("SetAbsolute(%s): %v", f, err)
			}
			got, err := e.Adjust("p", f, tc.delta)
			if err != nil {
				t.Fatalf("Adjust(%s): %v", f, err)
			}
			if got.Get(f) != tc.want {
				t.Errorf("%s: %d%+d = %d, want %d", f, tc.start, tc.delta, got.Get(f), tc.want)
			}
		}
	}
}

// Scenario: decrementing SO on a fresh line leaves it at 0.
func TestAdjustFreshLineNegative(t *testing.T) {
	e := NewEngine()
	line, err := e.Adjust("p", SO, -1)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if line.SO != 0 {
		t.Errorf("SO = %d, want 0", line.SO)
	}
}

func TestSetAbsoluteFloorsNegative(t *testing.T) {
	e := NewEngine()
	line, err := e.SetAbsolute("p", AB, -4)
	if err != nil {
		t.Fatalf("SetAbsolute: %v", err)
	}
	if line.AB != 0 {
		t.Errorf("AB = %d, want 0", line.AB)
	}
	line, _ = e.SetAbsolute("p", AB, 12)
	if line.AB != 12 {
		t.Errorf("AB = %d, want 12", line.AB)
	}
}

func TestInvalidFieldRejected(t *testing.T) {
	e := NewEngine()

	_, err := e.Adjust("p", Field(42), 1)
	var fieldErr *InvalidFieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected InvalidFieldError, got %v", err)
	}
	if _, err := e.SetAbsolute("p", Field(-1), 1); !errors.As(err, &fieldErr) {
		t.Fatalf("expected InvalidFieldError from SetAbsolute, got %v", err)
	}
	if _, ok := e.Line("p"); ok {
		t.Error("a rejected field must not create a line")
	}

	if _, err := ParseField("XBH"); !errors.As(err, &fieldErr) {
		t.Errorf("ParseField(XBH): expected InvalidFieldError, got %v", err)
	}
	if fieldErr.Name != "XBH" {
		t.Errorf("error name = %q", fieldErr.Name)
	}
}

func TestParseFieldShortNames(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(f.String())
		if err != nil {
			t.Fatalf("ParseField(%q): %v", f.String(), err)
		}
		if got != f {
			t.Errorf("ParseField(%q) = %v, want %v", f.String(), got, f)
		}
	}
	if f, _ := ParseField("2B"); f != Doubles {
		t.Errorf("2B should map to Doubles, got %v", f)
	}
}

func TestResetKeepsLine(t *testing.T) {
	e := NewEngine()
	e.Adjust("p", H, 5)
	e.Adjust("p", AB, 9)

	e.Reset("p")

	line, ok := e.Line("p")
	if !ok {
		t.Fatal("Reset must keep the line present")
	}
	if line != (Line{}) {
		t.Errorf("expected all-zero line, got %+v", line)
	}
	m := Derive(line)
	if m.AVG != 0 || m.OBP != 0 || m.SLG != 0 || m.OPS != 0 {
		t.Errorf("expected zero metrics after reset, got %+v", m)
	}
}

func TestResetAllClearsMapping(t *testing.T) {
	e := NewEngine()
	e.Ensure("a")
	e.Ensure("b")

	e.ResetAll()

	if ids := e.Players(); len(ids) != 0 {
		t.Errorf("expected empty mapping, got %v", ids)
	}
}

// Scenario: remove then ensure gives an independent zero line.
func TestRemoveThenEnsure(t *testing.T) {
	e := NewEngine()
	old := e.Ensure("p")
	e.Adjust("p", HR, 2)

	e.RemovePlayer("p")
	e.RemovePlayer("p") // no-op

	fresh := e.Ensure("p")
	if fresh == old {
		t.Error("expected a new line after removal")
	}
	if *fresh != (Line{}) {
		t.Errorf("expected zeroed line, got %+v", *fresh)
	}
	if old.HR != 2 {
		t.Errorf("removed line should be untouched, HR=%d", old.HR)
	}
}

func TestRestoreCoercesMalformedValues(t *testing.T) {
	e := NewEngine()
	e.Restore(map[string]map[string]any{
		"p1": {"AB": float64(10), "H": "3", "2B": "two", "HR": -4, "SF": 2.9, "notes": "keep calm"},
		"p2": nil,
	})

	l, ok := e.Line("p1")
	if !ok {
		t.Fatal("p1 missing after restore")
	}
	want := Line{AB: 10, H: 3, SF: 2}
	if l != want {
		t.Errorf("got %+v, want %+v", l, want)
	}
	if l2, ok := e.Line("p2"); !ok || l2 != (Line{}) {
		t.Errorf("p2 should load as an empty line, got %+v ok=%v", l2, ok)
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"int", 7, 7},
		{"float", float64(3), 3},
		{"fraction", 2.7, 2},
		{"negative", -1, 0},
		{"numeric string", " 12 ", 12},
		{"garbage string", "abc", 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"bool", true, 0},
		{"nil", nil, 0},
		{"bytes", []byte("5"), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Coerce(tt.in); got != tt.want {
				t.Errorf("Coerce(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestJSONRoundTripLenient(t *testing.T) {
	src := []byte(`{"p1":{"AB":4,"H":1,"2B":1,"extra":true},"p2":"broken","p3":{"SO":"x","BB":-2}}`)

	e := NewEngine()
	if err := e.UnmarshalJSON(src); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if l, _ := e.Line("p1"); l != (Line{AB: 4, H: 1, Doubles: 1}) {
		t.Errorf("p1 = %+v", l)
	}
	if l, ok := e.Line("p2"); !ok || l != (Line{}) {
		t.Errorf("p2 = %+v ok=%v", l, ok)
	}
	if l, _ := e.Line("p3"); l != (Line{}) {
		t.Errorf("p3 = %+v", l)
	}

	data, err := e.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	again := NewEngine()
	if err := again.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON again: %v", err)
	}
	if l, _ := again.Line("p1"); l.Doubles != 1 {
		t.Errorf("2B lost in round trip: %+v", l)
	}
}

func TestCountersSaturate(t *testing.T) {
	e := NewEngine()

	line, err := e.SetAbsolute("p", R, math.MaxInt)
	if err != nil {
		t.Fatalf("SetAbsolute: %v", err)
	}
	if line.R != MaxCount {
		t.Errorf("SetAbsolute(MaxInt) stored %d, want %d", line.R, MaxCount)
	}

	line, _ = e.Adjust("p", R, 1)
	if line.R != MaxCount {
		t.Errorf("Adjust past the cap gave %d, want %d", line.R, MaxCount)
	}
	line, _ = e.Adjust("p", R, math.MaxInt)
	if line.R != MaxCount {
		t.Errorf("Adjust(MaxInt) gave %d, want %d", line.R, MaxCount)
	}
	line, _ = e.Adjust("p", R, math.MinInt)
	if line.R != 0 {
		t.Errorf("Adjust(MinInt) gave %d, want 0", line.R)
	}

	e.Load(map[string]Line{"q": {AB: math.MaxInt, H: -4}})
	got, _ := e.Line("q")
	if got.AB != MaxCount || got.H != 0 {
		t.Errorf("Load did not clamp: %+v", got)
	}
	if Coerce(got.AB) != got.AB {
		t.Errorf("saturated value does not survive coercion: %d", Coerce(got.AB))
	}
}
