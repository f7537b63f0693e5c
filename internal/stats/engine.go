package stats

import (
	"encoding/json"
	"math"
	"sort"
	"sync"
)

// Engine owns the mapping from player ID to stat line and is its only writer.
// Construct one per team with NewEngine and pass it to whoever needs it.
type Engine struct {
	mu    sync.Mutex
	lines map[string]*Line
}

// NewEngine returns an engine with no stat lines.
func NewEngine() *Engine {
	return &Engine{lines: make(map[string]*Line)}
}

// Ensure returns the line for id, creating an all-zero one if absent.
// Repeated calls return the same *Line and never reset it. The returned
// line belongs to the engine; callers change it only through Adjust,
// SetAbsolute and Reset.
func (e *Engine) Ensure(id string) *Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ensureLocked(id)
}

func (e *Engine) ensureLocked(id string) *Line {
	l, ok := e.lines[id]
	if !ok {
		l = &Line{}
		e.lines[id] = l
	}
	return l
}

// MaxCount is the largest value a counter holds. Writes saturate at it so
// every counter survives a storage round trip.
const MaxCount = math.MaxInt32

// clampCount bounds v to [0, MaxCount].
func clampCount(v int) int {
	return min(max(0, v), MaxCount)
}

// addCount adds delta to a counter already in [0, MaxCount] without
// overflowing int.
func addCount(cur, delta int) int {
	switch {
	case delta > MaxCount-cur:
		return MaxCount
	case delta < -cur:
		return 0
	}
	return cur + delta
}

// Adjust adds delta to field f on id's line, flooring the result at 0 and
// saturating at MaxCount.
func (e *Engine) Adjust(id string, f Field, delta int) (Line, error) {
	if err := checkField(f); err != nil {
		return Line{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	l := e.ensureLocked(id)
	p := l.ptr(f)
	*p = addCount(*p, delta)
	return *l, nil
}

// SetAbsolute sets field f on id's line to value, clamped to [0, MaxCount].
func (e *Engine) SetAbsolute(id string, f Field, value int) (Line, error) {
	if err := checkField(f); err != nil {
		return Line{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	l := e.ensureLocked(id)
	*l.ptr(f) = clampCount(value)
	return *l, nil
}

// Reset zeroes every counter for id. The line stays present, so a player
// with a reset line is still distinguishable from a deleted one.
func (e *Engine) Reset(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	*e.ensureLocked(id) = Line{}
}

// ResetAll discards every stat line.
func (e *Engine) ResetAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = make(map[string]*Line)
}

// RemovePlayer deletes id's line. Missing ids are ignored.
func (e *Engine) RemovePlayer(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.lines, id)
}

// Line returns a copy of id's line without creating one.
func (e *Engine) Line(id string) (Line, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.lines[id]
	if !ok {
		return Line{}, false
	}
	return *l, true
}

// Players returns the IDs that currently hold a line, sorted.
func (e *Engine) Players() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]string, 0, len(e.lines))
	for id := range e.lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns a copy of the whole mapping for persistence.
func (e *Engine) Snapshot() map[string]Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]Line, len(e.lines))
	for id, l := range e.lines {
		out[id] = *l
	}
	return out
}

// Restore replaces the mapping with lines decoded from loosely typed data.
// Malformed values are coerced to 0; nothing is rejected.
func (e *Engine) Restore(raw map[string]map[string]any) {
	lines := make(map[string]*Line, len(raw))
	for id, fields := range raw {
		l := LineFromMap(fields)
		lines[id] = &l
	}
	e.mu.Lock()
	e.lines = lines
	e.mu.Unlock()
}

// Load replaces the mapping with a snapshot previously taken with Snapshot.
// Counters are clamped to [0, MaxCount].
func (e *Engine) Load(snap map[string]Line) {
	lines := make(map[string]*Line, len(snap))
	for id, l := range snap {
		l := l
		for _, f := range Fields {
			p := l.ptr(f)
			*p = clampCount(*p)
		}
		lines[id] = &l
	}
	e.mu.Lock()
	e.lines = lines
	e.mu.Unlock()
}

// MarshalJSON encodes the mapping as {"playerId": {"AB": 0, ...}}.
func (e *Engine) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Snapshot())
}

// UnmarshalJSON decodes a mapping leniently. A line that is not an object
// loads as all zeros.
func (e *Engine) UnmarshalJSON(data []byte) error {
	var snap map[string]Line
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	e.Load(snap)
	return nil
}
