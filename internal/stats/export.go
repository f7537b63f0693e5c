package stats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExportHeader is the header row of the stats CSV.
var ExportHeader = []string{
	"Player", "#", "AB", "H", "2B", "3B", "HR", "BB", "SO", "R", "RBI", "SB", "HBP", "SF",
	"AVG", "OBP", "SLG", "OPS",
}

// PlayerRef is the roster information needed to label an export row.
type PlayerRef struct {
	ID     string
	Name   string
	Number *int
}

// ExportTable returns one row per player, in the given order. Players with no
// stat line export as zeros; no line is created for them.
func (e *Engine) ExportTable(players []PlayerRef) [][]string {
	snap := e.Snapshot()
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		l := snap[p.ID]
		row := make([]string, 0, len(ExportHeader))
		row = append(row, p.Name, formatNumber(p.Number))
		for _, v := range l.Values() {
			row = append(row, strconv.Itoa(v))
		}
		m := Derive(l)
		row = append(row, FormatRatio(m.AVG), FormatRatio(m.OBP), FormatRatio(m.SLG), FormatRatio(m.OPS))
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes the header and one row per player. Every field is quoted
// with inner quotes doubled; rows are separated by "\n" with no trailing newline.
func (e *Engine) WriteCSV(w io.Writer, players []PlayerRef) error {
	bw := bufio.NewWriter(w)
	if err := writeQuotedRow(bw, ExportHeader); err != nil {
		return err
	}
	for _, row := range e.ExportTable(players) {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		if err := writeQuotedRow(bw, row); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func writeQuotedRow(w *bufio.Writer, row []string) error {
	for i, field := range row {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(field, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	return nil
}

func formatNumber(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
