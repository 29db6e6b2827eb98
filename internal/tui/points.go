package tui

import (
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshPoints rebuilds the control-point table from the current
// scene, one row per segment.
func (m *Model) refreshPoints() {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "start", Width: 18},
		{Title: "c1", Width: 18},
		{Title: "c2", Width: 18},
		{Title: "end", Width: 18},
	}
	rows := make([]table.Row, 0, len(m.sc.Segments))
	for i, cb := range m.sc.Segments {
		rows = append(rows, table.Row{
			strconv.Itoa(i),
			cb.P0.String(),
			cb.P1.String(),
			cb.P2.String(),
			cb.P3.String(),
		})
	}
	// avoid transient column/row mismatch inside the table
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}
