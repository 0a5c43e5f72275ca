package lineartable

import (
	"fmt"
	"strings"
)

// Stats is a point-in-time snapshot of table occupancy.
type Stats struct {
	Capacity   int
	Count      int
	MaxPSL     int
	CurrentPSL int
}

// Stats returns a snapshot of the table's current occupancy.
func (t *Table[K, V]) Stats() Stats {
	return Stats{
		Capacity:   int(t.capacity),
		Count:      int(t.count),
		MaxPSL:     int(t.maxPSL),
		CurrentPSL: int(t.currentPSL),
	}
}

// String renders the metadata array one slot per character (PSL digit, or
// '.' for empty), wrapped at 64 columns.
func (t *Table[K, V]) String() string {
	var b strings.Builder

	stats := t.Stats()
	fmt.Fprintf(&b, "lineartable: count=%d capacity=%d maxPSL=%d currentPSL=%d\n",
		stats.Count, stats.Capacity, stats.MaxPSL, stats.CurrentPSL)

	for i, m := range t.metadata {
		if m == emptyPSL {
			b.WriteByte('.')
		} else if m < 10 {
			b.WriteByte('0' + m)
		} else {
			b.WriteByte('+')
		}
		if (i+1)%64 == 0 {
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')

	return b.String()
}
