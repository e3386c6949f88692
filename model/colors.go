package model

import "fmt"

// ColorEntry is a single entry in the document's color table. Index 0 is the
// reserved auto/default slot, present in every table and never reassigned.
type ColorEntry struct {
	Index   int
	R, G, B uint8
	Auto    bool
}

// ColorTable assigns stable numeric indices to RGB colors. The reserved auto
// slot occupies index 0; caller-registered colors start at index 1 and follow
// first-registration order.
type ColorTable struct {
	entries []ColorEntry
	lookup  map[[3]uint8]int
}

// NewColorTable creates a color table holding only the reserved auto slot.
func NewColorTable() *ColorTable {
	return &ColorTable{
		entries: []ColorEntry{{Index: 0, Auto: true}},
		lookup:  make(map[[3]uint8]int),
	}
}

// Register adds a color to the table and returns its index. Each channel
// must be within 0-255. Registering an identical triple again returns the
// previously assigned index; the auto slot at index 0 is never matched.
func (t *ColorTable) Register(r, g, b int) (int, error) {
	for _, c := range []struct {
		name string
		v    int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if c.v < 0 || c.v > 255 {
			return 0, fmt.Errorf("%w: %s channel %d", ErrInvalidColor, c.name, c.v)
		}
	}
	key := [3]uint8{uint8(r), uint8(g), uint8(b)}
	if idx, ok := t.lookup[key]; ok {
		return idx, nil
	}
	idx := len(t.entries)
	t.entries = append(t.entries, ColorEntry{Index: idx, R: key[0], G: key[1], B: key[2]})
	t.lookup[key] = idx
	return idx, nil
}

// Colors returns all entries, including the auto slot, in index order.
func (t *ColorTable) Colors() []ColorEntry {
	out := make([]ColorEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries, counting the auto slot.
func (t *ColorTable) Len() int {
	return len(t.entries)
}

// Has reports whether idx refers to a table entry (the auto slot counts).
func (t *ColorTable) Has(idx int) bool {
	return idx >= 0 && idx < len(t.entries)
}
