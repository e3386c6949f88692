package model

import "fmt"

// Charset identifies the RTF character set declared for a font
// (the \fcharsetN value).
type Charset int

const (
	CharsetANSI     Charset = 0
	CharsetDefault  Charset = 1
	CharsetSymbol   Charset = 2
	CharsetMac      Charset = 77
	CharsetShiftJIS Charset = 128
	CharsetGreek    Charset = 161
	CharsetTurkish  Charset = 162
	CharsetHebrew   Charset = 177
	CharsetArabic   Charset = 178
	CharsetCyrillic Charset = 204
	CharsetEastEur  Charset = 238
	CharsetOEM      Charset = 255
)

// FontEntry is a single entry in the document's font table.
type FontEntry struct {
	Index   int
	Family  string
	Charset Charset
}

type fontKey struct {
	family  string
	charset Charset
}

// FontTable assigns stable numeric indices to fonts. Indices start at 0 and
// follow first-registration order; they are never reused or renumbered.
type FontTable struct {
	entries []FontEntry
	lookup  map[fontKey]int
}

// NewFontTable creates an empty font table.
func NewFontTable() *FontTable {
	return &FontTable{
		lookup: make(map[fontKey]int),
	}
}

// Register adds a font to the table and returns its index. Registering an
// identical family/charset pair again returns the previously assigned index.
func (t *FontTable) Register(family string, charset Charset) (int, error) {
	if family == "" {
		return 0, fmt.Errorf("%w: empty family name", ErrInvalidFont)
	}
	key := fontKey{family: family, charset: charset}
	if idx, ok := t.lookup[key]; ok {
		return idx, nil
	}
	idx := len(t.entries)
	t.entries = append(t.entries, FontEntry{Index: idx, Family: family, Charset: charset})
	t.lookup[key] = idx
	return idx, nil
}

// Fonts returns all entries in registration order.
func (t *FontTable) Fonts() []FontEntry {
	out := make([]FontEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of registered fonts.
func (t *FontTable) Len() int {
	return len(t.entries)
}

// Has reports whether idx refers to a registered font.
func (t *FontTable) Has(idx int) bool {
	return idx >= 0 && idx < len(t.entries)
}
