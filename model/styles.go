package model

import "fmt"

// NoRef marks an unset font, color, or style reference.
const NoRef = -1

// StyleKind distinguishes paragraph styles from character styles.
type StyleKind int

const (
	StyleParagraph StyleKind = iota
	StyleCharacter
)

func (k StyleKind) String() string {
	switch k {
	case StyleParagraph:
		return "paragraph"
	case StyleCharacter:
		return "character"
	default:
		return "unknown"
	}
}

// Alignment represents paragraph text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// LineSpacing represents paragraph line spacing.
type LineSpacing int

const (
	SpacingSingle LineSpacing = iota
	SpacingDouble
)

// StyleDef describes the formatting a style applies. Font and Color are
// indices into the owning document's tables, or NoRef when unset. Indents
// are in twips.
type StyleDef struct {
	Name            string
	Font            int
	Color           int
	Bold            bool
	Italic          bool
	Underline       bool
	Alignment       Alignment
	Spacing         LineSpacing
	FirstLineIndent int
	LeftIndent      int
}

// NewStyleDef returns a StyleDef with no font or color reference.
func NewStyleDef(name string) StyleDef {
	return StyleDef{Name: name, Font: NoRef, Color: NoRef}
}

// StyleEntry is a registered style: a StyleDef plus its assigned index and
// kind.
type StyleEntry struct {
	Index int
	Kind  StyleKind
	StyleDef
}

type styleKey struct {
	kind StyleKind
	def  StyleDef
}

// StyleSheet assigns stable numeric indices to paragraph and character
// styles. Indices start at 1; index 0 is left to the word processor's
// built-in "Normal" style. Both kinds share one index space, as RTF
// stylesheets do.
type StyleSheet struct {
	fonts   *FontTable
	colors  *ColorTable
	entries []StyleEntry
	lookup  map[styleKey]int
}

// NewStyleSheet creates an empty style sheet validating references against
// the given tables.
func NewStyleSheet(fonts *FontTable, colors *ColorTable) *StyleSheet {
	return &StyleSheet{
		fonts:  fonts,
		colors: colors,
		lookup: make(map[styleKey]int),
	}
}

// Register adds a style and returns its index. Font and color references in
// def must already be registered; a dangling reference fails immediately.
// Registering an identical kind/definition pair again returns the previously
// assigned index.
func (s *StyleSheet) Register(kind StyleKind, def StyleDef) (int, error) {
	if def.Font != NoRef && !s.fonts.Has(def.Font) {
		return 0, fmt.Errorf("%w: font index %d", ErrDanglingReference, def.Font)
	}
	if def.Color != NoRef && !s.colors.Has(def.Color) {
		return 0, fmt.Errorf("%w: color index %d", ErrDanglingReference, def.Color)
	}
	key := styleKey{kind: kind, def: def}
	if idx, ok := s.lookup[key]; ok {
		return idx, nil
	}
	idx := len(s.entries) + 1
	s.entries = append(s.entries, StyleEntry{Index: idx, Kind: kind, StyleDef: def})
	s.lookup[key] = idx
	return idx, nil
}

// Styles returns all entries in registration order.
func (s *StyleSheet) Styles() []StyleEntry {
	out := make([]StyleEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of registered styles.
func (s *StyleSheet) Len() int {
	return len(s.entries)
}

// Get returns the entry with the given index.
func (s *StyleSheet) Get(idx int) (StyleEntry, bool) {
	if idx < 1 || idx > len(s.entries) {
		return StyleEntry{}, false
	}
	return s.entries[idx-1], true
}

// Has reports whether idx refers to a registered style.
func (s *StyleSheet) Has(idx int) bool {
	return idx >= 1 && idx <= len(s.entries)
}
