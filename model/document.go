package model

import (
	"fmt"
	"time"
)

// TwipsPerInch is the RTF measurement unit: 1440 twips to the inch.
const TwipsPerInch = 1440

// Inches converts inches to twips.
func Inches(in float64) int {
	return int(in * TwipsPerInch)
}

// Metadata contains document-level information emitted in the \info block.
type Metadata struct {
	Title   string
	Author  string
	Subject string
	Company string
	Comment string
	Created time.Time
}

// PageLayout holds page geometry and document-wide defaults. All distances
// are in twips; FontSize is in half-points. DefaultFont is a font table
// index.
type PageLayout struct {
	PaperWidth   int
	PaperHeight  int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	TabStops     []int
	DefaultFont  int
	FontSize     int
}

// DefaultPageLayout returns US letter portrait with one-inch margins,
// 12-point default type, and tab stops at 0.5, 1, and 3 inches.
func DefaultPageLayout() PageLayout {
	return PageLayout{
		PaperWidth:   Inches(8.5),
		PaperHeight:  Inches(11),
		MarginTop:    Inches(1),
		MarginRight:  Inches(1),
		MarginBottom: Inches(1),
		MarginLeft:   Inches(1),
		TabStops:     []int{Inches(0.5), Inches(1), Inches(3)},
		DefaultFont:  0,
		FontSize:     24,
	}
}

// UsableWidth returns the paper width minus the horizontal margins.
func (l PageLayout) UsableWidth() int {
	return l.PaperWidth - l.MarginLeft - l.MarginRight
}

// Footer describes the running document footer: the case name on the left,
// a centered page number, and the cause number and document title on
// following lines, separated from the text by a thin top border.
type Footer struct {
	CaseName    string
	CauseNumber string
	Title       string
}

// Section owns an ordered sequence of block-level nodes. Consecutive
// sections are separated by section breaks at encoding time.
type Section struct {
	node
	blocks []Node
}

func (s *Section) Type() NodeType { return NodeSection }

// NewSection creates an empty section.
func NewSection() *Section {
	return &Section{}
}

// Blocks returns the section's content in order.
func (s *Section) Blocks() []Node {
	out := make([]Node, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Add attaches a block-level node: a paragraph, table, page break, or
// section break.
func (s *Section) Add(n Node) error {
	switch n.Type() {
	case NodeParagraph, NodeTable, NodePageBreak, NodeSectionBreak:
	default:
		return fmt.Errorf("model: %s is not a block-level node", n.Type())
	}
	if err := attach(s, n); err != nil {
		return err
	}
	s.blocks = append(s.blocks, n)
	return nil
}

// Document is the root of the tree. It owns the resource tables, the style
// sheet, metadata, page layout, an optional footer, and the sections. A
// Document and everything it owns must be used from a single goroutine;
// independent Documents share no state.
type Document struct {
	Fonts  *FontTable
	Colors *ColorTable
	Styles *StyleSheet
	Meta   Metadata
	Layout PageLayout
	Footer *Footer

	sections []*Section
}

// NewDocument creates an empty document with default page layout and its
// own resource tables.
func NewDocument() *Document {
	fonts := NewFontTable()
	colors := NewColorTable()
	return &Document{
		Fonts:  fonts,
		Colors: colors,
		Styles: NewStyleSheet(fonts, colors),
		Layout: DefaultPageLayout(),
	}
}

// AddSection attaches a completed section.
func (d *Document) AddSection(s *Section) error {
	if s.frozen() {
		return fmt.Errorf("%w: section already attached", ErrFrozenTree)
	}
	s.freeze()
	d.sections = append(d.sections, s)
	return nil
}

// Sections returns the attached sections in order.
func (d *Document) Sections() []*Section {
	out := make([]*Section, len(d.sections))
	copy(out, d.sections)
	return out
}
