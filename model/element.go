package model

import "fmt"

// NodeType represents the type of a document tree node.
type NodeType int

const (
	NodeUnknown NodeType = iota
	NodeParagraph
	NodeRun
	NodeLineBreak
	NodePageBreak
	NodeSectionBreak
	NodeTable
	NodeRow
	NodeCell
	NodeSection
)

func (nt NodeType) String() string {
	switch nt {
	case NodeParagraph:
		return "Paragraph"
	case NodeRun:
		return "Run"
	case NodeLineBreak:
		return "LineBreak"
	case NodePageBreak:
		return "PageBreak"
	case NodeSectionBreak:
		return "SectionBreak"
	case NodeTable:
		return "Table"
	case NodeRow:
		return "Row"
	case NodeCell:
		return "Cell"
	case NodeSection:
		return "Section"
	default:
		return "Unknown"
	}
}

// Node is the interface for all document tree nodes. The set of
// implementations is closed: it contains exactly the types declared in this
// package, so encoders can switch over them exhaustively.
type Node interface {
	Type() NodeType

	frozen() bool
	freeze()
}

// node carries the attachment state shared by every tree node.
type node struct {
	attached bool
}

func (n *node) frozen() bool { return n.attached }
func (n *node) freeze()      { n.attached = true }

// attach freezes child after checking that neither end of the edge violates
// the tree rules: a frozen parent cannot grow and a node cannot gain a
// second parent.
func attach(parent, child Node) error {
	if parent.frozen() {
		return fmt.Errorf("%w: cannot add %s to attached %s", ErrFrozenTree, child.Type(), parent.Type())
	}
	if child.frozen() {
		return fmt.Errorf("%w: %s already has a parent", ErrFrozenTree, child.Type())
	}
	child.freeze()
	return nil
}

// UnderlineKind selects the underline variant for a run.
type UnderlineKind int

const (
	UnderlineNone UnderlineKind = iota
	UnderlineSingle
	UnderlineDouble
)

// RunProps is direct character formatting carried by a run, applied on top
// of any referenced character style. Font and Color are table indices or
// NoRef. Size is in half-points; 0 inherits the document default.
type RunProps struct {
	Font      int
	Color     int
	Size      int
	Bold      bool
	Italic    bool
	Underline UnderlineKind
	Caps      bool
	SmallCaps bool
	Strike    bool
	Outline   bool
}

// NewRunProps returns a RunProps with no font or color reference.
func NewRunProps() RunProps {
	return RunProps{Font: NoRef, Color: NoRef}
}

// Run is a leaf node carrying literal text. Text is stored unescaped;
// escaping is entirely the writer's concern. Style is a character style
// index or NoRef.
type Run struct {
	node
	Text  string
	Style int
	Props RunProps
}

func (r *Run) Type() NodeType { return NodeRun }

// TabKind selects the alignment of a tab stop.
type TabKind int

const (
	TabLeft TabKind = iota
	TabCenter
	TabRight
	TabDecimal
)

// TabStop is a paragraph-level tab stop at Pos twips.
type TabStop struct {
	Pos  int
	Kind TabKind
}

// ParaProps is direct paragraph formatting, applied on top of any referenced
// paragraph style. Indents are in twips.
type ParaProps struct {
	Alignment       Alignment
	DoubleSpaced    bool
	KeepWithNext    bool
	FirstLineIndent int
	LeftIndent      int
	BorderTop       bool
	Tabs            []TabStop
}

// Paragraph is a block node owning an ordered sequence of runs and line
// breaks. Style is a paragraph style index or NoRef.
type Paragraph struct {
	node
	Style    int
	Props    ParaProps
	children []Node
}

func (p *Paragraph) Type() NodeType { return NodeParagraph }

// Children returns the paragraph's runs and line breaks in order.
func (p *Paragraph) Children() []Node {
	out := make([]Node, len(p.children))
	copy(out, p.children)
	return out
}

// AddRun appends a run. Fails with ErrFrozenTree once the paragraph is
// attached, or if the run already has a parent.
func (p *Paragraph) AddRun(r *Run) error {
	if err := attach(p, r); err != nil {
		return err
	}
	p.children = append(p.children, r)
	return nil
}

// AddLineBreak appends an explicit line break.
func (p *Paragraph) AddLineBreak() error {
	br := &LineBreak{}
	if err := attach(p, br); err != nil {
		return err
	}
	p.children = append(p.children, br)
	return nil
}

// SetStyle replaces the paragraph style reference. The index must come from
// the owning document's style sheet; after attachment this fails with
// ErrFrozenTree.
func (p *Paragraph) SetStyle(style int) error {
	if p.frozen() {
		return fmt.Errorf("%w: cannot restyle attached Paragraph", ErrFrozenTree)
	}
	p.Style = style
	return nil
}

// LineBreak is an explicit line break within a paragraph (\line).
type LineBreak struct {
	node
}

func (b *LineBreak) Type() NodeType { return NodeLineBreak }

// PageBreak is an explicit page break between blocks (\page).
type PageBreak struct {
	node
}

func (b *PageBreak) Type() NodeType { return NodePageBreak }

// SectionBreak forces a section break between blocks (\sect).
type SectionBreak struct {
	node
}

func (b *SectionBreak) Type() NodeType { return NodeSectionBreak }
