// Package writer serializes a model document tree into an RTF byte stream.
//
// Encoding is a single depth-first pass: the header tables (fonts, colors,
// stylesheet) are emitted first, in registration order, and every index
// reference in the body is checked against them. On any error no output is
// returned.
package writer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/scribe/model"
)

// ErrUnresolvedReference is returned when the body walk meets a font, color,
// or style index with no matching header table entry. The model builders
// make this unreachable for trees built through them; the check guards
// against trees assembled by hand.
var ErrUnresolvedReference = errors.New("writer: reference missing from header table")

// Encode serializes the document to a complete RTF stream.
func Encode(doc *model.Document) ([]byte, error) {
	e := &encoder{doc: doc}
	if err := e.encode(); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// EncodeTo encodes the document and writes the result to w. Nothing is
// written when encoding fails.
func EncodeTo(w io.Writer, doc *model.Document) error {
	b, err := Encode(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

type encoder struct {
	buf bytes.Buffer
	doc *model.Document
}

// word emits a control word with no parameter.
func (e *encoder) word(name string) {
	e.buf.WriteByte('\\')
	e.buf.WriteString(name)
}

// wordN emits a control word with a numeric parameter.
func (e *encoder) wordN(name string, n int) {
	e.buf.WriteByte('\\')
	e.buf.WriteString(name)
	e.buf.WriteString(strconv.Itoa(n))
}

func (e *encoder) text(s string) {
	appendEscaped(&e.buf, s)
}

func (e *encoder) encode() error {
	doc := e.doc

	deff := doc.Layout.DefaultFont
	if doc.Fonts.Len() > 0 && !doc.Fonts.Has(deff) {
		return fmt.Errorf("%w: default font index %d", ErrUnresolvedReference, deff)
	}

	e.buf.WriteString(`{\rtf1\ansi\ansicpg1252`)
	e.wordN("deff", deff)
	e.buf.WriteString(`\deflang1033\uc1`)
	e.buf.WriteByte('\n')

	e.encodeFontTable()
	e.encodeColorTable()
	if err := e.encodeStyleSheet(); err != nil {
		return err
	}
	e.encodeInfo()
	e.encodeLayout()
	if err := e.encodeFooter(); err != nil {
		return err
	}

	for i, sect := range doc.Sections() {
		if i > 0 {
			e.word("sect")
			e.buf.WriteByte('\n')
		}
		for _, block := range sect.Blocks() {
			if err := e.encodeBlock(block, 0); err != nil {
				return err
			}
		}
	}

	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) encodeFontTable() {
	e.buf.WriteString(`{\fonttbl`)
	for _, f := range e.doc.Fonts.Fonts() {
		e.buf.WriteByte('{')
		e.wordN("f", f.Index)
		e.word("fnil")
		e.wordN("fcharset", int(f.Charset))
		e.buf.WriteByte(' ')
		e.text(f.Family)
		e.buf.WriteString(";}")
	}
	e.buf.WriteString("}\n")
}

func (e *encoder) encodeColorTable() {
	// The leading semicolon is the reserved auto slot at index 0; it is
	// emitted even when no colors are registered.
	e.buf.WriteString(`{\colortbl;`)
	for _, c := range e.doc.Colors.Colors() {
		if c.Auto {
			continue
		}
		e.wordN("red", int(c.R))
		e.wordN("green", int(c.G))
		e.wordN("blue", int(c.B))
		e.buf.WriteByte(';')
	}
	e.buf.WriteString("}\n")
}

func (e *encoder) encodeStyleSheet() error {
	styles := e.doc.Styles.Styles()
	if len(styles) == 0 {
		return nil
	}
	e.buf.WriteString(`{\stylesheet`)
	for _, s := range styles {
		if s.Font != model.NoRef && !e.doc.Fonts.Has(s.Font) {
			return fmt.Errorf("%w: style %d font index %d", ErrUnresolvedReference, s.Index, s.Font)
		}
		if s.Color != model.NoRef && !e.doc.Colors.Has(s.Color) {
			return fmt.Errorf("%w: style %d color index %d", ErrUnresolvedReference, s.Index, s.Color)
		}
		e.buf.WriteByte('{')
		switch s.Kind {
		case model.StyleParagraph:
			e.wordN("s", s.Index)
			e.paraStyleWords(s.StyleDef)
		case model.StyleCharacter:
			e.buf.WriteString(`\*`)
			e.wordN("cs", s.Index)
		}
		e.charStyleWords(s.StyleDef)
		e.buf.WriteByte(' ')
		e.text(s.Name)
		e.buf.WriteString(";}")
	}
	e.buf.WriteString("}\n")
	return nil
}

// paraStyleWords emits the paragraph-level formatting of a style definition.
func (e *encoder) paraStyleWords(def model.StyleDef) {
	e.alignmentWord(def.Alignment)
	if def.Spacing == model.SpacingDouble {
		e.buf.WriteString(`\sl480\slmult1`)
	}
	if def.FirstLineIndent > 0 {
		e.wordN("fi", def.FirstLineIndent)
	}
	if def.LeftIndent > 0 {
		e.wordN("li", def.LeftIndent)
	}
}

// charStyleWords emits the character-level formatting of a style definition.
func (e *encoder) charStyleWords(def model.StyleDef) {
	if def.Font != model.NoRef {
		e.wordN("f", def.Font)
	}
	if def.Color != model.NoRef {
		e.wordN("cf", def.Color)
	}
	if def.Bold {
		e.word("b")
	}
	if def.Italic {
		e.word("i")
	}
	if def.Underline {
		e.word("ul")
	}
}

func (e *encoder) alignmentWord(a model.Alignment) {
	switch a {
	case model.AlignCenter:
		e.word("qc")
	case model.AlignRight:
		e.word("qr")
	case model.AlignJustify:
		e.word("qj")
	default:
		e.word("ql")
	}
}

func (e *encoder) encodeInfo() {
	m := e.doc.Meta
	if m.Title == "" && m.Author == "" && m.Subject == "" && m.Company == "" &&
		m.Comment == "" && m.Created.IsZero() {
		return
	}
	e.buf.WriteString(`{\info`)
	writeGroup := func(word, value string) {
		if value == "" {
			return
		}
		e.buf.WriteByte('{')
		e.word(word)
		e.buf.WriteByte(' ')
		e.text(value)
		e.buf.WriteByte('}')
	}
	writeGroup("title", m.Title)
	writeGroup("author", m.Author)
	writeGroup("subject", m.Subject)
	writeGroup("company", m.Company)
	if !m.Created.IsZero() {
		e.buf.WriteString(`{\creatim`)
		e.wordN("yr", m.Created.Year())
		e.wordN("mo", int(m.Created.Month()))
		e.wordN("dy", m.Created.Day())
		e.wordN("hr", m.Created.Hour())
		e.wordN("min", m.Created.Minute())
		e.buf.WriteByte('}')
	}
	writeGroup("doccomm", m.Comment)
	e.buf.WriteString("}\n")
}

func (e *encoder) encodeLayout() {
	l := e.doc.Layout
	e.wordN("paperw", l.PaperWidth)
	e.wordN("paperh", l.PaperHeight)
	e.wordN("margt", l.MarginTop)
	e.wordN("margr", l.MarginRight)
	e.wordN("margb", l.MarginBottom)
	e.wordN("margl", l.MarginLeft)
	if l.FontSize > 0 {
		e.wordN("fs", l.FontSize)
	}
	for _, tab := range l.TabStops {
		e.wordN("tx", tab)
	}
	e.buf.WriteString("\n" + `\plain\widowctrl\hyphauto\ftnbj` + "\n")
}

// encodeFooter emits the running footer group: case name with a centered
// page number on the first line, then the cause number and document title,
// all under a thin top border.
func (e *encoder) encodeFooter() error {
	f := e.doc.Footer
	if f == nil {
		return nil
	}
	usable := e.doc.Layout.UsableWidth()
	e.buf.WriteString(`{\footer\pard\plain\ql\fs22\b`)
	e.buf.WriteString(`\tqc`)
	e.wordN("tx", usable/2)
	e.buf.WriteString(`\tqr`)
	e.wordN("tx", usable)
	e.buf.WriteString(`\adjustright\brdrt\brdrs\brdrw10\brsp20 `)
	e.text(strings.ToUpper(f.CaseName))
	e.buf.WriteString(`\tab\tab PAGE \chpgn\line `)
	e.text("Cause #" + f.CauseNumber)
	e.buf.WriteString(`\line `)
	e.text(f.Title)
	e.buf.WriteString("\\par}\n")
	return nil
}

// encodeBlock dispatches over the closed set of block-level nodes. depth is
// the table nesting depth, zero outside tables.
func (e *encoder) encodeBlock(n model.Node, depth int) error {
	switch n := n.(type) {
	case *model.Paragraph:
		return e.encodeParagraph(n, depth, model.AlignLeft, true)
	case *model.Table:
		return e.encodeTable(n, depth+1)
	case *model.PageBreak:
		e.word("page")
		e.buf.WriteByte('\n')
		return nil
	case *model.SectionBreak:
		e.word("sect")
		e.buf.WriteByte('\n')
		return nil
	default:
		return fmt.Errorf("writer: unsupported block node %s", n.Type())
	}
}

// encodeParagraph emits one paragraph. depth is the table nesting depth;
// cellAlign is the owning column's alignment for in-cell paragraphs; par
// controls whether the closing \par is emitted (the final paragraph of a
// cell ends with \cell instead).
func (e *encoder) encodeParagraph(p *model.Paragraph, depth int, cellAlign model.Alignment, par bool) error {
	e.buf.WriteString(`{\pard`)
	if depth > 0 {
		e.word("intbl")
		if depth > 1 {
			e.wordN("itap", depth)
		}
	}

	styled := p.Style != model.NoRef
	if styled {
		entry, ok := e.doc.Styles.Get(p.Style)
		if !ok || entry.Kind != model.StyleParagraph {
			return fmt.Errorf("%w: paragraph style index %d", ErrUnresolvedReference, p.Style)
		}
		e.wordN("s", entry.Index)
		e.paraStyleWords(entry.StyleDef)
		e.charStyleWords(entry.StyleDef)
	}

	props := p.Props
	if !styled {
		align := props.Alignment
		if depth > 0 && align == model.AlignLeft {
			align = cellAlign
		}
		e.alignmentWord(align)
	} else if props.Alignment != model.AlignLeft {
		e.alignmentWord(props.Alignment)
	}
	if props.DoubleSpaced {
		e.buf.WriteString(`\sl480\slmult1`)
	}
	if props.KeepWithNext {
		e.word("keepn")
	}
	if props.FirstLineIndent > 0 {
		e.wordN("fi", props.FirstLineIndent)
	}
	if props.LeftIndent > 0 {
		e.wordN("li", props.LeftIndent)
	}
	if props.BorderTop {
		e.buf.WriteString(`\brdrt\brdrs\brdrw10\brsp20`)
	}
	for _, tab := range props.Tabs {
		switch tab.Kind {
		case model.TabCenter:
			e.word("tqc")
		case model.TabRight:
			e.word("tqr")
		case model.TabDecimal:
			e.word("tqdec")
		}
		e.wordN("tx", tab.Pos)
	}
	e.buf.WriteByte(' ')

	for _, child := range p.Children() {
		switch child := child.(type) {
		case *model.Run:
			if err := e.encodeRun(child); err != nil {
				return err
			}
		case *model.LineBreak:
			e.buf.WriteString(`\line `)
		default:
			return fmt.Errorf("writer: unsupported inline node %s", child.Type())
		}
	}

	if par {
		e.word("par")
	}
	e.buf.WriteString("}\n")
	return nil
}

func (e *encoder) encodeRun(r *model.Run) error {
	e.buf.WriteByte('{')
	mark := e.buf.Len()

	if r.Style != model.NoRef {
		entry, ok := e.doc.Styles.Get(r.Style)
		if !ok || entry.Kind != model.StyleCharacter {
			return fmt.Errorf("%w: character style index %d", ErrUnresolvedReference, r.Style)
		}
		e.wordN("cs", entry.Index)
		e.charStyleWords(entry.StyleDef)
	}

	props := r.Props
	if props.Font != model.NoRef {
		if !e.doc.Fonts.Has(props.Font) {
			return fmt.Errorf("%w: font index %d", ErrUnresolvedReference, props.Font)
		}
		e.wordN("f", props.Font)
	}
	if props.Color != model.NoRef {
		if !e.doc.Colors.Has(props.Color) {
			return fmt.Errorf("%w: color index %d", ErrUnresolvedReference, props.Color)
		}
		e.wordN("cf", props.Color)
	}
	if props.Size > 0 {
		e.wordN("fs", props.Size)
	}
	if props.Bold {
		e.word("b")
	}
	if props.Italic {
		e.word("i")
	}
	switch props.Underline {
	case model.UnderlineSingle:
		e.word("ul")
	case model.UnderlineDouble:
		e.word("uldb")
	}
	if props.Caps {
		e.word("caps")
	}
	if props.SmallCaps {
		e.word("scaps")
	}
	if props.Strike {
		e.word("strike")
	}
	if props.Outline {
		e.word("outl")
	}

	if e.buf.Len() > mark {
		e.buf.WriteByte(' ')
	}
	e.text(r.Text)
	e.buf.WriteByte('}')
	return nil
}

// cellExtents resolves column widths to cumulative right-edge positions in
// twips, scaled so the table fills the usable page width.
func cellExtents(cols []model.Column, usable int) []int {
	widths := make([]float64, len(cols))
	var total float64
	for i, c := range cols {
		w := c.Width
		if w <= 1 {
			w *= float64(usable)
		}
		widths[i] = w
		total += w
	}
	extents := make([]int, len(cols))
	var running float64
	for i, w := range widths {
		running += w / total * float64(usable)
		extents[i] = int(running)
	}
	return extents
}

func (e *encoder) encodeTable(t *model.Table, depth int) error {
	cols := t.Columns()
	extents := cellExtents(cols, e.doc.Layout.UsableWidth())

	for _, row := range t.Rows() {
		if depth == 1 {
			e.buf.WriteString(`{\trowd\trgaph180`)
			e.rowDefs(cols, extents)
			e.buf.WriteByte('\n')
		}
		for i, cell := range row.Cells() {
			if err := e.encodeCell(cell, cols[i].Alignment, depth); err != nil {
				return err
			}
		}
		if depth == 1 {
			e.buf.WriteString("\\row}\n")
		} else {
			// Nested rows declare their properties after the cells.
			e.buf.WriteString(`{\*\nesttableprops\trowd\trgaph180`)
			e.rowDefs(cols, extents)
			e.buf.WriteString("\\nestrow}\n")
		}
	}
	return nil
}

func (e *encoder) rowDefs(cols []model.Column, extents []int) {
	for i, col := range cols {
		for _, side := range []struct {
			letter byte
			word   string
		}{{'l', "clbrdrl"}, {'r', "clbrdrr"}, {'t', "clbrdrt"}, {'b', "clbrdrb"}} {
			if col.Borders.Has(side.letter) {
				e.word(side.word)
				e.buf.WriteString(`\brdrs\brdrw10`)
			}
		}
		e.wordN("cellx", extents[i])
	}
}

func (e *encoder) encodeCell(c *model.Cell, align model.Alignment, depth int) error {
	blocks := c.Blocks()
	if len(blocks) == 0 {
		e.buf.WriteString(`{\pard\intbl`)
		if depth > 1 {
			e.wordN("itap", depth)
		}
		e.cellEnd(depth)
		e.buf.WriteString("}\n")
		return nil
	}
	for i, block := range blocks {
		last := i == len(blocks)-1
		switch block := block.(type) {
		case *model.Paragraph:
			if err := e.encodeParagraph(block, depth, align, !last); err != nil {
				return err
			}
			if last {
				// Close of encodeParagraph wrote "}\n"; the cell
				// terminator must sit inside a group of its own.
				e.buf.Truncate(e.buf.Len() - 2)
				e.cellEnd(depth)
				e.buf.WriteString("}\n")
			}
		case *model.Table:
			if err := e.encodeTable(block, depth+1); err != nil {
				return err
			}
			if last {
				e.buf.WriteString(`{\pard\intbl`)
				if depth > 1 {
					e.wordN("itap", depth)
				}
				e.cellEnd(depth)
				e.buf.WriteString("}\n")
			}
		}
	}
	return nil
}

func (e *encoder) cellEnd(depth int) {
	if depth > 1 {
		e.word("nestcell")
	} else {
		e.word("cell")
	}
}
