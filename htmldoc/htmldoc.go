// Package htmldoc converts trusted HTML fragments into document nodes, so
// content authored as simple HTML can be dropped into an RTF document.
//
// The supported subset is block-level p, h1-h6, ul, ol, li, and table
// markup, with b/strong, i/em, u, and br inline. Unknown elements contribute
// their text content; scripts and styles are skipped.
package htmldoc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/scribe/model"
)

// inlineState tracks the formatting inherited from enclosing inline
// elements during traversal.
type inlineState struct {
	bold      bool
	italic    bool
	underline bool
}

func (s inlineState) props(base model.RunProps) model.RunProps {
	p := base
	if s.bold {
		p.Bold = true
	}
	if s.italic {
		p.Italic = true
	}
	if s.underline {
		p.Underline = model.UnderlineSingle
	}
	return p
}

type converter struct {
	doc    *model.Document
	base   model.RunProps
	blocks []model.Node

	// Current paragraph being filled; nil between blocks.
	para *model.Paragraph
}

// Fragment parses src and returns the resulting block-level nodes, built
// against doc's tables. Heading sizes are derived from the document's
// default font size.
func Fragment(doc *model.Document, src string) ([]model.Node, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parsing fragment: %w", err)
	}

	c := &converter{doc: doc, base: model.NewRunProps()}
	body := findElement(root, "body")
	if body == nil {
		body = root
	}
	if err := c.walk(body, inlineState{}); err != nil {
		return nil, err
	}
	c.flush()
	return c.blocks, nil
}

// flush closes the paragraph under construction, dropping it when empty.
func (c *converter) flush() {
	if c.para == nil {
		return
	}
	if len(c.para.Children()) > 0 {
		c.blocks = append(c.blocks, c.para)
	}
	c.para = nil
}

func (c *converter) current(props model.ParaProps) *model.Paragraph {
	if c.para == nil {
		c.para = c.doc.NewParagraph(props)
	}
	return c.para
}

func (c *converter) addText(text string, st inlineState) error {
	if text == "" {
		return nil
	}
	// Whitespace between blocks is formatting, not content.
	if text == " " && c.para == nil {
		return nil
	}
	run, err := c.doc.NewRun(text, st.props(c.base))
	if err != nil {
		return err
	}
	return c.current(model.ParaProps{}).AddRun(run)
}

func (c *converter) walk(n *html.Node, st inlineState) error {
	switch n.Type {
	case html.TextNode:
		return c.addText(collapseSpace(n.Data), st)
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "head", "nav":
			return nil
		case "b", "strong":
			st.bold = true
		case "i", "em":
			st.italic = true
		case "u":
			st.underline = true
		case "br":
			return c.current(model.ParaProps{}).AddLineBreak()
		case "p", "div":
			c.flush()
			if err := c.walkChildren(n, st); err != nil {
				return err
			}
			c.flush()
			return nil
		case "h1", "h2", "h3", "h4", "h5", "h6":
			return c.heading(n, int(n.Data[1]-'0'), st)
		case "ul", "ol":
			return c.list(n, n.Data == "ol", st)
		case "table":
			return c.table(n, st)
		}
	}
	return c.walkChildren(n, st)
}

func (c *converter) walkChildren(n *html.Node, st inlineState) error {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := c.walk(child, st); err != nil {
			return err
		}
	}
	return nil
}

// heading emits a bold keep-with-next paragraph, two half-points larger per
// level above h6.
func (c *converter) heading(n *html.Node, level int, st inlineState) error {
	c.flush()
	text := strings.TrimSpace(textContent(n))
	if text == "" {
		return nil
	}
	props := st.props(c.base)
	props.Bold = true
	props.Size = c.doc.Layout.FontSize + 2*(7-level)
	run, err := c.doc.NewRun(text, props)
	if err != nil {
		return err
	}
	p := c.doc.NewParagraph(model.ParaProps{KeepWithNext: true})
	if err := p.AddRun(run); err != nil {
		return err
	}
	c.blocks = append(c.blocks, p)
	return nil
}

// list emits one indented paragraph per item, bulleted or numbered.
func (c *converter) list(n *html.Node, ordered bool, st inlineState) error {
	c.flush()
	item := 0
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.Data != "li" {
			continue
		}
		text := strings.TrimSpace(textContent(child))
		if text == "" {
			continue
		}
		item++
		marker := "• "
		if ordered {
			marker = fmt.Sprintf("%d. ", item)
		}
		run, err := c.doc.NewRun(marker+text, st.props(c.base))
		if err != nil {
			return err
		}
		p := c.doc.NewParagraph(model.ParaProps{LeftIndent: model.Inches(0.5)})
		if err := p.AddRun(run); err != nil {
			return err
		}
		c.blocks = append(c.blocks, p)
	}
	return nil
}

// table converts rows of td/th cells into a model table with equal column
// widths. Header cells come out bold.
func (c *converter) table(n *html.Node, st inlineState) error {
	c.flush()

	var rows [][]*model.Paragraph
	var cols int
	var visit func(*html.Node) error
	visit = func(n *html.Node) error {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var row []*model.Paragraph
			for cell := n.FirstChild; cell != nil; cell = cell.NextSibling {
				if cell.Type != html.ElementNode || (cell.Data != "td" && cell.Data != "th") {
					continue
				}
				cs := st
				if cell.Data == "th" {
					cs.bold = true
				}
				run, err := c.doc.NewRun(strings.TrimSpace(textContent(cell)), cs.props(c.base))
				if err != nil {
					return err
				}
				p := c.doc.NewParagraph(model.ParaProps{})
				if err := p.AddRun(run); err != nil {
					return err
				}
				row = append(row, p)
			}
			if len(row) > 0 {
				if len(row) > cols {
					cols = len(row)
				}
				rows = append(rows, row)
			}
			return nil
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if err := visit(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(n); err != nil {
		return err
	}
	if cols == 0 {
		return nil
	}

	columns := make([]model.Column, cols)
	for i := range columns {
		columns[i] = model.Column{Width: 1.0 / float64(cols), Borders: "lrtb"}
	}
	tbl, err := model.NewTable(columns...)
	if err != nil {
		return err
	}
	for _, cells := range rows {
		row := model.NewRow()
		for i := 0; i < cols; i++ {
			var cell *model.Cell
			if i < len(cells) {
				cell, err = model.NewCell(cells[i])
			} else {
				cell, err = model.NewCell()
			}
			if err != nil {
				return err
			}
			if err := row.AddCell(cell); err != nil {
				return err
			}
		}
		if err := tbl.AddRow(row); err != nil {
			return err
		}
	}
	c.blocks = append(c.blocks, tbl)
	return nil
}

// findElement returns the first element with the given tag name.
func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, name); found != nil {
			return found
		}
	}
	return nil
}

// textContent returns the concatenated text of n's subtree with whitespace
// collapsed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(n)
	return collapseSpace(sb.String())
}

// collapseSpace folds runs of whitespace into single spaces, preserving
// leading and trailing separation.
func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	out := strings.Join(strings.Fields(s), " ")
	if out == "" {
		return " "
	}
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
