// Package scribe provides a fluent API for building RTF documents from
// structured content.
//
// Basic usage:
//
//	data, err := scribe.New(scribe.WithTitle("Discovery Responses")).
//	    Text("Respondent serves these responses on all parties.").
//	    Markup("See _Smith v. Jones_ for the governing standard.").
//	    PageBreak().
//	    Bytes()
//	if err != nil {
//	    // handle error
//	}
//
// For direct control over the document tree, the lower-level model and
// writer packages are also available; Doc exposes the document under
// construction so fonts, colors, and styles can be registered mid-chain.
package scribe

import (
	"io"

	"github.com/tsawler/scribe/htmldoc"
	"github.com/tsawler/scribe/markup"
	"github.com/tsawler/scribe/model"
	"github.com/tsawler/scribe/writer"
)

// Builder accumulates document content through chained calls. The first
// error stops all further mutation and surfaces from the terminal methods.
//
// Example:
//
//	doc, err := scribe.New().
//	    Heading("Certificate of Service").
//	    Text("I certify that a true and correct copy was served.").
//	    Document()
type Builder struct {
	doc  *model.Document
	sect *model.Section

	// Accumulated error (fail-fast)
	err error
}

// New creates a Builder with an open first section, applying any options to
// the underlying document.
func New(opts ...Option) *Builder {
	b := &Builder{
		doc:  model.NewDocument(),
		sect: model.NewSection(),
	}
	for _, opt := range opts {
		if err := opt(b.doc); err != nil {
			b.err = err
			break
		}
	}
	return b
}

// Doc returns the document under construction, for registering fonts,
// colors, and styles used by later chain calls.
func (b *Builder) Doc() *model.Document {
	return b.doc
}

// Err returns the first error encountered by the chain, if any.
func (b *Builder) Err() error {
	return b.err
}

// fail records the chain's first error.
func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Add appends prebuilt block nodes, such as those returned by the pleading
// package, to the current section.
func (b *Builder) Add(nodes ...model.Node) *Builder {
	if b.err != nil {
		return b
	}
	for _, n := range nodes {
		if err := b.sect.Add(n); err != nil {
			return b.fail(err)
		}
	}
	return b
}

// Text appends a paragraph of plain text with default formatting.
func (b *Builder) Text(text string) *Builder {
	if b.err != nil {
		return b
	}
	return b.Add(b.doc.NewTextParagraph(text, model.ParaProps{}))
}

// Paragraph appends a paragraph of plain text with the given paragraph
// properties.
func (b *Builder) Paragraph(text string, props model.ParaProps) *Builder {
	if b.err != nil {
		return b
	}
	return b.Add(b.doc.NewTextParagraph(text, props))
}

// Heading appends a bold, centered paragraph kept with the text that
// follows it.
func (b *Builder) Heading(text string) *Builder {
	if b.err != nil {
		return b
	}
	props := model.NewRunProps()
	props.Bold = true
	run, err := b.doc.NewRun(text, props)
	if err != nil {
		return b.fail(err)
	}
	p := b.doc.NewParagraph(model.ParaProps{
		Alignment:    model.AlignCenter,
		KeepWithNext: true,
	})
	if err := p.AddRun(run); err != nil {
		return b.fail(err)
	}
	return b.Add(p)
}

// Markup appends a paragraph built from lightweight markup: __bold__,
// _italic_, [[small caps]], and newline line breaks.
func (b *Builder) Markup(src string) *Builder {
	return b.MarkupParagraph(src, model.ParaProps{}, model.NewRunProps())
}

// MarkupParagraph appends a markup paragraph with explicit paragraph
// properties and base run formatting.
func (b *Builder) MarkupParagraph(src string, pprops model.ParaProps, base model.RunProps) *Builder {
	if b.err != nil {
		return b
	}
	p, err := markup.Paragraph(b.doc, src, pprops, base)
	if err != nil {
		return b.fail(err)
	}
	return b.Add(p)
}

// HTML appends the block-level content of an HTML fragment.
func (b *Builder) HTML(src string) *Builder {
	if b.err != nil {
		return b
	}
	blocks, err := htmldoc.Fragment(b.doc, src)
	if err != nil {
		return b.fail(err)
	}
	return b.Add(blocks...)
}

// Table appends a table built from a grid of plain-text cells. Every row of
// cells must have one entry per column.
func (b *Builder) Table(columns []model.Column, cells [][]string) *Builder {
	if b.err != nil {
		return b
	}
	tbl, err := model.NewTable(columns...)
	if err != nil {
		return b.fail(err)
	}
	for _, texts := range cells {
		row := model.NewRow()
		for _, text := range texts {
			cell, err := model.NewCell(b.doc.NewTextParagraph(text, model.ParaProps{}))
			if err != nil {
				return b.fail(err)
			}
			if err := row.AddCell(cell); err != nil {
				return b.fail(err)
			}
		}
		if err := tbl.AddRow(row); err != nil {
			return b.fail(err)
		}
	}
	return b.Add(tbl)
}

// PageBreak forces the following content onto a new page.
func (b *Builder) PageBreak() *Builder {
	if b.err != nil {
		return b
	}
	return b.Add(&model.PageBreak{})
}

// Section closes the current section and opens a new one.
func (b *Builder) Section() *Builder {
	if b.err != nil {
		return b
	}
	if err := b.doc.AddSection(b.sect); err != nil {
		return b.fail(err)
	}
	b.sect = model.NewSection()
	return b
}

// Footer sets the running page footer.
func (b *Builder) Footer(caseName, causeNumber, title string) *Builder {
	if b.err != nil {
		return b
	}
	b.doc.Footer = &model.Footer{
		CaseName:    caseName,
		CauseNumber: causeNumber,
		Title:       title,
	}
	return b
}

// Document closes the open section and returns the finished document tree.
func (b *Builder) Document() (*model.Document, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.doc.AddSection(b.sect); err != nil {
		return nil, err
	}
	// The builder is done; further chain calls would re-attach the
	// closed section, so leave it in place and let attach reject them.
	return b.doc, nil
}

// Bytes closes the document and encodes it to RTF.
func (b *Builder) Bytes() ([]byte, error) {
	doc, err := b.Document()
	if err != nil {
		return nil, err
	}
	return writer.Encode(doc)
}

// WriteTo closes the document and writes the encoded RTF to w. Nothing is
// written when encoding fails.
func (b *Builder) WriteTo(w io.Writer) error {
	doc, err := b.Document()
	if err != nil {
		return err
	}
	return writer.EncodeTo(w, doc)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	data := scribe.Must(scribe.New().Text("hello").Bytes())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
