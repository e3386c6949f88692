// Package markup converts a light inline text notation into styled document
// runs: double underscores toggle bold, single underscores italics, double
// square brackets small caps, and a literal newline becomes a line break.
//
//	spans, err := markup.Parse("Smith provides the __accompanying__ responses")
//
// The notation covers the conventions used in generated legal text, not a
// full Markdown dialect. Spans do not nest.
package markup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/tsawler/scribe/model"
)

// ErrBadMarkup is returned for notation that cannot be parsed, such as an
// unterminated span.
var ErrBadMarkup = errors.New("markup: malformed inline notation")

// SpanKind identifies the formatting of a parsed span.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanBold
	SpanItalic
	SpanSmallCaps
	SpanLineBreak
)

func (k SpanKind) String() string {
	switch k {
	case SpanText:
		return "text"
	case SpanBold:
		return "bold"
	case SpanItalic:
		return "italic"
	case SpanSmallCaps:
		return "small-caps"
	case SpanLineBreak:
		return "line-break"
	default:
		return "unknown"
	}
}

// Span is a contiguous piece of input under a single formatting.
type Span struct {
	Kind SpanKind
	Text string
}

var (
	spanLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Newline", Pattern: `\n`},
		{Name: "BoldMark", Pattern: `__`},
		{Name: "ItalicMark", Pattern: `_`},
		{Name: "ScapsOpen", Pattern: `\[\[`},
		{Name: "ScapsClose", Pattern: `\]\]`},
		{Name: "Bracket", Pattern: `[\[\]]`},
		{Name: "Text", Pattern: `[^_\[\]\n]+`},
	})

	spanParser = participle.MustBuild[spanList](
		participle.Lexer(spanLexer),
	)
)

type spanList struct {
	Spans []*rawSpan `parser:"@@*"`
}

type rawSpan struct {
	LineBreak bool    `parser:"  @Newline"`
	Bold      *string `parser:"| BoldMark @(Text | Bracket | ScapsOpen | ScapsClose)* BoldMark"`
	Italic    *string `parser:"| ItalicMark @(Text | Bracket | ScapsOpen | ScapsClose)* ItalicMark"`
	SmallCaps *string `parser:"| ScapsOpen @(Text | Bracket | ItalicMark | BoldMark)* ScapsClose"`
	Text      *string `parser:"| @(Text | Bracket)+"`
}

// Parse splits src into formatted spans. Adjacent plain text is returned as
// a single span; empty input yields no spans.
func Parse(src string) ([]Span, error) {
	parsed, err := spanParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMarkup, err)
	}

	var spans []Span
	for _, raw := range parsed.Spans {
		switch {
		case raw.LineBreak:
			spans = append(spans, Span{Kind: SpanLineBreak})
		case raw.Bold != nil:
			spans = append(spans, Span{Kind: SpanBold, Text: strings.TrimSpace(*raw.Bold)})
		case raw.Italic != nil:
			spans = append(spans, Span{Kind: SpanItalic, Text: strings.TrimSpace(*raw.Italic)})
		case raw.SmallCaps != nil:
			spans = append(spans, Span{Kind: SpanSmallCaps, Text: strings.TrimSpace(*raw.SmallCaps)})
		case raw.Text != nil:
			spans = append(spans, Span{Kind: SpanText, Text: *raw.Text})
		}
	}
	return spans, nil
}

// Append parses src and appends the resulting runs and line breaks to p.
// base supplies formatting shared by every run; the span kind switches on
// the matching property. References in base must be registered in doc.
func Append(p *model.Paragraph, doc *model.Document, src string, base model.RunProps) error {
	spans, err := Parse(src)
	if err != nil {
		return err
	}
	for _, span := range spans {
		if span.Kind == SpanLineBreak {
			if err := p.AddLineBreak(); err != nil {
				return err
			}
			continue
		}
		props := base
		switch span.Kind {
		case SpanBold:
			props.Bold = true
		case SpanItalic:
			props.Italic = true
		case SpanSmallCaps:
			props.SmallCaps = true
		}
		run, err := doc.NewRun(span.Text, props)
		if err != nil {
			return err
		}
		if err := p.AddRun(run); err != nil {
			return err
		}
	}
	return nil
}

// Paragraph parses src into a new paragraph with the given paragraph
// formatting.
func Paragraph(doc *model.Document, src string, pprops model.ParaProps, base model.RunProps) (*model.Paragraph, error) {
	p := doc.NewParagraph(pprops)
	if err := Append(p, doc, src, base); err != nil {
		return nil, err
	}
	return p, nil
}
