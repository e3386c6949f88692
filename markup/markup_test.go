package markup

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/scribe/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{
			"plain text",
			"nothing special here",
			[]Span{{Kind: SpanText, Text: "nothing special here"}},
		},
		{
			"bold span",
			"provides the __accompanying__ responses",
			[]Span{
				{Kind: SpanText, Text: "provides the "},
				{Kind: SpanBold, Text: "accompanying"},
				{Kind: SpanText, Text: " responses"},
			},
		},
		{
			"italic span",
			"see _Smith v. Jones_ at 12",
			[]Span{
				{Kind: SpanText, Text: "see "},
				{Kind: SpanItalic, Text: "Smith v. Jones"},
				{Kind: SpanText, Text: " at 12"},
			},
		},
		{
			"small caps span",
			"[[Requests for Production]] propounded",
			[]Span{
				{Kind: SpanSmallCaps, Text: "Requests for Production"},
				{Kind: SpanText, Text: " propounded"},
			},
		},
		{
			"line breaks",
			"first\nsecond",
			[]Span{
				{Kind: SpanText, Text: "first"},
				{Kind: SpanLineBreak},
				{Kind: SpanText, Text: "second"},
			},
		},
		{
			"mixed",
			"__Name__ filed _objections_\ntoday",
			[]Span{
				{Kind: SpanBold, Text: "Name"},
				{Kind: SpanText, Text: " filed "},
				{Kind: SpanItalic, Text: "objections"},
				{Kind: SpanLineBreak},
				{Kind: SpanText, Text: "today"},
			},
		},
		{
			"empty input",
			"",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseUnterminated(t *testing.T) {
	tests := []string{
		"an _unclosed italic",
		"an __unclosed bold",
		"an [[unclosed scaps",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if !errors.Is(err, ErrBadMarkup) {
				t.Errorf("Parse(%q) error = %v, want ErrBadMarkup", in, err)
			}
		})
	}
}

func TestAppendBuildsStyledRuns(t *testing.T) {
	doc := model.NewDocument()
	p := doc.NewParagraph(model.ParaProps{})

	err := Append(p, doc, "plain __bold__ and _italic_\nnext", model.NewRunProps())
	if err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	children := p.Children()
	if len(children) != 6 {
		t.Fatalf("children = %d, want 6", len(children))
	}

	bold, ok := children[1].(*model.Run)
	if !ok || !bold.Props.Bold {
		t.Errorf("child 1 = %v, want bold run", children[1])
	}
	italic, ok := children[3].(*model.Run)
	if !ok || !italic.Props.Italic {
		t.Errorf("child 3 = %v, want italic run", children[3])
	}
	if children[4].Type() != model.NodeLineBreak {
		t.Errorf("child 4 = %s, want LineBreak", children[4].Type())
	}
}

func TestAppendKeepsBaseProps(t *testing.T) {
	doc := model.NewDocument()
	red, _ := doc.Colors.Register(255, 0, 0)

	base := model.NewRunProps()
	base.Color = red
	base.SmallCaps = true

	p := doc.NewParagraph(model.ParaProps{})
	if err := Append(p, doc, "colored __emphasis__", base); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	for i, child := range p.Children() {
		run, ok := child.(*model.Run)
		if !ok {
			continue
		}
		if run.Props.Color != red || !run.Props.SmallCaps {
			t.Errorf("run %d lost base props: %+v", i, run.Props)
		}
	}
}

func TestParagraphPropagatesDanglingRef(t *testing.T) {
	doc := model.NewDocument()
	base := model.NewRunProps()
	base.Font = 4

	_, err := Paragraph(doc, "text", model.ParaProps{}, base)
	if !errors.Is(err, model.ErrDanglingReference) {
		t.Errorf("Paragraph() error = %v, want ErrDanglingReference", err)
	}
}
