package scribe

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/scribe/model"
)

// ==== Builder Tests ====

func TestBuilderBasicDocument(t *testing.T) {
	data, err := New(WithTitle("Responses")).
		Heading("Responses to Requests").
		Text("Respondent serves these responses on all parties.").
		Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	s := string(data)
	for _, want := range []string{
		`{\rtf1\ansi`,
		`{\title Responses}`,
		"Responses to Requests",
		"Respondent serves these responses on all parties.",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestBuilderStickyError(t *testing.T) {
	b := New().
		Table([]model.Column{{Width: 0.5}, {Width: 800}}, nil).
		Text("after the error")

	if b.Err() == nil {
		t.Fatal("Err() = nil, want shape error")
	}
	if !errors.Is(b.Err(), model.ErrTableShape) {
		t.Errorf("Err() = %v, want ErrTableShape", b.Err())
	}
	if _, err := b.Bytes(); !errors.Is(err, model.ErrTableShape) {
		t.Errorf("Bytes() error = %v, want the chain's first error", err)
	}
}

func TestBuilderOptionError(t *testing.T) {
	b := New(WithPaperSize(0, 0))
	if b.Err() == nil {
		t.Fatal("Err() = nil, want paper size error")
	}
}

func TestBuilderMarkup(t *testing.T) {
	data, err := New().
		Markup("served on __all parties__ in _good faith_").
		Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	s := string(data)
	if !strings.Contains(s, `{\b all parties}`) {
		t.Errorf("bold span missing:\n%s", s)
	}
	if !strings.Contains(s, `{\i good faith}`) {
		t.Errorf("italic span missing:\n%s", s)
	}
}

func TestBuilderMarkupError(t *testing.T) {
	b := New().Markup("an _unterminated span")
	if b.Err() == nil {
		t.Fatal("Err() = nil, want markup error")
	}
}

func TestBuilderHTML(t *testing.T) {
	data, err := New().
		HTML("<p>first</p><p><b>second</b></p>").
		Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	s := string(data)
	if !strings.Contains(s, "first") || !strings.Contains(s, `{\b second}`) {
		t.Errorf("html content missing:\n%s", s)
	}
}

func TestBuilderTable(t *testing.T) {
	cols := []model.Column{
		{Width: 0.5, Borders: "lrtb"},
		{Width: 0.5, Borders: "lrtb"},
	}
	data, err := New().
		Table(cols, [][]string{{"a", "b"}, {"c", "d"}}).
		Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	s := string(data)
	if got := strings.Count(s, `\trowd`); got != 2 {
		t.Errorf("rows = %d, want 2", got)
	}
	if got := strings.Count(s, `\cell`); got < 4 {
		t.Errorf("cell markers = %d, want at least 4", got)
	}
}

func TestBuilderSections(t *testing.T) {
	data, err := New().
		Text("one").
		Section().
		Text("two").
		Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if got := strings.Count(string(data), `\sect`); got != 1 {
		t.Errorf("section breaks = %d, want 1", got)
	}
}

func TestBuilderFooter(t *testing.T) {
	data, err := New().
		Footer("IMMO Doe and Doe", "469-55555-2019", "Responses").
		Text("body").
		Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if !strings.Contains(string(data), `{\footer`) {
		t.Error("footer group missing")
	}
}

func TestBuilderDocRegistration(t *testing.T) {
	b := New()
	red, err := b.Doc().Colors.Register(255, 0, 0)
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	base := model.NewRunProps()
	base.Color = red
	data, err := b.
		MarkupParagraph("a __warning__", model.ParaProps{}, base).
		Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if !strings.Contains(string(data), `\red255\green0\blue0;`) {
		t.Error("registered color missing from color table")
	}
}

func TestBuilderWriteTo(t *testing.T) {
	var buf bytes.Buffer
	if err := New().Text("hello").WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), `{\rtf1`) {
		t.Errorf("output does not start with RTF header: %.20q", buf.String())
	}
}

func TestBuilderWriteToFailureWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	err := New().Markup("broken __bold").WriteTo(&buf)
	if err == nil {
		t.Fatal("WriteTo() error = nil, want markup error")
	}
	if buf.Len() != 0 {
		t.Errorf("WriteTo wrote %d bytes on failure, want 0", buf.Len())
	}
}

// ==== Option Tests ====

func TestOptionsApply(t *testing.T) {
	doc, err := New(
		WithPaperSize(model.Inches(8.5), model.Inches(14)),
		WithMargins(720, 720, 720, 720),
		WithDefaultFont("Century Schoolbook", model.CharsetANSI),
		WithFontSize(28),
		WithTabStops(model.Inches(1)),
	).Text("x").Document()
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}

	if doc.Layout.PaperHeight != model.Inches(14) {
		t.Errorf("PaperHeight = %d, want %d", doc.Layout.PaperHeight, model.Inches(14))
	}
	if doc.Layout.MarginLeft != 720 {
		t.Errorf("MarginLeft = %d, want 720", doc.Layout.MarginLeft)
	}
	if doc.Layout.FontSize != 28 {
		t.Errorf("FontSize = %d, want 28", doc.Layout.FontSize)
	}
	if !doc.Fonts.Has(doc.Layout.DefaultFont) {
		t.Error("default font not registered")
	}
	if len(doc.Layout.TabStops) != 1 {
		t.Errorf("TabStops = %v, want one stop", doc.Layout.TabStops)
	}
}

func TestWithDefaultFontEmptyFamily(t *testing.T) {
	b := New(WithDefaultFont("", model.CharsetANSI))
	if !errors.Is(b.Err(), model.ErrInvalidFont) {
		t.Errorf("Err() = %v, want ErrInvalidFont", b.Err())
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(New().Markup("bad __span").Bytes())
}
