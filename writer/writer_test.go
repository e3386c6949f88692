package writer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/scribe/model"
)

func mustRun(t *testing.T, doc *model.Document, text string, props model.RunProps) *model.Run {
	t.Helper()
	r, err := doc.NewRun(text, props)
	if err != nil {
		t.Fatalf("NewRun(%q) error: %v", text, err)
	}
	return r
}

func singleParagraphDoc(t *testing.T, doc *model.Document, p *model.Paragraph) *model.Document {
	t.Helper()
	sect := model.NewSection()
	if err := sect.Add(p); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := doc.AddSection(sect); err != nil {
		t.Fatalf("AddSection() error: %v", err)
	}
	return doc
}

func TestEncodePrologue(t *testing.T) {
	doc := model.NewDocument()
	out, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	s := string(out)
	if !strings.HasPrefix(s, `{\rtf1\ansi\ansicpg1252\deff0\deflang1033\uc1`) {
		t.Errorf("missing prologue:\n%s", s)
	}
	if !strings.HasSuffix(s, "}") {
		t.Error("output does not close the document group")
	}
	if !strings.Contains(s, `{\colortbl;}`) {
		t.Error("reserved auto color slot not emitted for empty table")
	}
}

func TestEncodeBoldRunWithBraces(t *testing.T) {
	doc := model.NewDocument()
	props := model.NewRunProps()
	props.Bold = true

	p := doc.NewParagraph(model.ParaProps{})
	if err := p.AddRun(mustRun(t, doc, "Hello, {World}", props)); err != nil {
		t.Fatalf("AddRun() error: %v", err)
	}

	out, err := Encode(singleParagraphDoc(t, doc, p))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	if want := `{\b Hello, \{World\}}`; !strings.Contains(string(out), want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}

func TestEncodeTwoByTwoTable(t *testing.T) {
	doc := model.NewDocument()
	tbl, err := model.NewTable(model.Column{Width: 0.5}, model.Column{Width: 0.5})
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	for i := 0; i < 2; i++ {
		row := model.NewRow()
		for j := 0; j < 2; j++ {
			cell, err := model.NewCell(doc.NewTextParagraph("x", model.ParaProps{}))
			if err != nil {
				t.Fatalf("NewCell() error: %v", err)
			}
			if err := row.AddCell(cell); err != nil {
				t.Fatalf("AddCell() error: %v", err)
			}
		}
		if err := tbl.AddRow(row); err != nil {
			t.Fatalf("AddRow() error: %v", err)
		}
	}

	sect := model.NewSection()
	if err := sect.Add(tbl); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := doc.AddSection(sect); err != nil {
		t.Fatalf("AddSection() error: %v", err)
	}

	out, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	s := string(out)

	if got := strings.Count(s, `\trowd`); got != 2 {
		t.Errorf("row starts = %d, want 2", got)
	}
	if got := strings.Count(s, `\row`); got != 2 {
		t.Errorf("row ends = %d, want 2", got)
	}
	if got := strings.Count(s, `\cell`); got != 8 {
		// Two \cellx boundaries plus two \cell terminators per row.
		t.Errorf("cell words = %d, want 8", got)
	}
	if got := strings.Count(s, `\cellx`); got != 4 {
		t.Errorf("cell boundaries = %d, want 4", got)
	}

	// No styling registered: empty font table, bare auto color slot, no
	// stylesheet group.
	if !strings.Contains(s, `{\fonttbl}`) {
		t.Error("expected empty font table")
	}
	if !strings.Contains(s, `{\colortbl;}`) {
		t.Error("expected color table with only the auto slot")
	}
	if strings.Contains(s, `\stylesheet`) {
		t.Error("unexpected stylesheet group")
	}
}

func TestEncodeFontTableMatchesRegistrations(t *testing.T) {
	doc := model.NewDocument()
	times, _ := doc.Fonts.Register("Times New Roman", model.CharsetANSI)
	blue, _ := doc.Colors.Register(0, 0, 255)
	_, _ = doc.Fonts.Register("Times New Roman", model.CharsetANSI) // dup
	courier, _ := doc.Fonts.Register("Courier New", model.CharsetANSI)

	props := model.NewRunProps()
	props.Font = times
	p := doc.NewParagraph(model.ParaProps{})
	if err := p.AddRun(mustRun(t, doc, "a", props)); err != nil {
		t.Fatal(err)
	}
	props2 := model.NewRunProps()
	props2.Font = courier
	props2.Color = blue
	if err := p.AddRun(mustRun(t, doc, "b", props2)); err != nil {
		t.Fatal(err)
	}

	out, err := Encode(singleParagraphDoc(t, doc, p))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	s := string(out)

	if got := strings.Count(s, `\fnil`); got != 2 {
		t.Errorf("font table entries = %d, want 2 (deduped)", got)
	}
	if !strings.Contains(s, `{\f0\fnil\fcharset0 Times New Roman;}`) {
		t.Errorf("missing font 0 declaration:\n%s", s)
	}
	if !strings.Contains(s, `{\f1\fnil\fcharset0 Courier New;}`) {
		t.Errorf("missing font 1 declaration:\n%s", s)
	}
	if !strings.Contains(s, `\red0\green0\blue255;`) {
		t.Error("missing registered color entry")
	}
}

func TestEncodeStyledParagraph(t *testing.T) {
	doc := model.NewDocument()
	font, _ := doc.Fonts.Register("Calibri", model.CharsetANSI)

	def := model.NewStyleDef("Heading")
	def.Font = font
	def.Bold = true
	def.Alignment = model.AlignCenter
	idx, err := doc.Styles.Register(model.StyleParagraph, def)
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	p, err := doc.NewStyledParagraph(idx, model.ParaProps{})
	if err != nil {
		t.Fatalf("NewStyledParagraph() error: %v", err)
	}
	if err := p.AddRun(doc.NewText("Title")); err != nil {
		t.Fatal(err)
	}

	out, err := Encode(singleParagraphDoc(t, doc, p))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	s := string(out)

	if !strings.Contains(s, `{\stylesheet{\s1\qc\f0\b Heading;}}`) {
		t.Errorf("stylesheet not emitted as expected:\n%s", s)
	}
	if !strings.Contains(s, `\s1`) {
		t.Error("body does not reference the paragraph style")
	}
}

func TestEncodeSectionBreaks(t *testing.T) {
	doc := model.NewDocument()
	for i := 0; i < 3; i++ {
		sect := model.NewSection()
		if err := sect.Add(doc.NewTextParagraph("s", model.ParaProps{})); err != nil {
			t.Fatal(err)
		}
		if err := doc.AddSection(sect); err != nil {
			t.Fatal(err)
		}
	}

	out, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	if got := strings.Count(string(out), `\sect`); got != 2 {
		t.Errorf("section breaks = %d, want 2 (none before the first section)", got)
	}
}

func TestEncodeUnresolvedReference(t *testing.T) {
	tests := []struct {
		name  string
		build func(doc *model.Document) *model.Paragraph
	}{
		{
			"run font set by hand",
			func(doc *model.Document) *model.Paragraph {
				p := doc.NewParagraph(model.ParaProps{})
				r := doc.NewText("x")
				r.Props.Font = 5
				_ = p.AddRun(r)
				return p
			},
		},
		{
			"run color set by hand",
			func(doc *model.Document) *model.Paragraph {
				p := doc.NewParagraph(model.ParaProps{})
				r := doc.NewText("x")
				r.Props.Color = 9
				_ = p.AddRun(r)
				return p
			},
		},
		{
			"run style set by hand",
			func(doc *model.Document) *model.Paragraph {
				p := doc.NewParagraph(model.ParaProps{})
				r := doc.NewText("x")
				r.Style = 3
				_ = p.AddRun(r)
				return p
			},
		},
		{
			"paragraph style set by hand",
			func(doc *model.Document) *model.Paragraph {
				p := doc.NewParagraph(model.ParaProps{})
				_ = p.AddRun(doc.NewText("x"))
				p.Style = 2
				return p
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := model.NewDocument()
			p := tt.build(doc)
			out, err := Encode(singleParagraphDoc(t, doc, p))
			if !errors.Is(err, ErrUnresolvedReference) {
				t.Errorf("Encode() error = %v, want ErrUnresolvedReference", err)
			}
			if out != nil {
				t.Error("Encode() returned partial output alongside an error")
			}
		})
	}
}

func TestEncodeToWritesNothingOnError(t *testing.T) {
	doc := model.NewDocument()
	p := doc.NewParagraph(model.ParaProps{})
	r := doc.NewText("x")
	r.Props.Font = 1
	_ = p.AddRun(r)

	var buf bytes.Buffer
	if err := EncodeTo(&buf, singleParagraphDoc(t, doc, p)); err == nil {
		t.Fatal("EncodeTo() succeeded with a dangling reference")
	}
	if buf.Len() != 0 {
		t.Errorf("EncodeTo() wrote %d bytes before failing", buf.Len())
	}
}

func TestEncodeFooter(t *testing.T) {
	doc := model.NewDocument()
	doc.Footer = &model.Footer{
		CaseName:    "IMMO Doe and Doe",
		CauseNumber: "469-55555-2019",
		Title:       "Responses to Requests for Production",
	}
	sect := model.NewSection()
	if err := sect.Add(doc.NewTextParagraph("body", model.ParaProps{})); err != nil {
		t.Fatal(err)
	}
	if err := doc.AddSection(sect); err != nil {
		t.Fatal(err)
	}

	out, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	s := string(out)

	if !strings.Contains(s, `{\footer`) {
		t.Error("footer group missing")
	}
	if !strings.Contains(s, "IMMO DOE AND DOE") {
		t.Error("case name not upper-cased in footer")
	}
	if !strings.Contains(s, `PAGE \chpgn`) {
		t.Error("page number field missing from footer")
	}
	if !strings.Contains(s, "Cause #469-55555-2019") {
		t.Error("cause number missing from footer")
	}
}

func TestEncodeNestedTable(t *testing.T) {
	doc := model.NewDocument()

	inner, _ := model.NewTable(model.Column{Width: 1.0})
	irow := model.NewRow()
	icell, _ := model.NewCell(doc.NewTextParagraph("inner", model.ParaProps{}))
	if err := irow.AddCell(icell); err != nil {
		t.Fatal(err)
	}
	if err := inner.AddRow(irow); err != nil {
		t.Fatal(err)
	}

	outer, _ := model.NewTable(model.Column{Width: 1.0})
	orow := model.NewRow()
	ocell, _ := model.NewCell(inner)
	if err := orow.AddCell(ocell); err != nil {
		t.Fatal(err)
	}
	if err := outer.AddRow(orow); err != nil {
		t.Fatal(err)
	}

	sect := model.NewSection()
	if err := sect.Add(outer); err != nil {
		t.Fatal(err)
	}
	if err := doc.AddSection(sect); err != nil {
		t.Fatal(err)
	}

	out, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	s := string(out)

	if !strings.Contains(s, `\nestcell`) || !strings.Contains(s, `\nesttableprops`) {
		t.Errorf("nested table not preserved:\n%s", s)
	}
	if !strings.Contains(s, `\itap2`) {
		t.Error("inner paragraphs missing nesting depth")
	}
	if strings.Count(s, `\trowd`) < 2 {
		t.Error("inner row definition was flattened away")
	}
}

func TestCellExtents(t *testing.T) {
	tests := []struct {
		name   string
		widths []float64
		usable int
		want   []int
	}{
		{"even fractions", []float64{0.5, 0.5}, 9360, []int{4680, 9360}},
		{"twips rescaled to fill", []float64{2340, 2340}, 9360, []int{4680, 9360}},
		{"uneven fractions", []float64{0.25, 0.75}, 9360, []int{2340, 9360}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := make([]model.Column, len(tt.widths))
			for i, w := range tt.widths {
				cols[i] = model.Column{Width: w}
			}
			got := cellExtents(cols, tt.usable)
			if len(got) != len(tt.want) {
				t.Fatalf("extents = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("extent[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}
