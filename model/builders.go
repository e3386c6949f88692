package model

import "fmt"

// Builders construct nodes whose references are validated against a specific
// document's tables. They accept already-registered indices only and never
// auto-register anything.

func (d *Document) checkRunProps(p RunProps) error {
	if p.Font != NoRef && !d.Fonts.Has(p.Font) {
		return fmt.Errorf("%w: font index %d", ErrDanglingReference, p.Font)
	}
	if p.Color != NoRef && !d.Colors.Has(p.Color) {
		return fmt.Errorf("%w: color index %d", ErrDanglingReference, p.Color)
	}
	return nil
}

func (d *Document) checkStyle(idx int, kind StyleKind) error {
	if idx == NoRef {
		return nil
	}
	entry, ok := d.Styles.Get(idx)
	if !ok {
		return fmt.Errorf("%w: style index %d", ErrDanglingReference, idx)
	}
	if entry.Kind != kind {
		return fmt.Errorf("%w: style index %d is a %s style, need %s",
			ErrDanglingReference, idx, entry.Kind, kind)
	}
	return nil
}

// NewRun creates a run with direct formatting. All font and color indices in
// props must be registered in d's tables.
func (d *Document) NewRun(text string, props RunProps) (*Run, error) {
	if err := d.checkRunProps(props); err != nil {
		return nil, err
	}
	return &Run{Text: text, Style: NoRef, Props: props}, nil
}

// NewText creates an unformatted run.
func (d *Document) NewText(text string) *Run {
	return &Run{Text: text, Style: NoRef, Props: NewRunProps()}
}

// NewStyledRun creates a run referencing a registered character style.
// Direct props, if any, apply on top of the style.
func (d *Document) NewStyledRun(text string, style int, props RunProps) (*Run, error) {
	if err := d.checkStyle(style, StyleCharacter); err != nil {
		return nil, err
	}
	if err := d.checkRunProps(props); err != nil {
		return nil, err
	}
	return &Run{Text: text, Style: style, Props: props}, nil
}

// NewParagraph creates an empty paragraph with direct formatting.
func (d *Document) NewParagraph(props ParaProps) *Paragraph {
	return &Paragraph{Style: NoRef, Props: props}
}

// NewStyledParagraph creates an empty paragraph referencing a registered
// paragraph style.
func (d *Document) NewStyledParagraph(style int, props ParaProps) (*Paragraph, error) {
	if err := d.checkStyle(style, StyleParagraph); err != nil {
		return nil, err
	}
	return &Paragraph{Style: style, Props: props}, nil
}

// NewTextParagraph creates a paragraph holding a single unformatted run.
func (d *Document) NewTextParagraph(text string, props ParaProps) *Paragraph {
	p := d.NewParagraph(props)
	// AddRun cannot fail on a fresh paragraph and a fresh run.
	_ = p.AddRun(d.NewText(text))
	return p
}
