package scribe

import (
	"fmt"

	"github.com/tsawler/scribe/model"
)

// Option configures the document created by New.
type Option func(*model.Document) error

// WithTitle sets the document title emitted in the info block.
func WithTitle(title string) Option {
	return func(d *model.Document) error {
		d.Meta.Title = title
		return nil
	}
}

// WithAuthor sets the document author.
func WithAuthor(author string) Option {
	return func(d *model.Document) error {
		d.Meta.Author = author
		return nil
	}
}

// WithMetadata replaces the document metadata wholesale.
func WithMetadata(meta model.Metadata) Option {
	return func(d *model.Document) error {
		d.Meta = meta
		return nil
	}
}

// WithPaperSize sets the page dimensions in twips.
func WithPaperSize(width, height int) Option {
	return func(d *model.Document) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("scribe: paper size %dx%d is not positive", width, height)
		}
		d.Layout.PaperWidth = width
		d.Layout.PaperHeight = height
		return nil
	}
}

// WithMargins sets all four page margins in twips.
func WithMargins(top, right, bottom, left int) Option {
	return func(d *model.Document) error {
		for _, m := range []int{top, right, bottom, left} {
			if m < 0 {
				return fmt.Errorf("scribe: margin %d is negative", m)
			}
		}
		d.Layout.MarginTop = top
		d.Layout.MarginRight = right
		d.Layout.MarginBottom = bottom
		d.Layout.MarginLeft = left
		return nil
	}
}

// WithDefaultFont registers family in the font table and makes it the
// document default.
func WithDefaultFont(family string, charset model.Charset) Option {
	return func(d *model.Document) error {
		idx, err := d.Fonts.Register(family, charset)
		if err != nil {
			return err
		}
		d.Layout.DefaultFont = idx
		return nil
	}
}

// WithFontSize sets the default font size in half-points.
func WithFontSize(halfPoints int) Option {
	return func(d *model.Document) error {
		if halfPoints <= 0 {
			return fmt.Errorf("scribe: font size %d is not positive", halfPoints)
		}
		d.Layout.FontSize = halfPoints
		return nil
	}
}

// WithTabStops replaces the default tab stops with positions in twips.
func WithTabStops(stops ...int) Option {
	return func(d *model.Document) error {
		d.Layout.TabStops = append([]int(nil), stops...)
		return nil
	}
}
