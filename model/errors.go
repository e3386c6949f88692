package model

import "errors"

var (
	// ErrInvalidColor is returned when a color channel is outside 0-255.
	ErrInvalidColor = errors.New("model: color channel out of range")

	// ErrInvalidFont is returned when a font is registered with an empty
	// family name.
	ErrInvalidFont = errors.New("model: invalid font")

	// ErrDanglingReference is returned when a font, color, or style index
	// does not refer to a registered table entry.
	ErrDanglingReference = errors.New("model: reference to unregistered table entry")

	// ErrFrozenTree is returned when a node is mutated after it has been
	// attached to a parent.
	ErrFrozenTree = errors.New("model: node is attached and immutable")

	// ErrTableShape is returned when a row's cell count does not match the
	// table's column count, or when column widths mix twips and fractions.
	ErrTableShape = errors.New("model: invalid table shape")
)
