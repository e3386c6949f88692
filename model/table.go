package model

import (
	"fmt"
	"strings"
)

// BorderSides names the sides of a cell that carry a single border, as any
// combination of the letters l, r, t, and b.
type BorderSides string

// Has reports whether the given side letter is present.
func (s BorderSides) Has(side byte) bool {
	return strings.IndexByte(string(s), side) >= 0
}

// Column describes one table column. Width is either an absolute width in
// twips (values greater than 1) or a fraction of the usable page width
// (values of at most 1). All columns of a table must use the same width
// mode. Extents are resolved against the page layout at encoding time.
type Column struct {
	Width     float64
	Borders   BorderSides
	Alignment Alignment
}

// Table is a block node owning an ordered sequence of rows. Every row must
// have exactly one cell per column. Tables may appear inside cells; the
// writer preserves whatever nesting the tree contains.
type Table struct {
	node
	columns []Column
	rows    []*Row
}

func (t *Table) Type() NodeType { return NodeTable }

// NewTable creates a table with the given columns. Widths must be all twips
// or all fractions; mixing the two fails with ErrTableShape.
func NewTable(columns ...Column) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: table needs at least one column", ErrTableShape)
	}
	var twips, fractions bool
	for _, c := range columns {
		if c.Width <= 0 {
			return nil, fmt.Errorf("%w: column width %v", ErrTableShape, c.Width)
		}
		if c.Width > 1 {
			twips = true
		} else {
			fractions = true
		}
	}
	if twips && fractions {
		return nil, fmt.Errorf("%w: column widths mix twips and fractions", ErrTableShape)
	}
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Table{columns: cols}, nil
}

// Columns returns the column definitions in order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Rows returns the attached rows in order.
func (t *Table) Rows() []*Row {
	out := make([]*Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// ColCount returns the number of columns.
func (t *Table) ColCount() int {
	return len(t.columns)
}

// AddRow attaches a completed row. The row's cell count must match the
// table's column count.
func (t *Table) AddRow(r *Row) error {
	if len(r.cells) != len(t.columns) {
		return fmt.Errorf("%w: row has %d cells, table has %d columns",
			ErrTableShape, len(r.cells), len(t.columns))
	}
	if err := attach(t, r); err != nil {
		return err
	}
	t.rows = append(t.rows, r)
	return nil
}

// Row owns an ordered sequence of cells.
type Row struct {
	node
	cells []*Cell
}

func (r *Row) Type() NodeType { return NodeRow }

// NewRow creates an empty row.
func NewRow() *Row {
	return &Row{}
}

// Cells returns the attached cells in order.
func (r *Row) Cells() []*Cell {
	out := make([]*Cell, len(r.cells))
	copy(out, r.cells)
	return out
}

// AddCell attaches a completed cell.
func (r *Row) AddCell(c *Cell) error {
	if err := attach(r, c); err != nil {
		return err
	}
	r.cells = append(r.cells, c)
	return nil
}

// Cell owns a sequence of block-level nodes (paragraphs or nested tables).
type Cell struct {
	node
	blocks []Node
}

func (c *Cell) Type() NodeType { return NodeCell }

// NewCell creates a cell containing the given blocks, attaching each. Only
// paragraphs and tables may appear inside a cell.
func NewCell(blocks ...Node) (*Cell, error) {
	c := &Cell{}
	for _, b := range blocks {
		if err := c.AddBlock(b); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Blocks returns the cell's content in order.
func (c *Cell) Blocks() []Node {
	out := make([]Node, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// AddBlock attaches a paragraph or nested table to the cell.
func (c *Cell) AddBlock(b Node) error {
	switch b.Type() {
	case NodeParagraph, NodeTable:
	default:
		return fmt.Errorf("%w: %s cannot appear inside a cell", ErrTableShape, b.Type())
	}
	if err := attach(c, b); err != nil {
		return err
	}
	c.blocks = append(c.blocks, b)
	return nil
}
