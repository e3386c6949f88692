// Package model provides the document tree and resource tables for building
// RTF documents.
//
// This package defines the user-facing data structures that represent the
// structure of a document before encoding. Callers build a [Document], attach
// content to it, and hand the finished tree to the writer package for
// serialization.
//
// # Resource Tables
//
// RTF addresses fonts, colors, and styles by numeric index into header
// tables, not by name. Each [Document] owns a [FontTable], a [ColorTable],
// and a [StyleSheet] that assign those indices:
//
//	doc := model.NewDocument()
//	times, _ := doc.Fonts.Register("Times New Roman", model.CharsetANSI)
//	red, _ := doc.Colors.Register(255, 0, 0)
//
// Registration is idempotent: registering the same font, color, or style a
// second time returns the index assigned the first time. Indices are stable
// for the lifetime of the document.
//
// # Document Structure
//
// A [Document] owns an ordered list of [Section] values, each holding
// block-level nodes. All tree content implements the [Node] interface. The
// concrete types are:
//
//   - [Paragraph] - a paragraph of runs and line breaks
//   - [Run] - a span of literal text with optional formatting
//   - [LineBreak], [PageBreak], [SectionBreak] - explicit breaks
//   - [Table], [Row], [Cell] - simple tables
//
// # Immutability
//
// Nodes are built free-standing and then attached to a parent exactly once.
// Attachment freezes the node: any later mutation fails with [ErrFrozenTree].
// This keeps the single-pass encoding in the writer package valid.
//
// # References
//
// Nodes never embed raw font or color values. They carry indices into the
// owning document's tables, and the builder functions validate every index
// at construction time, failing with [ErrDanglingReference] for an index
// that was never registered.
package model
