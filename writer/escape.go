package writer

import (
	"bytes"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// appendEscaped writes s to buf with RTF escaping applied. The reserved
// characters backslash, brace open, and brace close gain a leading
// backslash; newlines and tabs become \line and \tab control words; every
// code point outside printable ASCII is emitted as a \uN escape followed by
// a one-byte Windows-1252 fallback for readers that predate Unicode RTF.
func appendEscaped(buf *bytes.Buffer, s string) {
	for _, r := range s {
		switch r {
		case '\\':
			buf.WriteString(`\\`)
		case '{':
			buf.WriteString(`\{`)
		case '}':
			buf.WriteString(`\}`)
		case '\n':
			buf.WriteString(`\line `)
		case '\t':
			buf.WriteString(`\tab `)
		case '\r':
			// Bare carriage returns never reach the output; the
			// paired \r\n case is handled by the \n branch.
		default:
			if r >= 0x20 && r <= 0x7e {
				buf.WriteByte(byte(r))
			} else if r >= 0x20 {
				appendUnicode(buf, r)
			}
			// Remaining C0 control characters are dropped.
		}
	}
}

// appendUnicode emits r as one or two \uN escapes. RTF's \u takes a signed
// 16-bit decimal, so code points above 0x7FFF wrap negative and astral code
// points become a UTF-16 surrogate pair.
func appendUnicode(buf *bytes.Buffer, r rune) {
	if r <= 0xffff {
		appendUnit(buf, uint16(r), r)
		return
	}
	hi, lo := utf16.EncodeRune(r)
	appendUnit(buf, uint16(hi), r)
	appendUnit(buf, uint16(lo), r)
}

// appendUnit writes a single \uN escape plus its fallback byte. The
// fallback is the Windows-1252 encoding of the original rune when one
// exists, else a question mark; it is always emitted as a \'hh hex escape
// so the byte itself never needs further escaping.
func appendUnit(buf *bytes.Buffer, unit uint16, orig rune) {
	buf.WriteString(`\u`)
	buf.WriteString(strconv.Itoa(int(int16(unit))))
	fallback := byte('?')
	if b, ok := charmap.Windows1252.EncodeRune(orig); ok && b >= 0x20 {
		fallback = b
	}
	buf.WriteString(`\'`)
	const hex = "0123456789abcdef"
	buf.WriteByte(hex[fallback>>4])
	buf.WriteByte(hex[fallback&0xf])
}
