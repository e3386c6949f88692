// Package pleading assembles the standard building blocks of a Texas
// family-law filing — the case-style caption, the signature block, and the
// certificate of service — as document subtrees built purely from model
// constructors. It contains no encoding logic.
package pleading

import (
	"fmt"
	"strings"

	"github.com/tsawler/scribe/model"
)

// CaseInfo identifies the case for the caption block.
type CaseInfo struct {
	CauseNumber    string
	County         string
	CourtType      string
	CourtNumber    string
	PetitionerName string
	RespondentName string
	IsDivorce      bool
	ChildNames     []string
	Sensitive      bool
	DocTitle       string
}

// Attorney identifies signing counsel.
type Attorney struct {
	Name      string
	BarNo     string
	FirmName  string
	Street    string
	CityState string
	Telephone string
	Fax       string
	Email     string
	Role      string
}

// Recipient is one party served under a certificate of service.
type Recipient struct {
	Name    string
	Role    string
	Method  string
	Address string
}

// Certificate carries the content of a certificate of service.
type Certificate struct {
	Attorney    string
	Designation string
	Recipients  []Recipient
}

// signatureIndent is the left indent placing signature material in the
// right half of the page.
const signatureIndent = 4680

func boldCaps() model.RunProps {
	p := model.NewRunProps()
	p.Bold = true
	p.Caps = true
	return p
}

// headerProps marks a paragraph that should stay with the text that
// follows it.
func headerProps(align model.Alignment) model.ParaProps {
	return model.ParaProps{Alignment: align, KeepWithNext: true}
}

// multilineRun appends text to p under props, turning embedded newlines
// into explicit line breaks.
func multilineRun(doc *model.Document, p *model.Paragraph, text string, props model.RunProps) error {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			if err := p.AddLineBreak(); err != nil {
				return err
			}
		}
		if line == "" {
			continue
		}
		run, err := doc.NewRun(line, props)
		if err != nil {
			return err
		}
		if err := p.AddRun(run); err != nil {
			return err
		}
	}
	return nil
}

// CaseStyle builds the caption: an optional sensitive-data banner, the
// cause number, the two-column party/court table, and the document title.
func CaseStyle(doc *model.Document, info CaseInfo) ([]model.Node, error) {
	var nodes []model.Node

	if info.Sensitive {
		p := doc.NewParagraph(headerProps(model.AlignLeft))
		if err := multilineRun(doc, p, "This document contains\nsensitive data", boldCaps()); err != nil {
			return nil, err
		}
		nodes = append(nodes, p)
	}

	cause := doc.NewParagraph(headerProps(model.AlignCenter))
	label, err := doc.NewRun("Cause No. ", boldCaps())
	if err != nil {
		return nil, err
	}
	if err := cause.AddRun(label); err != nil {
		return nil, err
	}
	numProps := model.NewRunProps()
	numProps.Bold = true
	numProps.Underline = model.UnderlineSingle
	number, err := doc.NewRun(info.CauseNumber, numProps)
	if err != nil {
		return nil, err
	}
	if err := cause.AddRun(number); err != nil {
		return nil, err
	}
	if err := cause.AddLineBreak(); err != nil {
		return nil, err
	}
	nodes = append(nodes, cause)

	table, err := captionTable(doc, info)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, table)

	title := doc.NewParagraph(headerProps(model.AlignCenter))
	if err := title.AddLineBreak(); err != nil {
		return nil, err
	}
	if err := multilineRun(doc, title, info.DocTitle, boldCaps()); err != nil {
		return nil, err
	}
	if err := title.AddLineBreak(); err != nil {
		return nil, err
	}
	nodes = append(nodes, title)

	return nodes, nil
}

// captionTable lays out the parties against the court designation:
//
//	In the Matter of           |  In the District Court
//	The Marriage of            |
//	John Doe                   |  District Court #469
//	and                        |
//	Jane Doe                   |  Collin County, Texas
//	                           |
//	and In the Interest of     |
//	Johnny Doe, a child        |
func captionTable(doc *model.Document, info CaseInfo) (*model.Table, error) {
	var left strings.Builder
	if info.IsDivorce {
		left.WriteString("In the Matter of\nThe Marriage of\n\n")
		left.WriteString(info.PetitionerName)
		left.WriteString("\nand\n")
		left.WriteString(info.RespondentName)
		if len(info.ChildNames) > 0 {
			left.WriteString("\n\nand ")
		}
	}
	if len(info.ChildNames) > 0 {
		left.WriteString("In the Interest of\n")
		left.WriteString(strings.Join(info.ChildNames, ", "))
		if len(info.ChildNames) == 1 {
			left.WriteString(", a child")
		} else {
			left.WriteString(", minor children")
		}
	}

	var right strings.Builder
	fmt.Fprintf(&right, "In the %s Court\n\n", info.CourtType)
	fmt.Fprintf(&right, "%s Court #%s\n\n", info.CourtType, info.CourtNumber)
	fmt.Fprintf(&right, "%s County, Texas", info.County)

	table, err := model.NewTable(
		model.Column{Width: 0.5, Borders: "r", Alignment: model.AlignLeft},
		model.Column{Width: 0.5, Alignment: model.AlignLeft},
	)
	if err != nil {
		return nil, err
	}

	row := model.NewRow()
	for _, content := range []string{left.String(), right.String()} {
		p := doc.NewParagraph(model.ParaProps{})
		if err := multilineRun(doc, p, content, boldCaps()); err != nil {
			return nil, err
		}
		cell, err := model.NewCell(p)
		if err != nil {
			return nil, err
		}
		if err := row.AddCell(cell); err != nil {
			return nil, err
		}
	}
	if err := table.AddRow(row); err != nil {
		return nil, err
	}
	return table, nil
}

// signatureLine builds one left-indented keep-together line of a signature
// block. bordered adds the top rule that carries the signature.
func signatureLine(doc *model.Document, text string, bordered bool) (*model.Paragraph, error) {
	props := model.ParaProps{
		Alignment:    model.AlignLeft,
		KeepWithNext: true,
		LeftIndent:   signatureIndent,
		BorderTop:    bordered,
	}
	p := doc.NewParagraph(props)
	if err := multilineRun(doc, p, text, model.NewRunProps()); err != nil {
		return nil, err
	}
	return p, nil
}

// SignatureBlock builds counsel's signature: firm address, contact lines, a
// /s/ signature over a bordered name line, the bar number, and the role.
func SignatureBlock(doc *model.Document, att Attorney) ([]model.Node, error) {
	lines := []struct {
		text     string
		bordered bool
	}{
		{"\nRespectfully,\n", false},
		{att.FirmName, false},
		{att.Street, false},
		{att.CityState, false},
		{"Tel: " + att.Telephone, false},
		{"Fax: " + att.Fax, false},
		{"", false},
		{"/s/ " + att.Name, false},
		{att.Name, true},
		{"State Bar No. " + att.BarNo, false},
		{att.Email, false},
		{"", false},
		{att.Role, false},
	}

	var nodes []model.Node
	for _, line := range lines {
		if line.text == "" {
			p := doc.NewParagraph(model.ParaProps{KeepWithNext: true})
			nodes = append(nodes, p)
			continue
		}
		p, err := signatureLine(doc, line.text, line.bordered)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, p)
	}
	return nodes, nil
}

// CertificateOfService builds the certificate on its own page: a centered
// heading, the service recital, one entry per recipient, and the attorney's
// signature.
func CertificateOfService(doc *model.Document, cert Certificate) ([]model.Node, error) {
	nodes := []model.Node{&model.PageBreak{}}

	heading := doc.NewParagraph(model.ParaProps{
		Alignment:    model.AlignCenter,
		KeepWithNext: true,
		DoubleSpaced: true,
	})
	if err := multilineRun(doc, heading, "Certificate of Service", boldCaps()); err != nil {
		return nil, err
	}
	nodes = append(nodes, heading)

	recital := doc.NewParagraph(model.ParaProps{Alignment: model.AlignLeft})
	text := "I certify that a true and correct copy of this document was served " +
		"on each party or attorney of record in compliance with the Texas " +
		"Rules of Civil Procedure on [*_____*] as follows:"
	if err := multilineRun(doc, recital, text, model.NewRunProps()); err != nil {
		return nil, err
	}
	if err := recital.AddLineBreak(); err != nil {
		return nil, err
	}
	nodes = append(nodes, recital)

	italic := model.NewRunProps()
	italic.Italic = true
	for _, r := range cert.Recipients {
		who := doc.NewParagraph(model.ParaProps{Alignment: model.AlignLeft})
		if err := multilineRun(doc, who, r.Name+", "+r.Role, model.NewRunProps()); err != nil {
			return nil, err
		}
		nodes = append(nodes, who)

		how := doc.NewParagraph(model.ParaProps{Alignment: model.AlignLeft})
		if err := multilineRun(doc, how, fmt.Sprintf("Via %s to %s", r.Method, r.Address), italic); err != nil {
			return nil, err
		}
		if err := how.AddLineBreak(); err != nil {
			return nil, err
		}
		nodes = append(nodes, how)
	}

	nodes = append(nodes, doc.NewParagraph(model.ParaProps{}))

	sig, err := signatureLine(doc, "/s/ "+cert.Attorney, false)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, sig)

	name, err := signatureLine(doc, cert.Attorney+"\n"+cert.Designation, true)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, name)

	return nodes, nil
}

// Footer returns the running document footer for the case.
func Footer(caseName, causeNumber, title string) *model.Footer {
	return &model.Footer{CaseName: caseName, CauseNumber: causeNumber, Title: title}
}
