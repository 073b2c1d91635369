// Package format turns an EngagementRecord into the ordered, labeled
// sections every renderer draws from. The preview, the DOCX export and the
// PDF export all consume the same Document, so the text, ordering and
// inclusion rules live here and nowhere else.
package format

import "strconv"

// SectionID names a top-level section of the document.
type SectionID string

const (
	SectionTitle        SectionID = "title"
	SectionParties      SectionID = "parties"
	SectionDeliverables SectionID = "deliverables"
	SectionTimeline     SectionID = "timeline"
	SectionRetainer     SectionID = "retainer"
	SectionTerms        SectionID = "terms"
	SectionAcceptance   SectionID = "acceptance"
)

// LineKind tells a renderer how to emphasize a body line.
type LineKind int

const (
	// Plain is ordinary body text.
	Plain LineKind = iota
	// Subheading is an emphasized label such as "CLIENT:" or "Payment Terms:".
	Subheading
	// Heading is a second-weight heading inside a section.
	Heading
	// Field is an emphasized label followed by a plain value.
	Field
	// Item is one entry of a numbered list; Label carries the number.
	Item
)

func (k LineKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Subheading:
		return "subheading"
	case Heading:
		return "heading"
	case Field:
		return "field"
	case Item:
		return "item"
	}
	return "LineKind(" + strconv.Itoa(int(k)) + ")"
}

// Line is one body line of a section. Text may contain embedded newlines
// (a multi-line address, a long description).
type Line struct {
	Kind  LineKind
	Label string
	Text  string
}

// String is the flattened text of the line.
func (l Line) String() string {
	switch l.Kind {
	case Field:
		return l.Label + ": " + l.Text
	case Item:
		return l.Label + ". " + l.Text
	}
	return l.Text
}

// Section is a heading and its body lines.
type Section struct {
	ID      SectionID
	Heading string
	Lines   []Line
}

// Document is the formatter output: sections in their fixed order. The
// company names are carried for renderers that print a subtitle.
type Document struct {
	Sections []Section

	ClientCompany   string
	ProviderCompany string
}

// Section returns the section with the given id.
func (d Document) Section(id SectionID) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Has reports whether the section is present.
func (d Document) Has(id SectionID) bool {
	_, ok := d.Section(id)
	return ok
}

func plain(text string) Line { return Line{Kind: Plain, Text: text} }
func subheading(text string) Line { return Line{Kind: Subheading, Text: text} }
func heading(text string) Line { return Line{Kind: Heading, Text: text} }
func field(label, value string) Line { return Line{Kind: Field, Label: label, Text: value} }
func item(n int, text string) Line { return Line{Kind: Item, Label: strconv.Itoa(n), Text: text} }
