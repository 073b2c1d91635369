// Package render defines what the document renderers consume: either the
// formatter's sections or a frozen free-text override.
package render

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"sowbuilder/internal/format"
	"sowbuilder/internal/logging"
	"sowbuilder/internal/sow"
)

// Kind identifies an export format.
type Kind string

const (
	KindDOCX Kind = "docx"
	KindPDF  Kind = "pdf"
)

// Kinds lists the export formats in menu order.
var Kinds = []Kind{KindDOCX, KindPDF}

// ParseKind accepts "docx" or "pdf", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindDOCX, KindPDF:
		return k, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

func (k Kind) String() string { return string(k) }

// Ext is the file extension without the dot.
func (k Kind) Ext() string { return string(k) }

// Source is the input to a renderer. Exactly one of the structured
// document or the override text is meaningful.
type Source struct {
	Doc      format.Document
	Override string

	overridden bool
}

// FromDocument wraps formatter output.
func FromDocument(doc format.Document) Source {
	return Source{Doc: doc}
}

// FromText wraps free-text override content, used verbatim.
func FromText(text string) Source {
	return Source{Override: text, overridden: true}
}

// FromRecord runs the formatter on rec.
func FromRecord(rec *sow.EngagementRecord) (Source, error) {
	doc, err := format.Format(rec)
	if err != nil {
		logging.FormatDebug("format failed for %q: %v", rec.Client.CompanyName, err)
		return Source{}, fmt.Errorf("failed to format document: %w", err)
	}
	logging.FormatDebug("formatted %d sections for %q", len(doc.Sections), rec.Client.CompanyName)
	return FromDocument(doc), nil
}

// IsOverride reports whether the source is free text.
func (s Source) IsOverride() bool { return s.overridden }

// Text is the plain text of the source: the override verbatim, or the
// flattened sections.
func (s Source) Text() string {
	if s.overridden {
		return s.Override
	}
	return format.PlainText(s.Doc)
}

// Lines splits override text into lines, normalizing CRLF.
func (s Source) Lines() []string {
	return strings.Split(strings.ReplaceAll(s.Text(), "\r\n", "\n"), "\n")
}

// Renderer serializes a source into a complete file. Implementations
// return either the whole file or an error, never a partial result.
type Renderer interface {
	Kind() Kind
	Render(ctx context.Context, src Source) ([]byte, error)
}

// LooksLikeHeading is the free-text heading heuristic: a non-empty line
// without a colon whose letters are all upper-case.
func LooksLikeHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.Contains(line, ":") {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
