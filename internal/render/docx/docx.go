// Package docx writes the flowing-document export: a WordprocessingML
// package that word processors reflow on their own.
package docx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	gdoc "github.com/gomutex/godocx/docx"

	"sowbuilder/internal/format"
	"sowbuilder/internal/render"
)

const (
	bodyFont = "Calibri"

	colorTitle    = "1F4E79"
	colorHeading1 = "2F5496"
	colorHeading2 = "404040"
	colorSubtitle = "595959"
)

// Renderer produces .docx files.
type Renderer struct{}

// New returns a Renderer.
func New() *Renderer { return &Renderer{} }

// Kind implements render.Renderer.
func (*Renderer) Kind() render.Kind { return render.KindDOCX }

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, src render.Source) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to create docx: %w", err)
	}
	w := &writer{doc: doc}
	if src.IsOverride() {
		w.override(src.Lines())
	} else {
		w.structured(src.Doc)
	}
	if w.err != nil {
		return nil, w.err
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write docx: %w", err)
	}
	return buf.Bytes(), nil
}

// writer keeps the first error so the layout code reads top to bottom.
type writer struct {
	doc *gdoc.RootDoc
	err error
}

type level int

const (
	title level = iota
	heading1
	heading2
)

// heading adds a paragraph in the built-in style for lv and formats its
// run explicitly so the look does not depend on the template.
func (w *writer) heading(text string, lv level) {
	if w.err != nil {
		return
	}
	var p *gdoc.Paragraph
	var err error
	switch lv {
	case title:
		p, err = w.doc.AddHeading("", 0)
	case heading1:
		p, err = w.doc.AddHeading("", 1)
	default:
		p, err = w.doc.AddHeading("", 2)
	}
	if err != nil {
		w.err = fmt.Errorf("heading %q: %w", text, err)
		return
	}

	run := p.AddText(text).Font(bodyFont).Bold(true)
	switch lv {
	case title:
		run.Size(16).Color(colorTitle)
	case heading1:
		run.Size(14).Color(colorHeading1)
	default:
		run.Size(12).Color(colorHeading2)
	}
}

// para adds one body paragraph and returns it for more runs.
func (w *writer) para() *gdoc.Paragraph {
	return w.doc.AddParagraph("")
}

func body(p *gdoc.Paragraph, text string) *gdoc.Run {
	return p.AddText(text).Font(bodyFont).Size(11)
}

func (w *writer) structured(doc format.Document) {
	for _, s := range doc.Sections {
		if s.ID == format.SectionTitle {
			w.heading(s.Heading, title)
			if doc.ProviderCompany != "" || doc.ClientCompany != "" {
				body(w.para(), doc.ProviderCompany+" & "+doc.ClientCompany).Size(12).Color(colorSubtitle)
			}
		} else {
			w.heading(s.Heading, heading1)
		}
		for _, l := range s.Lines {
			w.line(l)
		}
	}
}

// line maps one formatter line. Multi-line values such as addresses
// continue in plain paragraphs below the first.
func (w *writer) line(l format.Line) {
	switch l.Kind {
	case format.Heading:
		w.heading(l.Text, heading2)
		return
	case format.Subheading:
		body(w.para(), l.Text).Bold(true)
		return
	}

	text := l.String()
	p := w.para()
	if l.Kind == format.Field {
		body(p, l.Label+": ").Bold(true)
		text = l.Text
	}
	first, rest, _ := strings.Cut(text, "\n")
	body(p, first)
	if rest != "" {
		for _, more := range strings.Split(rest, "\n") {
			body(w.para(), more)
		}
	}
}

// override maps each line to one paragraph; blank lines become empty
// spacer paragraphs.
func (w *writer) override(lines []string) {
	for _, line := range lines {
		p := w.para()
		if strings.TrimSpace(line) != "" {
			body(p, line)
		}
	}
}
