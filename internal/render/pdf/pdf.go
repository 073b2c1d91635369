// Package pdf writes the fixed-layout export. Pages are A4 portrait and
// pagination is manual: every block is wrapped and measured before it is
// placed, and a block that would cross the printable bound starts a new
// page.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"sowbuilder/internal/format"
	"sowbuilder/internal/render"
)

const (
	family = "Helvetica"

	// Space reserved before a section heading and before each signature
	// block, so neither is stranded at the foot of a page.
	sectionReserve   = 25
	signatureReserve = 60
)

type rgb struct{ r, g, b int }

var (
	black    = rgb{0, 0, 0}
	darkBlue = rgb{31, 78, 121}
	blue     = rgb{47, 84, 150}
	gray     = rgb{89, 89, 89}
	charcoal = rgb{64, 64, 64}
	ruleGray = rgb{200, 200, 200}
)

var _ Canvas = (*fpdf.Fpdf)(nil)

// Renderer produces .pdf files.
type Renderer struct {
	// Now stamps the document metadata. Defaults to time.Now.
	Now func() time.Time
}

// New returns a Renderer using the wall clock.
func New() *Renderer {
	return &Renderer{Now: time.Now}
}

// Kind implements render.Renderer.
func (*Renderer) Kind() render.Kind { return render.KindPDF }

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, src render.Source) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(A4.Left, A4.Top, A4.PageWidth-A4.Left-A4.Width)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle("Statement of Work", true)
	doc.SetCreator("sowbuilder", true)
	doc.SetCreationDate(now)
	doc.SetModificationDate(now)
	doc.SetCatalogSort(true)

	enc := &encoder{}
	pages := Draw(doc, src, enc.translate)
	if err := enc.err(); err != nil {
		return nil, err
	}

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("failed to lay out pdf (%d pages): %w", pages, err)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Draw lays src out on c and returns the page count. tr converts text to
// the canvas encoding; nil means no conversion.
func Draw(c Canvas, src render.Source, tr func(string) string) int {
	if tr == nil {
		tr = func(s string) string { return s }
	}
	w := &writer{c: c, tr: tr, l: NewLayout(c, A4)}
	if src.IsOverride() {
		w.override(src.Lines())
	} else {
		w.structured(src.Doc)
	}
	return w.l.Pages()
}

type writer struct {
	c  Canvas
	tr func(string) string
	l  *Layout
}

func (w *writer) font(style string, size float64, color rgb) {
	w.c.SetFont(family, style, size)
	w.c.SetTextColor(color.r, color.g, color.b)
}

func (w *writer) block(text string) {
	w.l.Block(w.tr(text), 0)
}

func (w *writer) structured(doc format.Document) {
	for _, s := range doc.Sections {
		if s.ID == format.SectionTitle {
			w.title(doc, s)
			continue
		}

		w.l.Ensure(sectionReserve)
		w.font("B", 12, blue)
		w.block(s.Heading)
		w.l.Space(3)

		for i, line := range s.Lines {
			w.line(s, i, line)
		}
		w.l.Space(6)
	}
}

func (w *writer) title(doc format.Document, s format.Section) {
	w.font("B", 16, darkBlue)
	w.l.Centered(w.tr(s.Heading))
	w.l.Space(8)

	if doc.ProviderCompany != "" || doc.ClientCompany != "" {
		w.font("", 11, gray)
		w.l.Centered(w.tr(doc.ProviderCompany + " & " + doc.ClientCompany))
	}
	w.l.Space(15)

	w.c.SetDrawColor(ruleGray.r, ruleGray.g, ruleGray.b)
	w.l.Rule()
	w.l.Space(10)

	w.font("", 10, black)
	for _, line := range s.Lines {
		w.block(line.String())
	}
	w.l.Space(10)
}

func (w *writer) line(s format.Section, i int, line format.Line) {
	switch line.Kind {
	case format.Heading:
		if i > 0 {
			w.l.Space(4)
		}
		w.l.Ensure(sectionReserve)
		w.font("B", 11, charcoal)
		w.block(line.Text)
		w.l.Space(2)
	case format.Subheading:
		if i > 0 {
			w.l.Space(3)
		}
		if s.ID == format.SectionAcceptance {
			w.l.Ensure(signatureReserve)
		}
		w.font("B", 10, black)
		w.block(line.Text)
	default:
		w.font("", 9, black)
		w.block(line.String())
	}
}

// override places free text line by line. Blank lines add a small gap and
// heading-looking lines are set larger and bold.
func (w *writer) override(lines []string) {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			w.l.Space(4)
			continue
		}
		if render.LooksLikeHeading(line) {
			w.font("B", 12, black)
		} else {
			w.font("", 10, black)
		}
		w.block(line)
	}
}
