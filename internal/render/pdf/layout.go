package pdf

import "strings"

// Canvas is the drawing surface the layout writes to. *fpdf.Fpdf
// satisfies it; tests substitute a recording fake.
type Canvas interface {
	AddPage()
	SetFont(familyStr, styleStr string, size float64)
	SetTextColor(r, g, b int)
	SetDrawColor(r, g, b int)
	Text(x, y float64, txtStr string)
	Line(x1, y1, x2, y2 float64)
	GetStringWidth(s string) float64
}

// Geometry is the printable area in millimetres.
type Geometry struct {
	PageWidth  float64
	Top        float64
	Bound      float64
	Left       float64
	Width      float64
	LineHeight float64
}

// A4 is portrait A4 with the document's margins.
var A4 = Geometry{
	PageWidth:  210,
	Top:        25,
	Bound:      270,
	Left:       20,
	Width:      170,
	LineHeight: 5,
}

// Layout keeps the vertical cursor and starts new pages. Text must already
// be in the canvas encoding; widths come from the canvas' current font.
type Layout struct {
	c     Canvas
	g     Geometry
	y     float64
	pages int
}

// NewLayout opens the first page with the cursor at the top margin.
func NewLayout(c Canvas, g Geometry) *Layout {
	l := &Layout{c: c, g: g}
	l.newPage()
	return l
}

func (l *Layout) newPage() {
	l.c.AddPage()
	l.pages++
	l.y = l.g.Top
}

// Y is the cursor position.
func (l *Layout) Y() float64 { return l.y }

// Pages is the number of pages opened so far.
func (l *Layout) Pages() int { return l.pages }

// Ensure starts a new page when a block of height h would cross the
// printable bound. It reports whether a page was added.
func (l *Layout) Ensure(h float64) bool {
	if l.y+h > l.g.Bound && l.y > l.g.Top {
		l.newPage()
		return true
	}
	return false
}

// Space moves the cursor down without drawing.
func (l *Layout) Space(h float64) { l.y += h }

// Height is the height of n wrapped lines.
func (l *Layout) Height(n int) float64 { return float64(n) * l.g.LineHeight }

// Block wraps text to the printable width less indent, keeps it on one
// page when it fits, and draws it. A block taller than a page breaks
// between lines.
func (l *Layout) Block(text string, indent float64) {
	lines := l.Wrap(text, l.g.Width-indent)
	h := l.Height(len(lines))
	l.Ensure(h)
	for _, line := range lines {
		l.Ensure(l.g.LineHeight)
		if line != "" {
			l.c.Text(l.g.Left+indent, l.y, line)
		}
		l.y += l.g.LineHeight
	}
}

// Centered draws one line centered on the page and does not move the
// cursor.
func (l *Layout) Centered(text string) {
	w := l.c.GetStringWidth(text)
	l.c.Text((l.g.PageWidth-w)/2, l.y, text)
}

// Rule draws a horizontal line across the printable width at the cursor.
func (l *Layout) Rule() {
	l.c.Line(l.g.Left, l.y, l.g.Left+l.g.Width, l.y)
}

// Wrap splits text into lines no wider than width using greedy word
// wrapping. Embedded newlines always break; a word wider than the line is
// split between characters. The result has at least one line.
func (l *Layout) Wrap(text string, width float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, l.wrapParagraph(para, width)...)
	}
	return out
}

func (l *Layout) wrapParagraph(para string, width float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	cur := ""
	for _, w := range words {
		for l.c.GetStringWidth(w) > width && len(w) > 1 {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			n := l.fit(w, width)
			lines = append(lines, w[:n])
			w = w[n:]
		}
		switch {
		case cur == "":
			cur = w
		case l.c.GetStringWidth(cur+" "+w) <= width:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	return append(lines, cur)
}

// fit is the longest byte prefix of w that fits in width, at least one.
func (l *Layout) fit(w string, width float64) int {
	n := 1
	for n < len(w) && l.c.GetStringWidth(w[:n+1]) <= width {
		n++
	}
	return n
}
