// Package preview renders a document for the terminal: markdown through
// glamour, or plain text.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"sowbuilder/internal/format"
	"sowbuilder/internal/render"
)

var mdEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`")

// Markdown converts a source to markdown. Sections become level-two
// headings (the title is level one); labels are bold; numbered items form
// an ordered list. Override text keeps its lines, with heading-looking
// lines promoted to headings.
func Markdown(src render.Source) string {
	if src.IsOverride() {
		return overrideMarkdown(src.Lines())
	}

	var b strings.Builder
	for i, s := range src.Doc.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		level := "## "
		if s.ID == format.SectionTitle {
			level = "# "
		}
		b.WriteString(level + mdEscaper.Replace(s.Heading) + "\n")
		writeLines(&b, s.Lines)
	}
	return b.String()
}

// writeLines groups lines into paragraphs. A subheading opens a paragraph
// that following fields and plain lines join with hard breaks.
func writeLines(b *strings.Builder, lines []format.Line) {
	open := false
	inList := false
	closePara := func() {
		if open || inList {
			b.WriteString("\n")
		}
		open, inList = false, false
	}

	for _, l := range lines {
		switch l.Kind {
		case format.Heading:
			closePara()
			b.WriteString("\n### " + mdEscaper.Replace(l.Text) + "\n")
		case format.Subheading:
			closePara()
			b.WriteString("\n**" + mdEscaper.Replace(l.Text) + "**")
			open = true
		case format.Item:
			if !inList {
				closePara()
				b.WriteString("\n")
				inList = true
			}
			b.WriteString(l.Label + ". " + mdEscaper.Replace(l.Text) + "\n")
		default:
			if inList {
				closePara()
			}
			text := hardBreaks(mdEscaper.Replace(l.Text))
			if l.Kind == format.Field {
				text = "**" + mdEscaper.Replace(l.Label) + ":** " + text
			}
			if open {
				b.WriteString("  \n" + text)
			} else {
				b.WriteString("\n" + text)
				open = true
			}
		}
	}
	closePara()
}

func hardBreaks(s string) string {
	return strings.ReplaceAll(s, "\n", "  \n")
}

func overrideMarkdown(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
			b.WriteString("\n")
		case render.LooksLikeHeading(line):
			b.WriteString("\n## " + mdEscaper.Replace(strings.TrimSpace(line)) + "\n\n")
		default:
			b.WriteString(mdEscaper.Replace(line) + "  \n")
		}
	}
	return b.String()
}

// Text is the plain-text preview: the override verbatim, or the
// flattened sections.
func Text(src render.Source) string {
	return src.Text()
}

// Renderer renders markdown previews for a terminal of a given width.
type Renderer struct {
	term *glamour.TermRenderer
}

// NewRenderer builds a glamour renderer. Style is "dark", "light" or
// "auto"; wordWrap is the column limit.
func NewRenderer(style string, wordWrap int) (*Renderer, error) {
	styleOpt := glamour.WithStylePath(style)
	if style == "" || style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	term, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wordWrap))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{term: term}, nil
}

// Render styles src for the terminal.
func (r *Renderer) Render(src render.Source) (string, error) {
	out, err := r.term.Render(Markdown(src))
	if err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return out, nil
}
