package format

import "strings"

// PlainText flattens doc into the editable free-text form. Each section is
// its heading followed by a blank line and its lines. A blank line
// separates sections, precedes every subheading or heading that does not
// open its section, and follows every heading. There is no trailing newline.
func PlainText(doc Document) string {
	var out []string
	for i, s := range doc.Sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, s.Heading)
		if len(s.Lines) > 0 {
			out = append(out, "")
		}
		for j, l := range s.Lines {
			if j > 0 && (opensBlock(l) || s.Lines[j-1].Kind == Heading) {
				out = append(out, "")
			}
			out = append(out, l.String())
		}
	}
	return strings.Join(out, "\n")
}

func opensBlock(l Line) bool {
	return l.Kind == Subheading || l.Kind == Heading
}
