package pdf

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ErrUnsupportedText is returned when the document holds characters the
// core PDF fonts cannot draw.
var ErrUnsupportedText = errors.New("text not representable in the PDF font encoding")

// encoder converts text to Windows-1252 for the core fonts and remembers
// every rune it could not map.
type encoder struct {
	missing []rune
}

func (e *encoder) translate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			if !slices.Contains(e.missing, r) {
				e.missing = append(e.missing, r)
			}
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func (e *encoder) err() error {
	if len(e.missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedText, string(e.missing))
}
