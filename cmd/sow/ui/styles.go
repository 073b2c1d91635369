// Package ui provides the visual styling for the sow interactive wizard.
// Light and dark palettes are selected from the ui.theme config key.
package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a wizard screen is drawn with. Brand and
// Heading follow the blues used in exported documents.
type Palette struct {
	Name    string
	Text    lipgloss.Color
	Brand   lipgloss.Color
	Heading lipgloss.Color
	Dim     lipgloss.Color
	Rule    lipgloss.Color
	Dark    bool
}

// Status colors are shared by both palettes.
var (
	ColorOK   = lipgloss.Color("#8BC34A")
	ColorWarn = lipgloss.Color("#FFC107")
	ColorFail = lipgloss.Color("#E53935")
)

var (
	Light = Palette{
		Name:    "light",
		Text:    lipgloss.Color("#1F2933"),
		Brand:   lipgloss.Color("#1F4E79"),
		Heading: lipgloss.Color("#2F5496"),
		Dim:     lipgloss.Color("#7B8794"),
		Rule:    lipgloss.Color("#CBD2D9"),
	}

	Dark = Palette{
		Name:    "dark",
		Text:    lipgloss.Color("#F2F2F2"),
		Brand:   lipgloss.Color("#7FA7D9"),
		Heading: lipgloss.Color("#9CB8E8"),
		Dim:     lipgloss.Color("#8A94A6"),
		Rule:    lipgloss.Color("#3E4C59"),
		Dark:    true,
	}
)

// ThemeFor maps a config theme name to a palette. Anything but "light" is dark.
func ThemeFor(name string) Palette {
	if strings.EqualFold(strings.TrimSpace(name), Light.Name) {
		return Light
	}
	return Dark
}

// Styles are the rendered styles for one palette.
type Styles struct {
	Palette Palette

	Header  lipgloss.Style // step title bar
	Footer  lipgloss.Style // status and key help
	Content lipgloss.Style
	Panel   lipgloss.Style // review pane border

	Title lipgloss.Style
	Label lipgloss.Style // form field labels
	Bold  lipgloss.Style
	Muted lipgloss.Style

	Cursor   lipgloss.Style
	Selected lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Spinner lipgloss.Style
	Bar     lipgloss.Style
}

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

// NewStyles builds the style set for p.
func NewStyles(p Palette) Styles {
	return Styles{
		Palette: p,
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(p.Brand).Padding(0, 2),
		Footer:  fg(p.Dim).Padding(0, 2),
		Content: lipgloss.NewStyle().Padding(1, 2),
		Panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Rule).Padding(0, 1),

		Title: fg(p.Brand).Bold(true).MarginBottom(1),
		Label: fg(p.Heading).Bold(true).Width(22),
		Bold:  fg(p.Text).Bold(true),
		Muted: fg(p.Dim),

		Cursor:   fg(p.Heading).Bold(true),
		Selected: fg(ColorOK),

		Success: fg(ColorOK).Bold(true),
		Warning: fg(ColorWarn).Bold(true),
		Error:   fg(ColorFail).Bold(true),

		Spinner: fg(p.Heading),
		Bar:     fg(p.Heading),
	}
}

// RenderProgress draws a bar of width cells filled to percent.
func (s Styles) RenderProgress(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	percent = math.Max(0, math.Min(100, percent))
	filled := int(math.Round(percent / 100 * float64(width)))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return s.Bar.Render(bar) + s.Muted.Render(fmt.Sprintf(" %3.0f%%", percent))
}
