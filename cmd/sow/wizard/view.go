package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sowbuilder/internal/sow"
	ctl "sowbuilder/internal/wizard"
)

const (
	headerHeight = 4
	footerHeight = 3
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.ctl.Step() {
	case ctl.StepEngagementType:
		body = m.engagementView()
	case ctl.StepReview:
		body = m.reviewView()
	default:
		body = m.formView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.styles.Content.Render(body),
		m.footerView(),
	)
}

func (m Model) headerView() string {
	step := m.ctl.Step()
	title := m.styles.Header.Render(fmt.Sprintf("Statement of Work  ·  Step %d of %d: %s", int(step), ctl.StepCount, step))
	bar := m.styles.RenderProgress(m.ctl.Progress(), max(10, min(40, m.width-10)))
	return title + "\n" + bar
}

func (m Model) engagementView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("What kind of engagement is this?"))
	b.WriteString("\n")
	current := m.ctl.Record().EngagementType()
	for i, t := range sow.EngagementTypes {
		cursor := "  "
		if i == m.choice {
			cursor = m.styles.Cursor.Render("> ")
		}
		mark := "( )"
		if t == current {
			mark = m.styles.Selected.Render("(•)")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, mark, m.styles.Bold.Render(t.Title()))
		fmt.Fprintf(&b, "      %s\n", m.styles.Muted.Render(t.Description()))
	}
	return b.String()
}

func (m Model) formView() string {
	var b strings.Builder
	for i, f := range m.fields {
		label := m.styles.Label.Render(f.label)
		if i == m.focus {
			label = m.styles.Cursor.Render("> ") + label
		} else {
			label = "  " + label
		}
		b.WriteString(label + " " + f.input.View() + "\n")
	}
	if m.ctl.Step() == ctl.StepProjectDetails {
		b.WriteString("\n" + m.deliverablesView())
	}
	return b.String()
}

// deliverablesView lists the chosen deliverables by number and the presets
// with a check mark on the ones in use.
func (m Model) deliverablesView() string {
	rec := m.ctl.Record()
	var b strings.Builder
	b.WriteString(m.styles.Bold.Render("Deliverables") + "\n")
	if len(rec.Project.Deliverables) == 0 {
		b.WriteString(m.styles.Muted.Render("  none yet") + "\n")
	}
	for i, d := range rec.Project.Deliverables {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, d)
	}

	presets := make([]string, len(sow.CommonDeliverables))
	for i, d := range sow.CommonDeliverables {
		mark := ""
		if rec.HasDeliverable(d) {
			mark = "*"
		}
		presets[i] = fmt.Sprintf("%d %s%s", i+1, d, mark)
	}
	b.WriteString(m.styles.Muted.Render("Presets: "+strings.Join(presets, " · ")) + "\n")
	return b.String()
}

func (m Model) reviewView() string {
	if m.ctl.Mode() == ctl.ModeFreeText {
		return m.styles.Warning.Render("TEXT MODE") + "\n" + m.editor.View()
	}
	return m.styles.Panel.Render(m.viewport.View())
}

func (m Model) footerView() string {
	var status string
	switch m.statusKind {
	case statusError:
		status = m.styles.Error.Render(m.status)
	case statusWarning:
		status = m.styles.Warning.Render(m.status)
	case statusSuccess:
		status = m.styles.Success.Render(m.status)
	default:
		status = m.styles.Muted.Render(m.status)
	}
	if m.exporting || m.signing {
		status = m.spinner.View() + " " + status
	}
	return status + "\n" + m.styles.Footer.Render(m.helpText())
}

func (m Model) helpText() string {
	switch m.ctl.Step() {
	case ctl.StepEngagementType:
		return "↑/↓ choose · space select · enter select and continue · ctrl+c quit"
	case ctl.StepReview:
		if m.ctl.Mode() == ctl.ModeFreeText {
			return "ctrl+t structured view · ctrl+e export · ctrl+s send for signature · ctrl+p back"
		}
		return "t edit as text · e export · s send for signature · ↑/↓ scroll · ctrl+p back"
	}
	return "tab/↓ next field · shift+tab/↑ previous · ctrl+n next step · ctrl+p back · ctrl+c quit"
}
