// Package wizard is the interactive terminal front end for building a
// Statement of Work. It is a thin shell over internal/wizard: every edit is
// forwarded to the controller and the controller decides what is valid.
package wizard

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"sowbuilder/cmd/sow/ui"
	"sowbuilder/internal/export"
	"sowbuilder/internal/logging"
	"sowbuilder/internal/render"
	"sowbuilder/internal/render/preview"
	"sowbuilder/internal/signature"
	"sowbuilder/internal/sow"
	ctl "sowbuilder/internal/wizard"
)

// Deps are the collaborators the model drives.
type Deps struct {
	Controller *ctl.Controller
	Exporter   *export.Exporter
	Formats    []render.Kind
	Signer     signature.Sender
	Preview    *preview.Renderer
	Styles     ui.Styles
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusError
	statusWarning
	statusSuccess
)

type (
	exportDoneMsg struct {
		result export.Result
		err    error
	}

	signatureDoneMsg struct {
		receipt signature.Receipt
		err     error
	}
)

// Model is the bubbletea model for the wizard.
type Model struct {
	deps   Deps
	ctl    *ctl.Controller
	styles ui.Styles

	width  int
	height int
	ready  bool

	// Step 1 selection
	choice int

	// Steps 2-4 form
	fields []field
	focus  int

	// Step 5
	viewport viewport.Model
	editor   textarea.Model

	spinner   spinner.Model
	exporting bool
	signing   bool
	lastFiles []export.File

	status     string
	statusKind statusKind
	quitting   bool
}

// New builds the model at step one.
func New(deps Deps) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner

	ed := textarea.New()
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.SetWidth(80)
	ed.SetHeight(20)

	m := Model{
		deps:     deps,
		ctl:      deps.Controller,
		styles:   deps.Styles,
		width:    100,
		height:   40,
		viewport: viewport.New(96, 24),
		editor:   ed,
		spinner:  sp,
	}
	m.choice = engagementIndex(m.ctl.Record().EngagementType())
	return m
}

func engagementIndex(t sow.EngagementType) int {
	for i, et := range sow.EngagementTypes {
		if et == t {
			return i
		}
	}
	return 0
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.viewport.Width = max(1, msg.Width-4)
		m.viewport.Height = max(1, msg.Height-headerHeight-footerHeight)
		m.editor.SetWidth(max(1, msg.Width-4))
		m.editor.SetHeight(max(1, msg.Height-headerHeight-footerHeight-2))
		if m.ctl.Step() == ctl.StepReview {
			m.refreshReview()
		}
		return m, nil

	case spinner.TickMsg:
		if m.exporting || m.signing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.setStatus(statusError, exportErrorText(msg.err))
			return m, nil
		}
		m.lastFiles = msg.result.Files
		m.setStatus(statusSuccess, exportSuccessText(msg.result))
		return m, nil

	case signatureDoneMsg:
		m.signing = false
		if msg.err != nil {
			m.setStatus(statusError, "Could not send for signature: "+msg.err.Error())
			return m, nil
		}
		m.setStatus(statusSuccess, msg.receipt.Summary())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+n", "pgdown":
		return m.next()
	case "ctrl+p", "pgup":
		return m.prev()
	}

	switch m.ctl.Step() {
	case ctl.StepEngagementType:
		return m.handleEngagementKey(msg)
	case ctl.StepReview:
		return m.handleReviewKey(msg)
	default:
		return m.handleFormKey(msg)
	}
}

func (m Model) next() (tea.Model, tea.Cmd) {
	if m.ctl.Step() == ctl.StepReview {
		return m, nil
	}
	if err := m.ctl.Next(); err != nil {
		var verr *sow.ValidationError
		if errors.As(err, &verr) {
			m.setStatus(statusError, verr.Message())
		} else {
			m.setStatus(statusError, err.Error())
		}
		return m, nil
	}
	m.setStatus(statusInfo, "")
	return m, m.enterStep()
}

func (m Model) prev() (tea.Model, tea.Cmd) {
	if m.ctl.Step() == ctl.StepReview && m.ctl.Mode() == ctl.ModeFreeText {
		m.ctl.EnterStructured()
		m.editor.Blur()
	}
	m.ctl.Prev()
	m.setStatus(statusInfo, "")
	return m, m.enterStep()
}

// enterStep rebuilds the inputs for the current step from the record.
func (m *Model) enterStep() tea.Cmd {
	m.fields = stepFields(m.ctl.Step(), m.ctl.Record())
	m.focus = 0
	switch m.ctl.Step() {
	case ctl.StepEngagementType:
		m.choice = engagementIndex(m.ctl.Record().EngagementType())
	case ctl.StepReview:
		m.refreshReview()
	}
	if len(m.fields) > 0 {
		return m.fields[0].input.Focus()
	}
	return nil
}

func (m Model) handleEngagementKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.choice > 0 {
			m.choice--
		}
	case "down", "j":
		if m.choice < len(sow.EngagementTypes)-1 {
			m.choice++
		}
	case " ":
		m.selectEngagement()
	case "enter":
		m.selectEngagement()
		return m.next()
	}
	return m, nil
}

func (m *Model) selectEngagement() {
	t := sow.EngagementTypes[m.choice]
	if err := m.ctl.SetEngagementType(t); err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.setStatus(statusInfo, "Selected: "+t.Title())
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.fields) == 0 {
		return m, nil
	}
	switch msg.String() {
	case "tab", "down":
		return m, m.moveFocus(1)
	case "shift+tab", "up":
		return m, m.moveFocus(-1)
	case "enter":
		if f := &m.fields[m.focus]; f.submit != nil {
			m.submitField(f)
			return m, nil
		}
		if m.focus == len(m.fields)-1 {
			return m.next()
		}
		return m, m.moveFocus(1)
	}

	f := &m.fields[m.focus]
	if f.submit != nil {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return m, cmd
	}
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if v := f.input.Value(); v != before {
		if err := f.set(m.ctl, v); err != nil {
			m.setStatus(statusError, f.label+": "+err.Error())
		} else if m.statusKind == statusError {
			m.setStatus(statusInfo, "")
		}
		m.syncFields()
	}
	return m, cmd
}

func (m *Model) submitField(f *field) {
	msg, err := f.submit(m.ctl, f.input.Value())
	if err != nil {
		m.setStatus(statusError, f.label+": "+err.Error())
		return
	}
	f.input.SetValue("")
	m.setStatus(statusInfo, msg)
	m.syncFields()
}

// syncFields re-reads derived fields other than the focused one.
func (m *Model) syncFields() {
	for i := range m.fields {
		if f := &m.fields[i]; i != m.focus && f.get != nil {
			f.input.SetValue(f.get(m.ctl.Record()))
		}
	}
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.fields[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	return m.fields[m.focus].input.Focus()
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctl.Mode() == ctl.ModeFreeText {
		switch msg.String() {
		case "ctrl+t":
			m.ctl.EnterStructured()
			m.editor.Blur()
			m.refreshReview()
			m.setStatus(statusInfo, "Back to the structured view. Text edits were discarded.")
			return m, nil
		case "ctrl+e":
			return m.startExport()
		case "ctrl+s":
			return m.startSignature()
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		if err := m.ctl.EditFreeText(m.editor.Value()); err != nil {
			m.setStatus(statusError, err.Error())
		}
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+t", "t":
		text, err := m.ctl.EnterFreeText()
		if err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		m.editor.SetValue(text)
		m.setStatus(statusWarning, ctl.FreeTextWarning)
		return m, m.editor.Focus()
	case "ctrl+e", "e":
		return m.startExport()
	case "ctrl+s", "s":
		return m.startSignature()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refreshReview re-renders the structured preview.
func (m *Model) refreshReview() {
	if m.ctl.Mode() == ctl.ModeFreeText {
		return
	}
	src, err := m.ctl.ExportSource()
	if err != nil {
		m.viewport.SetContent(m.styles.Error.Render(err.Error()))
		return
	}
	content := preview.Text(src)
	if m.deps.Preview != nil {
		if out, err := m.deps.Preview.Render(src); err == nil {
			content = out
		} else {
			logging.PreviewWarn("glamour render failed, falling back to plain text: %v", err)
		}
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m Model) startExport() (tea.Model, tea.Cmd) {
	if m.exporting || m.deps.Exporter == nil {
		return m, nil
	}
	src, err := m.ctl.ExportSource()
	if err != nil {
		m.setStatus(statusError, exportErrorText(err))
		return m, nil
	}
	m.exporting = true
	m.setStatus(statusInfo, "Generating documents...")
	return m, tea.Batch(m.spinner.Tick, runExport(m.deps.Exporter, m.ctl.Record().Clone(), m.deps.Formats, src))
}

func (m Model) startSignature() (tea.Model, tea.Cmd) {
	if m.signing || m.exporting || m.deps.Signer == nil {
		return m, nil
	}
	if len(m.lastFiles) == 0 {
		m.setStatus(statusWarning, "Export the document before sending it for signature.")
		return m, nil
	}
	m.signing = true
	req := signature.RequestFor(m.ctl.Record(), m.lastFiles[len(m.lastFiles)-1].Path)
	return m, tea.Batch(m.spinner.Tick, runSignature(m.deps.Signer, req))
}

// runExport renders on a copy of the record so edits made while it runs
// cannot race with it.
func runExport(e *export.Exporter, rec *sow.EngagementRecord, kinds []render.Kind, src render.Source) tea.Cmd {
	return func() tea.Msg {
		res, err := e.ExportAll(context.Background(), rec, kinds, src)
		return exportDoneMsg{result: res, err: err}
	}
}

func runSignature(s signature.Sender, req signature.Request) tea.Cmd {
	return func() tea.Msg {
		r, err := s.Send(context.Background(), req)
		return signatureDoneMsg{receipt: r, err: err}
	}
}

func exportErrorText(err error) string {
	if errors.Is(err, export.ErrInFlight) {
		return err.Error()
	}
	return export.UserMessage + " (" + err.Error() + ")"
}

func exportSuccessText(res export.Result) string {
	text := "Saved"
	for i, f := range res.Files {
		if i > 0 {
			text += ","
		}
		text += " " + f.Path
	}
	return text
}
