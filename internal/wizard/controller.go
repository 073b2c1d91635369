// Package wizard holds the step state of an authoring session: the current
// step, the record being edited, the navigation gates, and the one-way
// structured/free-text mode switch on the review step.
package wizard

import (
	"errors"
	"fmt"

	"sowbuilder/internal/format"
	"sowbuilder/internal/logging"
	"sowbuilder/internal/render"
	"sowbuilder/internal/sow"
)

// Step is a 1-based wizard position.
type Step int

const (
	StepEngagementType Step = iota + 1
	StepClientInfo
	StepProjectDetails
	StepTerms
	StepReview
)

// StepCount is the number of steps.
const StepCount = int(StepReview)

var stepTitles = map[Step]string{
	StepEngagementType: "Engagement Type",
	StepClientInfo:     "Client Information",
	StepProjectDetails: "Project Details",
	StepTerms:          "Terms & Conditions",
	StepReview:         "Review & Finalize",
}

func (s Step) String() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Mode is the review step presentation.
type Mode int

const (
	ModeStructured Mode = iota
	ModeFreeText
)

func (m Mode) String() string {
	if m == ModeFreeText {
		return "free-text"
	}
	return "structured"
}

// FreeTextWarning is shown whenever the user enters free-text mode.
const FreeTextWarning = "Edits made in text mode are not saved back to the form. " +
	"Switching back to the structured view discards them, and returning to text mode regenerates the text from the form."

var (
	// ErrNotFreeText is returned by EditFreeText outside free-text mode.
	ErrNotFreeText = errors.New("not in free-text mode")
	// ErrWrongEngagement is returned when updating details of an inactive variant.
	ErrWrongEngagement = errors.New("engagement type does not match")
)

// gates maps a step to the check that must pass before leaving it forward.
var gates = map[Step]func(*sow.EngagementRecord) error{
	StepEngagementType: sow.CheckEngagement,
	StepClientInfo:     sow.CheckParties,
	StepProjectDetails: sow.CheckProject,
}

// Controller owns one session's record and step state. It is not safe for
// concurrent use; the TUI drives it from its update loop.
type Controller struct {
	record *sow.EngagementRecord
	step   Step

	mode     Mode
	snapshot string
}

// New starts a session at step one with a fresh record built from d.
func New(d sow.Defaults) *Controller {
	return NewWithRecord(sow.NewRecord(d))
}

// NewWithRecord starts a session editing rec.
func NewWithRecord(rec *sow.EngagementRecord) *Controller {
	return &Controller{record: rec, step: StepEngagementType}
}

// Record returns the live record. Callers must not retain it across
// goroutines; hand Record().Clone() to background work.
func (c *Controller) Record() *sow.EngagementRecord { return c.record }

// Step returns the current step.
func (c *Controller) Step() Step { return c.step }

// Progress is the completion percentage shown in the header.
func (c *Controller) Progress() float64 {
	return float64(c.step) / float64(StepCount) * 100
}

// CanAdvance runs the current step's gate without moving.
func (c *Controller) CanAdvance() error {
	if gate, ok := gates[c.step]; ok {
		return gate(c.record)
	}
	return nil
}

// Next advances one step when the gate passes. On the last step it is a
// no-op. A failed gate returns a *sow.ValidationError and leaves the step
// unchanged.
func (c *Controller) Next() error {
	if err := c.CanAdvance(); err != nil {
		logging.WizardDebug("gate blocked at %s: %v", c.step, err)
		return err
	}
	if c.step < StepReview {
		c.step++
		logging.Wizard("advanced to step %d (%s)", c.step, c.step)
	}
	return nil
}

// Prev moves back one step without any gate. On the first step it is a no-op.
func (c *Controller) Prev() {
	if c.step > StepEngagementType {
		c.step--
		logging.WizardDebug("back to step %d (%s)", c.step, c.step)
	}
}

// SetEngagementType selects the engagement variant.
func (c *Controller) SetEngagementType(t sow.EngagementType) error {
	return c.record.SetEngagementType(t)
}

// UpdateClient merges a client edit. fn touches only the fields it sets.
func (c *Controller) UpdateClient(fn func(*sow.ClientInfo)) {
	fn(&c.record.Client)
}

// UpdateProvider merges a provider edit.
func (c *Controller) UpdateProvider(fn func(*sow.ServiceProvider)) {
	fn(&c.record.Provider)
}

// UpdateProject merges a project edit. A negative fee is rejected and the
// project is left as it was.
func (c *Controller) UpdateProject(fn func(*sow.ProjectDetails)) error {
	before := c.record.Project
	before.Deliverables = append([]string{}, c.record.Project.Deliverables...)

	fn(&c.record.Project)
	if c.record.Project.Fees.TotalAmount < 0 {
		amount := c.record.Project.Fees.TotalAmount
		c.record.Project = before
		return fmt.Errorf("%w: %.2f", sow.ErrNegativeAmount, amount)
	}
	c.record.NormalizeDeliverables()
	return nil
}

// AddDeliverable appends d unless it is blank or already listed. It
// reports whether the list changed.
func (c *Controller) AddDeliverable(d string) bool {
	return c.record.AddDeliverable(d)
}

// RemoveDeliverable drops the deliverable at position i.
func (c *Controller) RemoveDeliverable(i int) error {
	return c.record.RemoveDeliverable(i)
}

// ToggleDeliverable switches a preset deliverable on or off.
func (c *Controller) ToggleDeliverable(d string) {
	c.record.ToggleDeliverable(d)
}

// SetCustomPaymentStructure stores free-form payment structure text; when
// not blank it becomes the active structure.
func (c *Controller) SetCustomPaymentStructure(text string) {
	c.record.SetCustomPaymentStructure(text)
}

// UpdateTerms merges a terms edit. Negative revisions clamp to zero.
func (c *Controller) UpdateTerms(fn func(*sow.Terms)) {
	fn(&c.record.Terms)
	c.record.SetRevisions(c.record.Terms.Revisions)
}

// UpdateRetainer edits the retainer variant when it is active.
func (c *Controller) UpdateRetainer(fn func(*sow.Retainer)) error {
	ret, ok := c.record.RetainerDetails()
	if !ok {
		return fmt.Errorf("%w: have %q, want %q", ErrWrongEngagement, c.record.EngagementType(), sow.EngagementRetainer)
	}
	fn(ret)
	return nil
}

// UpdateMultipleProjects edits the multiple-projects variant when it is active.
func (c *Controller) UpdateMultipleProjects(fn func(*sow.MultipleProjects)) error {
	mp, ok := c.record.MultipleProjectsDetails()
	if !ok {
		return fmt.Errorf("%w: have %q, want %q", ErrWrongEngagement, c.record.EngagementType(), sow.EngagementMultipleProjects)
	}
	fn(mp)
	return nil
}

// Mode returns the review presentation mode.
func (c *Controller) Mode() Mode { return c.mode }

// Document formats the live record for the structured view.
func (c *Controller) Document() (format.Document, error) {
	return format.Format(c.record)
}

// EnterFreeText snapshots freshly formatted text from the current record.
// Any earlier snapshot, edited or not, is replaced.
func (c *Controller) EnterFreeText() (string, error) {
	doc, err := format.Format(c.record)
	if err != nil {
		return "", err
	}
	c.snapshot = format.PlainText(doc)
	c.mode = ModeFreeText
	logging.Wizard("entered free-text mode (%d bytes)", len(c.snapshot))
	return c.snapshot, nil
}

// EditFreeText replaces the snapshot. The record is never touched.
func (c *Controller) EditFreeText(text string) error {
	if c.mode != ModeFreeText {
		return ErrNotFreeText
	}
	c.snapshot = text
	return nil
}

// EnterStructured discards the snapshot.
func (c *Controller) EnterStructured() {
	if c.mode == ModeFreeText {
		logging.Wizard("left free-text mode, snapshot discarded")
	}
	c.mode = ModeStructured
	c.snapshot = ""
}

// Snapshot returns the frozen text and whether one exists.
func (c *Controller) Snapshot() (string, bool) {
	return c.snapshot, c.mode == ModeFreeText
}

// ExportSource is what an export renders right now: the frozen text in
// free-text mode, otherwise a fresh formatter run over a copy of the record.
func (c *Controller) ExportSource() (render.Source, error) {
	if c.mode == ModeFreeText {
		return render.FromText(c.snapshot), nil
	}
	return render.FromRecord(c.record.Clone())
}
