package sow

import (
	"errors"
	"fmt"
	"strings"
)

// EngagementType names the working relationship.
type EngagementType string

const (
	EngagementUnset            EngagementType = ""
	EngagementRetainer         EngagementType = "retainer"
	EngagementMultipleProjects EngagementType = "multiple-projects"
	EngagementSingleProject    EngagementType = "single-project"
)

var (
	// ErrUnknownEngagementType is returned for type strings outside the enum.
	ErrUnknownEngagementType = errors.New("unknown engagement type")
	// ErrNegativeAmount is returned when a fee would go below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// EngagementTypes lists the selectable types in menu order.
var EngagementTypes = []EngagementType{
	EngagementRetainer,
	EngagementMultipleProjects,
	EngagementSingleProject,
}

// ParseEngagementType accepts the wire spelling of a type. The empty string
// parses to EngagementUnset.
func ParseEngagementType(s string) (EngagementType, error) {
	t := EngagementType(strings.TrimSpace(s))
	switch t {
	case EngagementUnset, EngagementRetainer, EngagementMultipleProjects, EngagementSingleProject:
		return t, nil
	}
	return EngagementUnset, fmt.Errorf("%w: %q", ErrUnknownEngagementType, s)
}

// Label is the human-readable form, hyphens rendered as spaces.
func (t EngagementType) Label() string {
	return strings.ReplaceAll(string(t), "-", " ")
}

// Title is the menu heading used by the wizard.
func (t EngagementType) Title() string {
	switch t {
	case EngagementRetainer:
		return "Monthly Retainer"
	case EngagementMultipleProjects:
		return "Multiple Projects"
	case EngagementSingleProject:
		return "Single Project"
	}
	return ""
}

// Description is the menu blurb used by the wizard.
func (t EngagementType) Description() string {
	switch t {
	case EngagementRetainer:
		return "Ongoing monthly engagement with a set number of hours and recurring fee."
	case EngagementMultipleProjects:
		return "Several distinct projects under one agreement with shared terms and conditions."
	case EngagementSingleProject:
		return "One-time project with defined scope, timeline, and deliverables."
	}
	return ""
}

// Engagement is the engagement-type specific part of a record. Exactly one
// implementation is carried at a time.
type Engagement interface {
	Type() EngagementType
	clone() Engagement
}

// Retainer is a recurring monthly allocation of hours.
type Retainer struct {
	MonthlyHours     float64 `yaml:"monthlyHours" json:"monthlyHours"`
	HourlyRate       float64 `yaml:"hourlyRate" json:"hourlyRate"`
	RetainerFee      float64 `yaml:"retainerFee" json:"retainerFee"`
	RolloverHours    bool    `yaml:"rolloverHours" json:"rolloverHours"`
	MaxRolloverHours float64 `yaml:"maxRolloverHours" json:"maxRolloverHours"`
}

func (*Retainer) Type() EngagementType { return EngagementRetainer }

func (r *Retainer) clone() Engagement {
	c := *r
	return &c
}

// Project is one entry of a multiple-projects engagement.
type Project struct {
	Name           string  `yaml:"name" json:"name"`
	Description    string  `yaml:"description" json:"description"`
	EstimatedHours float64 `yaml:"estimatedHours" json:"estimatedHours"`
	Timeline       string  `yaml:"timeline" json:"timeline"`
}

// MultipleProjects groups several projects under one agreement.
type MultipleProjects struct {
	Projects        []Project `yaml:"projects" json:"projects"`
	TotalBudget     float64   `yaml:"totalBudget" json:"totalBudget"`
	PaymentSchedule string    `yaml:"paymentSchedule" json:"paymentSchedule"`
}

func (*MultipleProjects) Type() EngagementType { return EngagementMultipleProjects }

func (m *MultipleProjects) clone() Engagement {
	c := *m
	c.Projects = append([]Project{}, m.Projects...)
	return &c
}

// AddProject appends a project entry.
func (m *MultipleProjects) AddProject(p Project) {
	m.Projects = append(m.Projects, p)
}

// RemoveProject removes the project at index i.
func (m *MultipleProjects) RemoveProject(i int) error {
	if i < 0 || i >= len(m.Projects) {
		return fmt.Errorf("project index %d out of range [0,%d)", i, len(m.Projects))
	}
	m.Projects = append(m.Projects[:i], m.Projects[i+1:]...)
	return nil
}

// SingleProject carries no extra fields; project details live on the record.
type SingleProject struct{}

func (*SingleProject) Type() EngagementType { return EngagementSingleProject }

func (s *SingleProject) clone() Engagement { return &SingleProject{} }
