package sow

import (
	"fmt"
	"strings"
)

// ValidationError reports required fields missing before leaving a step.
// It is an inline, blocking condition rather than a failure.
type ValidationError struct {
	Step    string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.Step, strings.Join(e.Missing, ", "))
}

// Message is the user-facing prompt for the first missing field.
func (e *ValidationError) Message() string {
	if len(e.Missing) == 0 {
		return ""
	}
	return "Please provide " + e.Missing[0] + "."
}

func required(step string, checks ...fieldCheck) error {
	var missing []string
	for _, c := range checks {
		if !c.ok {
			missing = append(missing, c.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Step: step, Missing: missing}
}

type fieldCheck struct {
	name string
	ok   bool
}

func present(name, v string) fieldCheck {
	return fieldCheck{name: name, ok: v != ""}
}

// CheckEngagement gates the engagement type step.
func CheckEngagement(r *EngagementRecord) error {
	return required("engagement type",
		fieldCheck{name: "an engagement type", ok: r.EngagementType() != EngagementUnset},
	)
}

// CheckParties gates the contact information step.
func CheckParties(r *EngagementRecord) error {
	return required("contact information",
		present("a client company name", r.Client.CompanyName),
		present("a client contact name", r.Client.ContactName),
		present("a service provider company name", r.Provider.CompanyName),
		present("a service provider contact name", r.Provider.ContactName),
	)
}

// CheckProject gates the project details step.
func CheckProject(r *EngagementRecord) error {
	return required("project details",
		present("a project description", strings.TrimSpace(r.Project.Description)),
		fieldCheck{name: "a project fee amount", ok: r.Project.Fees.TotalAmount > 0},
		present("a payment structure", r.Project.Fees.PaymentStructure),
	)
}
