// Package sow holds the engagement data model the wizard builds up and the
// exporters consume: the EngagementRecord aggregate, its engagement variants,
// the deliverable list invariants, preset catalogs and the step gates.
package sow

import (
	"fmt"
	"regexp"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ClientInfo identifies the client party.
type ClientInfo struct {
	CompanyName string `yaml:"companyName" json:"companyName"`
	ContactName string `yaml:"contactName" json:"contactName"`
	Email       string `yaml:"email" json:"email"`
}

// ServiceProvider identifies the party performing the work.
type ServiceProvider struct {
	CompanyName string `yaml:"companyName" json:"companyName"`
	ContactName string `yaml:"contactName" json:"contactName"`
	Email       string `yaml:"email" json:"email"`
	Address     string `yaml:"address" json:"address"`
	Website     string `yaml:"website" json:"website"`
	Title       string `yaml:"title" json:"title"`
}

// Fees is the single-currency (USD) project fee. A zero TotalAmount means unset.
type Fees struct {
	TotalAmount            float64 `yaml:"totalAmount" json:"totalAmount"`
	PaymentStructure       string  `yaml:"paymentStructure" json:"paymentStructure"`
	CustomPaymentStructure string  `yaml:"customPaymentStructure" json:"customPaymentStructure"`
}

// ProjectDetails describes scope, schedule and fees.
// Deliverables is managed through AddDeliverable/RemoveDeliverable on the
// record so the uniqueness invariant holds.
type ProjectDetails struct {
	ProjectName               string   `yaml:"projectName" json:"projectName"`
	Description               string   `yaml:"description" json:"description"`
	Deliverables              []string `yaml:"deliverables" json:"deliverables"`
	Timeline                  string   `yaml:"timeline" json:"timeline"`
	StartDate                 string   `yaml:"startDate" json:"startDate"`
	EndDate                   string   `yaml:"endDate" json:"endDate"`
	UseFeesForContentPhrasing bool     `yaml:"useFeesForContentPhrasing" json:"useFeesForContentPhrasing"`
	SpecificProjectDetails    string   `yaml:"specificProjectDetails" json:"specificProjectDetails"`
	Fees                      Fees     `yaml:"fees" json:"fees"`
}

// Terms are the legal clauses. Empty strings, false and zero omit a clause.
type Terms struct {
	PaymentTerms         string `yaml:"paymentTerms" json:"paymentTerms"`
	CancellationPolicy   string `yaml:"cancellationPolicy" json:"cancellationPolicy"`
	IntellectualProperty string `yaml:"intellectualProperty" json:"intellectualProperty"`
	Confidentiality      bool   `yaml:"confidentiality" json:"confidentiality"`
	Revisions            int    `yaml:"revisions" json:"revisions"`
	LateFeePolicy        string `yaml:"lateFeePolicy" json:"lateFeePolicy"`
}

// EngagementRecord is the single aggregate a wizard session edits.
// It is not safe for concurrent mutation; hand a Clone to background work.
type EngagementRecord struct {
	Client   ClientInfo
	Provider ServiceProvider
	Project  ProjectDetails
	Terms    Terms

	engagement Engagement
}

// Defaults are injected at record construction. Nothing in this package
// reads a process-wide default identity.
type Defaults struct {
	Provider  ServiceProvider
	Revisions int
}

// StandardDefaults returns the stock provider identity and a revisions
// allowance of three rounds.
func StandardDefaults() Defaults {
	return Defaults{
		Provider: ServiceProvider{
			CompanyName: "Blogsmith INC",
			ContactName: "Madeline French",
			Email:       "maddy@theblogsmith.com",
			Address:     "1090 S Wadsworth Blvd\nUnit C #3184\nLakewood, CO 80226",
			Website:     "https://www.theblogsmith.com",
			Title:       "CEO, The Blogsmith",
		},
		Revisions: 3,
	}
}

// NewRecord creates a record with the engagement type unset and the provider
// pre-populated from d.
func NewRecord(d Defaults) *EngagementRecord {
	revisions := d.Revisions
	if revisions < 0 {
		revisions = 0
	}
	return &EngagementRecord{
		Provider: d.Provider,
		Project: ProjectDetails{
			Deliverables: []string{},
		},
		Terms: Terms{Revisions: revisions},
	}
}

// Engagement returns the active engagement variant, or nil when unset.
func (r *EngagementRecord) Engagement() Engagement {
	return r.engagement
}

// EngagementType reports the type of the active variant.
func (r *EngagementRecord) EngagementType() EngagementType {
	if r.engagement == nil {
		return EngagementUnset
	}
	return r.engagement.Type()
}

// SetEngagementType selects the variant. Re-selecting the current type keeps
// its details; switching discards the previous variant's details.
func (r *EngagementRecord) SetEngagementType(t EngagementType) error {
	if r.EngagementType() == t {
		return nil
	}
	switch t {
	case EngagementUnset:
		r.engagement = nil
	case EngagementRetainer:
		r.engagement = &Retainer{}
	case EngagementMultipleProjects:
		r.engagement = &MultipleProjects{Projects: []Project{}}
	case EngagementSingleProject:
		r.engagement = &SingleProject{}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEngagementType, string(t))
	}
	return nil
}

// SetEngagement installs a fully built variant.
func (r *EngagementRecord) SetEngagement(e Engagement) {
	r.engagement = e
}

// RetainerDetails returns the retainer variant when it is active.
func (r *EngagementRecord) RetainerDetails() (*Retainer, bool) {
	ret, ok := r.engagement.(*Retainer)
	return ret, ok
}

// MultipleProjectsDetails returns the multiple-projects variant when it is active.
func (r *EngagementRecord) MultipleProjectsDetails() (*MultipleProjects, bool) {
	mp, ok := r.engagement.(*MultipleProjects)
	return mp, ok
}

// SetTotalAmount sets the project fee. Negative amounts are rejected.
func (r *EngagementRecord) SetTotalAmount(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %.2f", ErrNegativeAmount, amount)
	}
	r.Project.Fees.TotalAmount = amount
	return nil
}

// SetRevisions sets the included revision rounds; negatives clamp to zero.
func (r *EngagementRecord) SetRevisions(n int) {
	if n < 0 {
		n = 0
	}
	r.Terms.Revisions = n
}

// Clone returns a deep copy safe to hand to an export goroutine.
func (r *EngagementRecord) Clone() *EngagementRecord {
	c := *r
	c.Project.Deliverables = append([]string{}, r.Project.Deliverables...)
	if r.engagement != nil {
		c.engagement = r.engagement.clone()
	}
	return &c
}

// ClientSlug is the client company name with whitespace runs replaced by
// hyphens, as used in export file names.
func (r *EngagementRecord) ClientSlug() string {
	return whitespaceRun.ReplaceAllString(r.Client.CompanyName, "-")
}
