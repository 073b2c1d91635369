package sow

import "strings"

// Option is a preset value with its menu label.
type Option struct {
	Value string
	Label string
}

// PaymentTermOptions are the payment term codes offered by the terms step.
// Any other string is treated as custom text.
var PaymentTermOptions = []Option{
	{Value: "net-15", Label: "Net 15 days"},
	{Value: "net-30", Label: "Net 30 days"},
	{Value: "net-45", Label: "Net 45 days"},
	{Value: "due-on-receipt", Label: "Due on receipt"},
	{Value: "50-50", Label: "50% upfront, 50% on completion"},
	{Value: "monthly", Label: "Monthly billing"},
	{Value: "milestone", Label: "Milestone-based payments"},
}

// PaymentStructureOptions are the fee payment structures offered by the
// project step.
var PaymentStructureOptions = []Option{
	{Value: "full-upfront", Label: "100% upfront"},
	{Value: "50-50", Label: "50% upfront, 50% on completion"},
	{Value: "33-33-33", Label: "33% upfront, 33% midpoint, 33% completion"},
	{Value: "25-75", Label: "25% upfront, 75% on completion"},
	{Value: "milestone-based", Label: "Milestone-based payments"},
	{Value: "monthly", Label: "Monthly payments"},
}

// SetCustomPaymentStructure records custom payment structure text and, when
// it is not blank, makes it the active structure.
func (r *EngagementRecord) SetCustomPaymentStructure(text string) {
	r.Project.Fees.CustomPaymentStructure = text
	if strings.TrimSpace(text) != "" {
		r.Project.Fees.PaymentStructure = text
	}
}

// CommonDeliverables are the preset deliverable chips.
var CommonDeliverables = []string{
	"Blog posts",
	"Website copy",
	"Social media content",
	"Email campaigns",
	"Product descriptions",
	"Case studies",
	"White papers",
	"Press releases",
	"SEO content",
	"Landing pages",
	"Video scripts",
	"Podcast scripts",
	"Newsletter content",
	"Technical documentation",
	"Marketing materials",
}

// StandardCancellationPolicies are suggested termination clauses.
var StandardCancellationPolicies = []string{
	"Either party may terminate this agreement with 30 days written notice. Client will be responsible for payment of all work completed up to the termination date.",
	"This agreement may be terminated by either party with 14 days written notice. Upon termination, all outstanding invoices become immediately due and payable.",
	"Client may terminate this agreement at any time with written notice. Service provider reserves the right to terminate with 30 days notice for non-payment or breach of terms.",
	"For retainer agreements: Either party may terminate with 30 days notice. Unused retainer hours are non-refundable. For project work: Termination requires completion of current milestone and payment of all work performed.",
}

// StandardIPClauses are suggested intellectual property clauses.
var StandardIPClauses = []string{
	"All work product created under this agreement shall be owned by the Client upon full payment of all fees.",
	"Service Provider retains ownership of all pre-existing intellectual property and grants Client a license to use deliverables.",
	"Client owns final deliverables. Service Provider retains rights to methodologies, processes, and general knowledge gained.",
	"Shared ownership: Client owns project-specific deliverables, Service Provider retains rights to reusable components and frameworks.",
}

// DefaultLateFeePolicy is the text filled in when a late fee policy is enabled.
const DefaultLateFeePolicy = "Any invoice that is more than 7 days overdue will incur a 10% late fee."
