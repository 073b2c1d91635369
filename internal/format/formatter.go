package format

import (
	"fmt"
	"strings"

	"sowbuilder/internal/sow"
)

const (
	qualitySentence = "All deliverables will be provided in the agreed-upon format and will meet the quality standards established in this agreement."

	retainerIntro = "This engagement is structured as a monthly retainer arrangement, providing the Client with dedicated access to the Service Provider's expertise and services on an ongoing basis."

	retainerOverage = "The monthly retainer fee secures the allocated hours and priority access to services. Any hours exceeding the monthly allocation will be billed at the standard hourly rate."

	confidentialityClause = "Both parties acknowledge that they may have access to confidential information during the course of this engagement. Each party agrees to maintain the confidentiality of such information and not to disclose it to third parties without prior written consent. This obligation shall survive the termination of this agreement."

	acceptanceIntro = "By signing below, both parties acknowledge that they have read, understood, and agree to be bound by the terms and conditions set forth in this Statement of Work."

	// SignatureLine is the blank a party signs and dates.
	SignatureLine = "Signature: _________________________ Date: _________"

	defaultSignerTitle = "Authorized Representative"
)

// Format derives the document sections from rec. It has no side effects
// and returns identical output for identical input. The only failure is a
// date that cannot be parsed.
func Format(rec *sow.EngagementRecord) (Document, error) {
	doc := Document{
		ClientCompany:   rec.Client.CompanyName,
		ProviderCompany: rec.Provider.CompanyName,
	}
	add := func(s Section, ok bool) {
		if ok {
			doc.Sections = append(doc.Sections, s)
		}
	}

	add(titleSection(rec), true)
	add(partiesSection(rec), true)
	add(deliverablesSection(rec))

	timeline, ok, err := timelineSection(rec)
	if err != nil {
		return Document{}, err
	}
	add(timeline, ok)

	add(retainerSection(rec))
	add(termsSection(rec), true)
	add(acceptanceSection(rec), true)
	return doc, nil
}

func titleSection(rec *sow.EngagementRecord) Section {
	return Section{
		ID:      SectionTitle,
		Heading: "STATEMENT OF WORK",
		Lines: []Line{
			plain(fmt.Sprintf(
				"This Statement of Work outlines the collaboration between %s and %s, including the following key terms:",
				rec.Provider.CompanyName, rec.Client.CompanyName)),
		},
	}
}

func partiesSection(rec *sow.EngagementRecord) Section {
	lines := []Line{
		subheading("CLIENT:"),
		field("Company", rec.Client.CompanyName),
		field("Primary Contact", rec.Client.ContactName),
	}
	if rec.Client.Email != "" {
		lines = append(lines, field("Email", rec.Client.Email))
	}

	lines = append(lines,
		subheading("SERVICE PROVIDER:"),
		field("Company", rec.Provider.CompanyName),
	)
	if rec.Provider.Website != "" {
		lines = append(lines, field("Website", rec.Provider.Website))
	}
	if rec.Provider.Address != "" {
		lines = append(lines, field("Business Address", rec.Provider.Address))
	}
	return Section{ID: SectionParties, Heading: "PARTIES", Lines: lines}
}

func deliverablesSection(rec *sow.EngagementRecord) (Section, bool) {
	p := rec.Project
	if p.Description == "" && len(p.Deliverables) == 0 {
		return Section{}, false
	}

	var lines []Line
	if p.Description != "" {
		lines = append(lines, subheading("Project Description:"), plain(p.Description))
	}

	if p.Fees.TotalAmount > 0 {
		lines = append(lines,
			heading("PROJECT FEES AND PAYMENT STRUCTURE"),
			field("Total Project Fee", FormatCurrency(p.Fees.TotalAmount)),
			field("Payment Structure", PaymentStructureLabel(p.Fees.PaymentStructure)),
		)
	}

	if len(p.Deliverables) > 0 {
		lines = append(lines, subheading("Deliverables:"))
		lines = append(lines, deliverableLines(p)...)
	}
	return Section{ID: SectionDeliverables, Heading: "DELIVERABLES AND OUTCOMES", Lines: lines}, true
}

func deliverableLines(p sow.ProjectDetails) []Line {
	if p.UseFeesForContentPhrasing {
		lines := []Line{plain(fmt.Sprintf(
			"The fees will be used for various content projects including %s.",
			strings.Join(p.Deliverables, ", ")))}
		if p.SpecificProjectDetails != "" {
			lines = append(lines, plain(fmt.Sprintf(
				"These deliverables will include %s.", p.SpecificProjectDetails)))
		}
		return lines
	}

	lines := make([]Line, 0, len(p.Deliverables)+1)
	for i, d := range p.Deliverables {
		lines = append(lines, item(i+1, d))
	}
	return append(lines, plain(qualitySentence))
}

func timelineSection(rec *sow.EngagementRecord) (Section, bool, error) {
	p := rec.Project
	if p.Timeline == "" && p.StartDate == "" && p.EndDate == "" {
		return Section{}, false, nil
	}

	var start, end string
	var err error
	if p.StartDate != "" {
		if start, err = FormatDate(p.StartDate); err != nil {
			return Section{}, false, fmt.Errorf("start date: %w", err)
		}
	}
	if p.EndDate != "" {
		if end, err = FormatDate(p.EndDate); err != nil {
			return Section{}, false, fmt.Errorf("end date: %w", err)
		}
	}

	var lines []Line
	if start != "" && end != "" {
		lines = append(lines, field("Timeline", fmt.Sprintf(
			"This SOW begins on %s and will terminate at the end of the day on %s.", start, end)))
	} else {
		if p.Timeline != "" {
			lines = append(lines, field("Timeline", p.Timeline))
		}
		if start != "" {
			lines = append(lines, field("Start Date", start))
		}
		if end != "" {
			lines = append(lines, field("End Date", end))
		}
	}
	return Section{ID: SectionTimeline, Heading: "TIMELINE", Lines: lines}, true, nil
}

func retainerSection(rec *sow.EngagementRecord) (Section, bool) {
	ret, ok := rec.RetainerDetails()
	if !ok {
		return Section{}, false
	}

	lines := []Line{
		plain(retainerIntro),
		field("Monthly Hour Allocation", formatQuantity(ret.MonthlyHours)+" hours per month"),
		field("Hourly Rate", FormatCurrency(ret.HourlyRate)),
		field("Monthly Retainer Fee", FormatCurrency(ret.RetainerFee)),
	}
	if ret.RolloverHours {
		lines = append(lines, field("Rollover Hours", fmt.Sprintf(
			"Up to %s unused hours may roll over to the following month.", formatQuantity(ret.MaxRolloverHours))))
	}
	lines = append(lines, plain(retainerOverage))
	return Section{ID: SectionRetainer, Heading: "RETAINER ARRANGEMENT", Lines: lines}, true
}

func termsSection(rec *sow.EngagementRecord) Section {
	t := rec.Terms
	var lines []Line

	if t.PaymentTerms != "" {
		late := t.LateFeePolicy
		if late == "" {
			late = DefaultLatePaymentSentence
		}
		lines = append(lines,
			subheading("Payment Terms:"),
			plain(fmt.Sprintf("All invoices are %s. %s", PaymentTermsPhrase(t.PaymentTerms), late)),
		)
	}
	if t.IntellectualProperty != "" {
		lines = append(lines, subheading("Intellectual Property Rights:"), plain(t.IntellectualProperty))
	}
	if t.Revisions > 0 {
		lines = append(lines, subheading("Revisions and Changes:"), plain(revisionsClause(t.Revisions)))
	}
	if t.Confidentiality {
		lines = append(lines, subheading("Confidentiality:"), plain(confidentialityClause))
	}
	if t.CancellationPolicy != "" {
		lines = append(lines, subheading("Termination and Cancellation:"), plain(t.CancellationPolicy))
	}
	return Section{ID: SectionTerms, Heading: "TERMS AND CONDITIONS", Lines: lines}
}

func revisionsClause(n int) string {
	return fmt.Sprintf("This agreement includes up to %d rounds of revisions for each major deliverable. "+
		"Additional revisions beyond this scope will be subject to additional charges at the standard hourly rate. "+
		"All revision requests must be submitted in writing with specific, actionable feedback.", n)
}

func acceptanceSection(rec *sow.EngagementRecord) Section {
	title := rec.Provider.Title
	if title == "" {
		title = defaultSignerTitle
	}
	return Section{
		ID:      SectionAcceptance,
		Heading: "ACCEPTANCE AND AUTHORIZATION",
		Lines: []Line{
			plain(acceptanceIntro),
			subheading("CLIENT ACCEPTANCE:"),
			plain(SignatureLine),
			plain(rec.Client.ContactName),
			plain(rec.Client.CompanyName),
			subheading("SERVICE PROVIDER ACCEPTANCE:"),
			plain(SignatureLine),
			plain(rec.Provider.ContactName),
			plain(title),
			plain(rec.Provider.CompanyName),
		},
	}
}
