package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"sowbuilder/internal/format"
	"sowbuilder/internal/sow"
	ctl "sowbuilder/internal/wizard"
)

// field is one labelled input bound to a slice of the record. set runs on
// every edit so the record always mirrors what is on screen. Fields with
// submit instead act when enter is pressed and are cleared afterwards.
// get, when set, refreshes the shown value after edits elsewhere.
type field struct {
	label  string
	hint   string
	input  textinput.Model
	set    func(*ctl.Controller, string) error
	submit func(*ctl.Controller, string) (string, error)
	get    func(*sow.EngagementRecord) string
}

// action is a field that runs submit on enter. submit returns a status
// line for the user.
func action(label, hint string, submit func(*ctl.Controller, string) (string, error)) field {
	f := newField(label, hint, "", nil)
	f.submit = submit
	return f
}

func newField(label, hint, value string, set func(*ctl.Controller, string) error) field {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 2000
	in.Placeholder = hint
	in.SetValue(value)
	return field{label: label, hint: hint, input: in, set: set}
}

func stepFields(step ctl.Step, rec *sow.EngagementRecord) []field {
	switch step {
	case ctl.StepClientInfo:
		return partyFields(rec)
	case ctl.StepProjectDetails:
		return append(projectFields(rec), variantFields(rec)...)
	case ctl.StepTerms:
		return termsFields(rec)
	}
	return nil
}

func partyFields(rec *sow.EngagementRecord) []field {
	client := func(apply func(*sow.ClientInfo, string)) func(*ctl.Controller, string) error {
		return func(c *ctl.Controller, v string) error {
			c.UpdateClient(func(ci *sow.ClientInfo) { apply(ci, v) })
			return nil
		}
	}
	provider := func(apply func(*sow.ServiceProvider, string)) func(*ctl.Controller, string) error {
		return func(c *ctl.Controller, v string) error {
			c.UpdateProvider(func(p *sow.ServiceProvider) { apply(p, v) })
			return nil
		}
	}
	return []field{
		newField("Client company *", "Acme Corporation", rec.Client.CompanyName,
			client(func(ci *sow.ClientInfo, v string) { ci.CompanyName = v })),
		newField("Client contact *", "John Smith", rec.Client.ContactName,
			client(func(ci *sow.ClientInfo, v string) { ci.ContactName = v })),
		newField("Client email", "john@acme.com", rec.Client.Email,
			client(func(ci *sow.ClientInfo, v string) { ci.Email = v })),
		newField("Provider company *", "", rec.Provider.CompanyName,
			provider(func(p *sow.ServiceProvider, v string) { p.CompanyName = v })),
		newField("Provider contact *", "", rec.Provider.ContactName,
			provider(func(p *sow.ServiceProvider, v string) { p.ContactName = v })),
		newField("Provider email", "", rec.Provider.Email,
			provider(func(p *sow.ServiceProvider, v string) { p.Email = v })),
		newField("Provider address", `use \n for line breaks`, escapeNewlines(rec.Provider.Address),
			provider(func(p *sow.ServiceProvider, v string) { p.Address = unescapeNewlines(v) })),
		newField("Provider website", "", rec.Provider.Website,
			provider(func(p *sow.ServiceProvider, v string) { p.Website = v })),
		newField("Provider title", "Authorized Representative", rec.Provider.Title,
			provider(func(p *sow.ServiceProvider, v string) { p.Title = v })),
	}
}

func projectFields(rec *sow.EngagementRecord) []field {
	project := func(apply func(*sow.ProjectDetails, string) error) func(*ctl.Controller, string) error {
		return func(c *ctl.Controller, v string) error {
			var perr error
			err := c.UpdateProject(func(p *sow.ProjectDetails) { perr = apply(p, v) })
			if perr != nil {
				return perr
			}
			return err
		}
	}
	p := rec.Project
	return []field{
		newField("Project name", "", p.ProjectName,
			project(func(p *sow.ProjectDetails, v string) error { p.ProjectName = v; return nil })),
		newField("Description *", "What the engagement covers", p.Description,
			project(func(p *sow.ProjectDetails, v string) error { p.Description = v; return nil })),
		action("Add deliverable", fmt.Sprintf("type a name, or 1-%d to toggle a preset", len(sow.CommonDeliverables)), addDeliverable),
		action("Remove deliverable #", "number from the list below", removeDeliverable),
		newField("Timeline", "e.g. Six months", p.Timeline,
			project(func(p *sow.ProjectDetails, v string) error { p.Timeline = v; return nil })),
		newField("Start date", "YYYY-MM-DD", p.StartDate,
			project(func(p *sow.ProjectDetails, v string) error { p.StartDate = v; return checkDate(v) })),
		newField("End date", "YYYY-MM-DD", p.EndDate,
			project(func(p *sow.ProjectDetails, v string) error { p.EndDate = v; return checkDate(v) })),
		newField("Total fee (USD) *", "5000", amountString(p.Fees.TotalAmount),
			project(func(p *sow.ProjectDetails, v string) error {
				n, err := parseAmount(v)
				if err != nil {
					return err
				}
				p.Fees.TotalAmount = n
				return nil
			})),
		structureField(p),
		newField("Custom payment structure", "overrides the structure above", p.Fees.CustomPaymentStructure,
			func(c *ctl.Controller, v string) error { c.SetCustomPaymentStructure(v); return nil }),
		newField("Fees-for-content phrasing", "y/n", boolString(p.UseFeesForContentPhrasing),
			project(func(p *sow.ProjectDetails, v string) error {
				b, err := parseBool(v)
				p.UseFeesForContentPhrasing = b
				return err
			})),
		newField("Specific project details", "used with fees phrasing", p.SpecificProjectDetails,
			project(func(p *sow.ProjectDetails, v string) error { p.SpecificProjectDetails = v; return nil })),
	}
}

func variantFields(rec *sow.EngagementRecord) []field {
	if ret, ok := rec.RetainerDetails(); ok {
		retainer := func(apply func(*sow.Retainer, string) error) func(*ctl.Controller, string) error {
			return func(c *ctl.Controller, v string) error {
				var perr error
				if err := c.UpdateRetainer(func(r *sow.Retainer) { perr = apply(r, v) }); err != nil {
					return err
				}
				return perr
			}
		}
		amount := func(dst func(*sow.Retainer) *float64) func(*sow.Retainer, string) error {
			return func(r *sow.Retainer, v string) error {
				n, err := parseAmount(v)
				if err != nil {
					return err
				}
				*dst(r) = n
				return nil
			}
		}
		return []field{
			newField("Monthly hours", "20", amountString(ret.MonthlyHours),
				retainer(amount(func(r *sow.Retainer) *float64 { return &r.MonthlyHours }))),
			newField("Hourly rate", "100", amountString(ret.HourlyRate),
				retainer(amount(func(r *sow.Retainer) *float64 { return &r.HourlyRate }))),
			newField("Monthly retainer fee", "1800", amountString(ret.RetainerFee),
				retainer(amount(func(r *sow.Retainer) *float64 { return &r.RetainerFee }))),
			newField("Rollover hours", "y/n", boolString(ret.RolloverHours),
				retainer(func(r *sow.Retainer, v string) error {
					b, err := parseBool(v)
					r.RolloverHours = b
					return err
				})),
			newField("Max rollover hours", "5", amountString(ret.MaxRolloverHours),
				retainer(amount(func(r *sow.Retainer) *float64 { return &r.MaxRolloverHours }))),
		}
	}

	if mp, ok := rec.MultipleProjectsDetails(); ok {
		multi := func(apply func(*sow.MultipleProjects, string) error) func(*ctl.Controller, string) error {
			return func(c *ctl.Controller, v string) error {
				var perr error
				if err := c.UpdateMultipleProjects(func(m *sow.MultipleProjects) { perr = apply(m, v) }); err != nil {
					return err
				}
				return perr
			}
		}
		return []field{
			newField("Total budget", "", amountString(mp.TotalBudget),
				multi(func(m *sow.MultipleProjects, v string) error {
					n, err := parseAmount(v)
					if err != nil {
						return err
					}
					m.TotalBudget = n
					return nil
				})),
			newField("Payment schedule", "", mp.PaymentSchedule,
				multi(func(m *sow.MultipleProjects, v string) error { m.PaymentSchedule = v; return nil })),
			newField("Projects", "name | description | hours | timeline ; ...", projectsString(mp.Projects),
				multi(func(m *sow.MultipleProjects, v string) error {
					projects, err := parseProjects(v)
					if err != nil {
						return err
					}
					m.Projects = projects
					return nil
				})),
		}
	}
	return nil
}

func structureField(p sow.ProjectDetails) field {
	f := newField("Payment structure *", optionHint(sow.PaymentStructureOptions), p.Fees.PaymentStructure,
		func(c *ctl.Controller, v string) error {
			return c.UpdateProject(func(p *sow.ProjectDetails) { p.Fees.PaymentStructure = v })
		})
	f.get = func(rec *sow.EngagementRecord) string { return rec.Project.Fees.PaymentStructure }
	return f
}

// addDeliverable adds typed text as a deliverable; a preset number toggles
// that preset instead.
func addDeliverable(c *ctl.Controller, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	if i, err := strconv.Atoi(v); err == nil {
		if i < 1 || i > len(sow.CommonDeliverables) {
			return "", fmt.Errorf("preset %d does not exist", i)
		}
		d := sow.CommonDeliverables[i-1]
		c.ToggleDeliverable(d)
		if c.Record().HasDeliverable(d) {
			return "Added " + d, nil
		}
		return "Removed " + d, nil
	}
	if !c.AddDeliverable(v) {
		return v + " is already listed", nil
	}
	return "Added " + v, nil
}

func removeDeliverable(c *ctl.Controller, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return "", fmt.Errorf("enter the deliverable's number")
	}
	list := c.Record().Project.Deliverables
	if n < 1 || n > len(list) {
		return "", fmt.Errorf("no deliverable #%d", n)
	}
	name := list[n-1]
	if err := c.RemoveDeliverable(n - 1); err != nil {
		return "", err
	}
	return "Removed " + name, nil
}

func termsFields(rec *sow.EngagementRecord) []field {
	terms := func(apply func(*sow.Terms, string) error) func(*ctl.Controller, string) error {
		return func(c *ctl.Controller, v string) error {
			var perr error
			c.UpdateTerms(func(t *sow.Terms) { perr = apply(t, v) })
			return perr
		}
	}
	t := rec.Terms
	return []field{
		newField("Payment terms", optionHint(sow.PaymentTermOptions), t.PaymentTerms,
			terms(func(t *sow.Terms, v string) error { t.PaymentTerms = v; return nil })),
		newField("Late fee policy", "blank uses the standard interest sentence", t.LateFeePolicy,
			terms(func(t *sow.Terms, v string) error { t.LateFeePolicy = v; return nil })),
		newField("IP clause", "1-4 picks a standard clause", t.IntellectualProperty,
			terms(func(t *sow.Terms, v string) error { t.IntellectualProperty = pickPreset(v, sow.StandardIPClauses); return nil })),
		newField("Cancellation policy", "1-4 picks a standard policy", t.CancellationPolicy,
			terms(func(t *sow.Terms, v string) error {
				t.CancellationPolicy = pickPreset(v, sow.StandardCancellationPolicies)
				return nil
			})),
		newField("Confidentiality", "y/n", boolString(t.Confidentiality),
			terms(func(t *sow.Terms, v string) error {
				b, err := parseBool(v)
				t.Confidentiality = b
				return err
			})),
		newField("Revision rounds", "3", strconv.Itoa(t.Revisions),
			terms(func(t *sow.Terms, v string) error {
				if strings.TrimSpace(v) == "" {
					t.Revisions = 0
					return nil
				}
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil {
					return fmt.Errorf("revisions must be a whole number")
				}
				t.Revisions = n
				return nil
			})),
	}
}

func parseAmount(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n < 0 {
		return 0, sow.ErrNegativeAmount
	}
	return n, nil
}

func amountString(n float64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "n", "no", "false", "0":
		return false, nil
	case "y", "yes", "true", "1":
		return true, nil
	}
	return false, fmt.Errorf("answer y or n")
}

func boolString(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func checkDate(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	_, err := format.FormatDate(v)
	return err
}

// pickPreset maps "1".."n" to the n-th preset and leaves anything else as
// custom text.
func pickPreset(v string, presets []string) string {
	if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && i >= 1 && i <= len(presets) {
		return presets[i-1]
	}
	return v
}

func optionHint(opts []sow.Option) string {
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return strings.Join(values, " | ")
}

func escapeNewlines(s string) string   { return strings.ReplaceAll(s, "\n", `\n`) }
func unescapeNewlines(s string) string { return strings.ReplaceAll(s, `\n`, "\n") }

func parseProjects(s string) ([]sow.Project, error) {
	var out []sow.Project
	for _, entry := range strings.Split(s, ";") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		parts := strings.Split(entry, "|")
		for len(parts) < 4 {
			parts = append(parts, "")
		}
		hours, err := parseAmount(parts[2])
		if err != nil {
			return nil, fmt.Errorf("project hours: %w", err)
		}
		out = append(out, sow.Project{
			Name:           strings.TrimSpace(parts[0]),
			Description:    strings.TrimSpace(parts[1]),
			EstimatedHours: hours,
			Timeline:       strings.TrimSpace(parts[3]),
		})
	}
	if out == nil {
		out = []sow.Project{}
	}
	return out, nil
}

func projectsString(ps []sow.Project) string {
	entries := make([]string, len(ps))
	for i, p := range ps {
		entries[i] = strings.Join([]string{p.Name, p.Description, amountString(p.EstimatedHours), p.Timeline}, " | ")
	}
	return strings.Join(entries, "; ")
}
