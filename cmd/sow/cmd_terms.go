package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sowbuilder/internal/format"
	"sowbuilder/internal/sow"
)

var termsKind string

// termsCmd lists the preset catalogs
var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "List preset payment terms, structures, deliverables and clauses",
	Long: `Prints the values accepted by record files and offered by the wizard.

Kinds: payment-terms, payment-structures, deliverables, cancellation, ip, engagement (default: all)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTerms(cmd.OutOrStdout(), termsKind)
	},
}

func init() {
	termsCmd.Flags().StringVarP(&termsKind, "kind", "k", "", "Only print one catalog")
}

type catalog struct {
	name  string
	print func(io.Writer)
}

var catalogs = []catalog{
	{"engagement", func(w io.Writer) {
		for _, t := range sow.EngagementTypes {
			fmt.Fprintf(w, "  %-18s %s\n", t, t.Title())
		}
	}},
	{"payment-terms", func(w io.Writer) {
		for _, o := range sow.PaymentTermOptions {
			fmt.Fprintf(w, "  %-18s %s (\"All invoices are %s.\")\n", o.Value, o.Label, format.PaymentTermsPhrase(o.Value))
		}
	}},
	{"payment-structures", func(w io.Writer) {
		for _, o := range sow.PaymentStructureOptions {
			fmt.Fprintf(w, "  %-18s %s\n", o.Value, o.Label)
		}
	}},
	{"deliverables", func(w io.Writer) {
		for _, d := range sow.CommonDeliverables {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}},
	{"cancellation", func(w io.Writer) { numbered(w, sow.StandardCancellationPolicies) }},
	{"ip", func(w io.Writer) { numbered(w, sow.StandardIPClauses) }},
}

func numbered(w io.Writer, items []string) {
	for i, s := range items {
		fmt.Fprintf(w, "  %d. %s\n", i+1, s)
	}
}

func printTerms(w io.Writer, kind string) error {
	kind = strings.ToLower(strings.TrimSpace(kind))
	found := false
	for _, c := range catalogs {
		if kind != "" && kind != c.name {
			continue
		}
		found = true
		fmt.Fprintf(w, "%s:\n", c.name)
		c.print(w)
		fmt.Fprintln(w)
	}
	if !found {
		names := make([]string, len(catalogs))
		for i, c := range catalogs {
			names[i] = c.name
		}
		return fmt.Errorf("unknown catalog %q (valid: %s)", kind, strings.Join(names, ", "))
	}
	return nil
}
