package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sowbuilder/internal/render"
	"sowbuilder/internal/sow"
)

func sampleSource(t *testing.T) render.Source {
	t.Helper()
	rec := sow.NewRecord(sow.StandardDefaults())
	require.NoError(t, rec.SetEngagementType(sow.EngagementSingleProject))
	rec.Client = sow.ClientInfo{CompanyName: "Acme Corporation", ContactName: "John Smith"}
	rec.Project.Description = "Content for the *spring* launch"
	require.NoError(t, rec.SetTotalAmount(5000))
	rec.Project.Fees.PaymentStructure = "50-50"
	rec.AddDeliverable("Blog posts")
	rec.AddDeliverable("SEO content")

	src, err := render.FromRecord(rec)
	require.NoError(t, err)
	return src
}

func TestMarkdown_Structure(t *testing.T) {
	md := Markdown(sampleSource(t))

	assert.True(t, strings.HasPrefix(md, "# STATEMENT OF WORK\n"))
	assert.Contains(t, md, "\n## PARTIES\n")
	assert.Contains(t, md, "**CLIENT:**  \n**Company:** Acme Corporation")
	assert.Contains(t, md, "### PROJECT FEES AND PAYMENT STRUCTURE")
	assert.Contains(t, md, "**Total Project Fee:** $5,000.00")
	assert.Contains(t, md, "\n1. Blog posts\n2. SEO content\n")
	assert.Contains(t, md, `Content for the \*spring\* launch`)
}

func TestMarkdown_OmitsZeroFee(t *testing.T) {
	rec := sow.NewRecord(sow.StandardDefaults())
	rec.AddDeliverable("Blog posts")
	src, err := render.FromRecord(rec)
	require.NoError(t, err)
	assert.NotContains(t, Markdown(src), "PROJECT FEES")
}

func TestMarkdown_Override(t *testing.T) {
	src := render.FromText("STATEMENT OF WORK\n\nPayment Terms:\nNet 30.")
	md := Markdown(src)
	assert.Contains(t, md, "## STATEMENT OF WORK")
	assert.Contains(t, md, "Payment Terms:  \nNet 30.")
	assert.NotContains(t, md, "## Payment Terms")
}

func TestText(t *testing.T) {
	src := sampleSource(t)
	assert.Equal(t, src.Text(), Text(src))

	override := render.FromText("edited by hand")
	assert.Equal(t, "edited by hand", Text(override))
}

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer("notty", 120)
	require.NoError(t, err)

	out, err := r.Render(sampleSource(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Corporation")
	assert.Contains(t, out, "$5,000.00")
}
