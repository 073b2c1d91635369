package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sowbuilder/internal/render"
	"sowbuilder/internal/sow"
)

func record(t *testing.T) *sow.EngagementRecord {
	t.Helper()
	rec := sow.NewRecord(sow.StandardDefaults())
	require.NoError(t, rec.SetEngagementType(sow.EngagementSingleProject))
	rec.Client = sow.ClientInfo{CompanyName: "Acme Corporation", ContactName: "John Smith"}
	rec.Project.Description = "Spring launch content"
	require.NoError(t, rec.SetTotalAmount(5000))
	rec.Project.Fees.PaymentStructure = "50-50"
	rec.AddDeliverable("Blog posts")
	return rec
}

func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatal("word/document.xml missing")
	return ""
}

var textRun = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// texts returns the text of every run in document order.
func texts(doc string) []string {
	var out []string
	for _, m := range textRun.FindAllStringSubmatch(doc, -1) {
		if m[1] != "" {
			out = append(out, m[1])
		}
	}
	return out
}

func render1(t *testing.T, src render.Source) string {
	t.Helper()
	data, err := New().Render(context.Background(), src)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("PK")))
	return documentXML(t, data)
}

func TestRender_Structured(t *testing.T) {
	src, err := render.FromRecord(record(t))
	require.NoError(t, err)
	assert.Equal(t, render.KindDOCX, New().Kind())

	doc := render1(t, src)
	got := texts(doc)
	for _, want := range []string{
		"STATEMENT OF WORK",
		"Blogsmith INC &amp; Acme Corporation",
		"PROJECT FEES AND PAYMENT STRUCTURE",
		"Total Project Fee: ",
		"$5,000.00",
		"1. Blog posts",
	} {
		assert.Contains(t, got, want)
	}
	for _, style := range []string{`"Title"`, `"Heading1"`, `"Heading2"`} {
		assert.Contains(t, doc, style)
	}
	assert.Contains(t, doc, "2F5496")
}

func TestRender_MultiLineValueSplitsParagraphs(t *testing.T) {
	src, err := render.FromRecord(record(t))
	require.NoError(t, err)

	got := texts(render1(t, src))
	i := indexOf(got, "1090 S Wadsworth Blvd")
	require.GreaterOrEqual(t, i, 1, "address runs missing: %v", got)
	assert.Equal(t, "Business Address: ", got[i-1])
	assert.Equal(t, []string{"Unit C #3184", "Lakewood, CO 80226"}, got[i+1:i+3])
	for _, s := range got {
		assert.NotContains(t, s, "\n")
	}
}

func TestRender_OmitsZeroFee(t *testing.T) {
	rec := record(t)
	require.NoError(t, rec.SetTotalAmount(0))
	src, err := render.FromRecord(rec)
	require.NoError(t, err)

	assert.NotContains(t, render1(t, src), "PROJECT FEES")
}

func TestRender_Override(t *testing.T) {
	src := render.FromText("STATEMENT OF WORK\n\nEdited terms & conditions")

	doc := render1(t, src)
	assert.Equal(t, []string{"STATEMENT OF WORK", "Edited terms &amp; conditions"}, texts(doc))
	assert.NotContains(t, doc, `"Heading1"`)
	assert.False(t, strings.Contains(doc, "Acme"))
}

func TestRender_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Render(ctx, render.FromText("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
