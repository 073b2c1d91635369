package pdf

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sowbuilder/internal/render"
	"sowbuilder/internal/sow"
)

type placed struct {
	page int
	x, y float64
	text string
	font string
	size float64
}

// fakeCanvas measures every byte as 2mm wide, so 85 characters fill the
// printable width.
type fakeCanvas struct {
	pages int
	style string
	size  float64
	texts []placed
	rules int
}

func (f *fakeCanvas) AddPage() { f.pages++ }
func (f *fakeCanvas) SetFont(_, style string, size float64) { f.style, f.size = style, size }
func (f *fakeCanvas) SetTextColor(_, _, _ int) {}
func (f *fakeCanvas) SetDrawColor(_, _, _ int) {}
func (f *fakeCanvas) Line(_, _, _, _ float64) { f.rules++ }
func (f *fakeCanvas) GetStringWidth(s string) float64 { return float64(len(s)) * 2 }
func (f *fakeCanvas) Text(x, y float64, s string) {
	f.texts = append(f.texts, placed{page: f.pages, x: x, y: y, text: s, font: f.style, size: f.size})
}

func (f *fakeCanvas) find(s string) (placed, bool) {
	for _, p := range f.texts {
		if p.text == s {
			return p, true
		}
	}
	return placed{}, false
}

func TestLayout_EnsureStartsNewPage(t *testing.T) {
	c := &fakeCanvas{}
	l := NewLayout(c, A4)
	require.Equal(t, 1, l.Pages())
	assert.Equal(t, 25.0, l.Y())

	l.Space(240) // cursor at 265
	assert.False(t, l.Ensure(5))
	assert.True(t, l.Ensure(6))
	assert.Equal(t, 2, l.Pages())
	assert.Equal(t, 25.0, l.Y())

	// Already at the top: a block taller than the page does not loop.
	assert.False(t, l.Ensure(1000))
	assert.Equal(t, 2, c.pages)
}

func TestLayout_BlockMovesWholeBlock(t *testing.T) {
	c := &fakeCanvas{}
	l := NewLayout(c, A4)
	l.Space(235) // cursor at 260, room for two lines

	text := strings.Repeat("word ", 40) // 200 chars, three wrapped lines
	l.Block(text, 0)

	require.Len(t, c.texts, 3)
	for i, p := range c.texts {
		assert.Equal(t, 2, p.page)
		assert.Equal(t, 25.0+float64(i)*5, p.y)
		assert.Equal(t, 20.0, p.x)
	}
	assert.Equal(t, 40.0, l.Y())
}

func TestLayout_Wrap(t *testing.T) {
	l := NewLayout(&fakeCanvas{}, A4)

	lines := l.Wrap("aaaa bbbb cccc", 20) // ten characters per line
	assert.Equal(t, []string{"aaaa bbbb", "cccc"}, lines)

	lines = l.Wrap("abcdefghijklmnopqrstuvwxy", 20)
	assert.Equal(t, []string{"abcdefghij", "klmnopqrst", "uvwxy"}, lines)

	lines = l.Wrap("first\n\nthird", 100)
	assert.Equal(t, []string{"first", "", "third"}, lines)
}

func longRecord(t *testing.T) *sow.EngagementRecord {
	t.Helper()
	rec := sow.NewRecord(sow.StandardDefaults())
	require.NoError(t, rec.SetEngagementType(sow.EngagementRetainer))
	rec.Client = sow.ClientInfo{CompanyName: "Acme Corporation", ContactName: "John Smith"}
	rec.Project.Description = strings.Repeat("A long scope description. ", 120)
	require.NoError(t, rec.SetTotalAmount(5000))
	rec.Project.Fees.PaymentStructure = "50-50"
	for _, d := range sow.CommonDeliverables {
		rec.AddDeliverable(d)
	}
	rec.Terms.PaymentTerms = "net-30"
	rec.Terms.Confidentiality = true
	rec.Terms.IntellectualProperty = sow.StandardIPClauses[1]
	rec.Terms.CancellationPolicy = sow.StandardCancellationPolicies[0]
	return rec
}

func TestDraw_Structured(t *testing.T) {
	src, err := render.FromRecord(longRecord(t))
	require.NoError(t, err)

	c := &fakeCanvas{}
	pages := Draw(c, src, nil)
	assert.Greater(t, pages, 1)
	assert.Equal(t, 1, c.rules)

	title, ok := c.find("STATEMENT OF WORK")
	require.True(t, ok)
	assert.Equal(t, "B", title.font)
	assert.Equal(t, 16.0, title.size)
	assert.Equal(t, (210-17*2)/2.0, title.x)

	p, ok := c.find("Total Project Fee: $5,000.00")
	require.True(t, ok)
	assert.Equal(t, 9.0, p.size)

	_, ok = c.find("Monthly Retainer Fee: $0.00")
	assert.True(t, ok)

	for _, p := range c.texts {
		assert.LessOrEqual(t, p.y, A4.Bound, p.text)
		assert.GreaterOrEqual(t, p.y, A4.Top, p.text)
		assert.LessOrEqual(t, float64(len(p.text))*2, A4.Width, p.text)
	}
}

func TestDraw_SignatureBlockKeptTogether(t *testing.T) {
	src, err := render.FromRecord(longRecord(t))
	require.NoError(t, err)

	c := &fakeCanvas{}
	Draw(c, src, nil)

	head, ok := c.find("SERVICE PROVIDER ACCEPTANCE:")
	require.True(t, ok)
	company, ok := c.find("CEO, The Blogsmith")
	require.True(t, ok)
	assert.Equal(t, head.page, company.page)
}

func TestDraw_Override(t *testing.T) {
	var b strings.Builder
	b.WriteString("STATEMENT OF WORK\n\n")
	for i := 0; i < 80; i++ {
		b.WriteString("Payment Terms: line of edited body text\n")
	}
	b.WriteString("ACCEPTANCE AND AUTHORIZATION")

	c := &fakeCanvas{}
	pages := Draw(c, render.FromText(b.String()), nil)
	assert.Equal(t, 2, pages)

	first := c.texts[0]
	assert.Equal(t, "STATEMENT OF WORK", first.text)
	assert.Equal(t, 12.0, first.size)
	assert.Equal(t, "B", first.font)

	second := c.texts[1]
	assert.Equal(t, 25.0+5+4, second.y)
	assert.Equal(t, 10.0, second.size)
	assert.Equal(t, "", second.font)

	last := c.texts[len(c.texts)-1]
	assert.Equal(t, "ACCEPTANCE AND AUTHORIZATION", last.text)
	assert.Equal(t, 2, last.page)
	assert.Equal(t, 12.0, last.size)
}

func TestRender_ProducesPDF(t *testing.T) {
	src, err := render.FromRecord(longRecord(t))
	require.NoError(t, err)

	r := &Renderer{Now: func() time.Time { return time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC) }}
	assert.Equal(t, render.KindPDF, r.Kind())
	data, err := r.Render(context.Background(), src)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	again, err := r.Render(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestRender_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Render(ctx, render.FromText("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender_RejectsUnencodableText(t *testing.T) {
	rec := longRecord(t)
	rec.Client.CompanyName = "株式会社 Acme"
	src, err := render.FromRecord(rec)
	require.NoError(t, err)

	data, err := New().Render(context.Background(), src)
	require.ErrorIs(t, err, ErrUnsupportedText)
	assert.Nil(t, data)
	assert.Contains(t, err.Error(), "株式会社")

	_, err = New().Render(context.Background(), render.FromText("SCOPE\nΩmega → done"))
	require.ErrorIs(t, err, ErrUnsupportedText)
	assert.Contains(t, err.Error(), "Ω→")
}

func TestRender_AcceptsWesternText(t *testing.T) {
	src := render.FromText("CAFÉ SERVICES\nFee: 1.000 € – payable “on receipt”")
	data, err := New().Render(context.Background(), src)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestEncoder(t *testing.T) {
	enc := &encoder{}
	assert.Equal(t, "Caf\xe9 \x80", enc.translate("Café €"))
	assert.NoError(t, enc.err())

	assert.Equal(t, "a?b?", enc.translate("a→b→"))
	assert.ErrorIs(t, enc.err(), ErrUnsupportedText)
	assert.Equal(t, []rune{'→'}, enc.missing)
}
