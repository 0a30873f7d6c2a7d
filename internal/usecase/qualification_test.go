package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BeefBowl03/domain-generator/internal/domain"
)

func TestMaxDollarAmount(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected float64
	}{
		{"no prices", "<p>Call for pricing</p>", 0},
		{"thousands separator", "Now only $1,250", 1250},
		{"space after sign and cents", "From $ 12,000.00 installed", 12000},
		{"bare digits with cents", "Sale $4999.99", 4999},
		{"two digit prices ignored", "Accessories $50 and $99", 0},
		{"running maximum", "$129 $2,499 $899", 2499},
		{"millions", "$1,250,000 estate", 1250000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaxDollarAmount(tt.html))
		})
	}
}

func TestHasInstallments(t *testing.T) {
	tests := []struct {
		html     string
		expected bool
	}{
		{"Checkout with Affirm", true},
		{"KLARNA available", true},
		{"Pay in 4 interest-free payments", true},
		{"Financing available on all spas", true},
		{"As low as $89/mo", true},
		{"Low monthly payments", true},
		{"We reaffirmed our commitment", false},
		{"Free shipping", false},
	}

	for _, tt := range tests {
		t.Run(tt.html, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasInstallments(tt.html))
		})
	}
}

func TestHasDropshipIndicators(t *testing.T) {
	assert.True(t, HasDropshipIndicators("We are an Authorized Dealer"))
	assert.True(t, HasDropshipIndicators("Free drop shipping nationwide"))
	assert.True(t, HasDropshipIndicators("Typical lead time is 3 weeks"))
	assert.True(t, HasDropshipIndicators("Each table is BUILT TO ORDER"))
	assert.False(t, HasDropshipIndicators("Our own factory and warehouse"))
}

func TestClassifyPage(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		trusted bool
		want    domain.QualificationVerdict
	}{
		{"high ticket only, trusted", `<p>Starting at $1,250</p>`, true, domain.Qualified},
		{"high ticket only, strict", `<p>Starting at $1,250</p>`, false, domain.NotQualified},
		{"dropship only, trusted", `<p>We offer drop shipping. Covers $50</p>`, true, domain.Qualified},
		{"dropship only, strict", `<p>We offer drop shipping. Covers $50</p>`, false, domain.NotQualified},
		{"both signals, strict", `<p>Authorized dealer. $2,999</p>`, false, domain.Qualified},
		{"installments count as high ticket", `<p>Wholesale pricing, pay with Klarna</p>`, false, domain.Qualified},
		{"neither signal, trusted", `<p>Stickers $5</p>`, true, domain.NotQualified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyPage(tt.html, tt.trusted)
			assert.Equal(t, tt.want, got.Verdict, got.Reason)
		})
	}
}

func TestQualifier_Qualify(t *testing.T) {
	prober := newFakeProber()
	prober.dead["gone.com"] = true
	prober.pages["cheap.com"] = `<body>Stickers $5</body>`
	q := NewQualifier(prober)
	ctx := context.Background()

	t.Run("no html is not qualified", func(t *testing.T) {
		res := q.Qualify(ctx, domain.StoreRecord{Domain: "gone.com"}, domain.ProbeFast, true)
		assert.False(t, res.Qualifies())
		assert.Equal(t, "no html", res.Reason)
	})

	t.Run("classifies fetched page", func(t *testing.T) {
		res := q.Qualify(ctx, domain.StoreRecord{Domain: "good.com", URL: "https://good.com"}, domain.ProbeThorough, false)
		assert.True(t, res.Qualifies())
		assert.Equal(t, 1299.0, res.MaxPrice)
		assert.True(t, res.Dropship)
	})

	t.Run("cheap page fails", func(t *testing.T) {
		res := q.Qualify(ctx, domain.StoreRecord{Domain: "cheap.com", URL: "https://cheap.com"}, domain.ProbeThorough, true)
		assert.False(t, res.Qualifies())
	})
}
