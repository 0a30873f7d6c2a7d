package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/BeefBowl03/domain-generator/internal/domain"
)

var (
	// $1,250 | $ 12,000.00 | $899 | $4999.99
	priceRegex = regexp.MustCompile(`\$\s?(\d{1,3}(?:,\d{3})+|\d{3,6})(?:\.\d{2})?`)

	installmentRegex = regexp.MustCompile(`(?i)\b(?:affirm|klarna|afterpay|sezzle|zip\s?pay|quadpay|pay\s+in\s+4|pay\s+over\s+time|financing\s+available|monthly\s+payments|as\s+low\s+as\s+\$\d+(?:\.\d{2})?\s*/\s*mo)\b`)
)

// dropshipPhrases are matched as lowercase substrings
var dropshipPhrases = []string{
	"authorized dealer",
	"authorized retailer",
	"ships from supplier",
	"ships from manufacturer",
	"ships directly from the manufacturer",
	"drop ship",
	"drop-ship",
	"dropship",
	"lead time",
	"made to order",
	"built to order",
	"multiple brands",
	"wholesale",
	"distributor",
	"factory direct",
}

// MaxDollarAmount returns the largest dollar amount written on the page, or 0 when there is none
func MaxDollarAmount(html string) float64 {
	maxPrice := 0.0
	for _, m := range priceRegex.FindAllStringSubmatch(html, -1) {
		value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if value > maxPrice {
			maxPrice = value
		}
	}
	return maxPrice
}

// HasInstallments reports whether the page advertises financing or buy-now-pay-later
func HasInstallments(html string) bool {
	return installmentRegex.MatchString(html)
}

// HasDropshipIndicators reports whether the page uses reseller or supplier-fulfilled language
func HasDropshipIndicators(html string) bool {
	lower := strings.ToLower(html)
	for _, phrase := range dropshipPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// ClassifyPage applies the high-ticket and dropship heuristics to a page.
// Trusted stores need either signal; everything else needs both.
func ClassifyPage(html string, trustedKnown bool) domain.QualificationResult {
	res := domain.QualificationResult{
		MaxPrice:     MaxDollarAmount(html),
		Installments: HasInstallments(html),
		Dropship:     HasDropshipIndicators(html),
	}
	highTicket := res.HighTicket()

	qualified := highTicket && res.Dropship
	if trustedKnown {
		qualified = highTicket || res.Dropship
	}

	if qualified {
		res.Verdict = domain.Qualified
	} else {
		res.Verdict = domain.NotQualified
	}
	res.Reason = fmt.Sprintf("high_ticket=%t dropship=%t trusted=%t max_price=%.2f",
		highTicket, res.Dropship, trustedKnown, res.MaxPrice)

	return res
}

// Qualifier fetches a store's homepage and classifies it
type Qualifier struct {
	prober domain.SiteProber
}

// NewQualifier creates a qualifier over the given prober
func NewQualifier(prober domain.SiteProber) *Qualifier {
	return &Qualifier{prober: prober}
}

// Qualify classifies a store. A store whose homepage cannot be fetched is not qualified.
func (q *Qualifier) Qualify(ctx context.Context, store domain.StoreRecord, mode domain.ProbeMode, trustedKnown bool) domain.QualificationResult {
	page := q.prober.FetchHTML(ctx, store, mode)
	if !page.Found() || page.HTML == "" {
		return domain.QualificationResult{Verdict: domain.NotQualified, Reason: "no html"}
	}
	return ClassifyPage(page.HTML, trustedKnown)
}
