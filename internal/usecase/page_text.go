package usecase

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nonContentSelectors lists elements stripped before reading page text
const nonContentSelectors = "script, style, noscript, svg"

// extractPageText returns the visible text of an HTML page together with its title
// and meta description. Unparseable input is returned as-is.
func extractPageText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	var parts []string
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		parts = append(parts, title)
	}
	if desc, exists := doc.Find("meta[name='description']").Attr("content"); exists {
		parts = append(parts, strings.TrimSpace(desc))
	}
	if ogDesc, exists := doc.Find("meta[property='og:description']").Attr("content"); exists {
		parts = append(parts, strings.TrimSpace(ogDesc))
	}

	body := doc.Find("body").First()
	if body.Length() > 0 {
		body.Find(nonContentSelectors).Remove()
		parts = append(parts, strings.Join(strings.Fields(body.Text()), " "))
	}

	return strings.Join(parts, " ")
}
