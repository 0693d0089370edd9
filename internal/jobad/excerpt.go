package jobad

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"careers-gateway/internal/smartrecruiters"
)

// Excerpt strips markup from an ad HTML fragment and collapses whitespace,
// truncating to at most maxLen bytes on a word boundary.
func Excerpt(html string, maxLen int) string {
	html = strings.TrimSpace(html)
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}

	cut := text[:maxLen]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}

// Summary builds a plain-text preview from the ad's job description section,
// falling back to the company description.
func Summary(ad *smartrecruiters.JobAd, maxLen int) string {
	if ad == nil {
		return ""
	}
	if s := ad.Sections.JobDescription; s != nil {
		if text := Excerpt(s.Text, maxLen); text != "" {
			return text
		}
	}
	if s := ad.Sections.CompanyDescription; s != nil {
		return Excerpt(s.Text, maxLen)
	}
	return ""
}
