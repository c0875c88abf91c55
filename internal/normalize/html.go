package normalize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanDescription reduces a description to clean text. Plain text passes
// through with whitespace normalization; HTML is parsed, images and
// scripts removed, and the remaining text extracted. Sources double-encode
// entities often enough that goquery's tolerant parser is the safe path.
func CleanDescription(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "<") {
		return CleanText(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CleanText(s)
	}
	doc.Find("img, script, style").Remove()

	// Force breaks after block elements so paragraphs don't run together.
	doc.Find("p, br, li, div, h1, h2, h3, h4").AfterHtml("\n")

	var b strings.Builder
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = CleanText(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}
