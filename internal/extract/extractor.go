package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMinChars is the minimum extracted length worth analyzing; shorter
// texts give unreliable detection results. Callers may tune it.
const DefaultMinChars = 100

// MainText extracts the primary article text from raw HTML. When the
// structural walker comes up short it retries with a selector-based
// paragraph harvest, since many pages carry their article in a classed
// <div> rather than <main>/<article>. Returns ok=false when the best
// effort is still below minChars.
func MainText(input []byte, minChars int) (string, bool) {
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	text := strings.TrimSpace(FromHTML(input).Text)
	if len([]rune(text)) < minChars {
		if fb := fallbackText(input); len([]rune(fb)) > len([]rune(text)) {
			text = fb
		}
	}
	if len([]rune(text)) < minChars {
		return "", false
	}
	return text, true
}

// fallbackText harvests paragraphs from common article containers, falling
// back to all paragraphs of meaningful length.
func fallbackText(input []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return ""
	}
	var b strings.Builder
	container := doc.Find("article, .article, .post, .content, main")
	if container.Length() > 0 {
		container.Find("p").Each(func(_ int, s *goquery.Selection) {
			b.WriteString(strings.TrimSpace(s.Text()))
			b.WriteString("\n\n")
		})
	} else {
		doc.Find("p").Each(func(_ int, s *goquery.Selection) {
			// Very short paragraphs are usually chrome, not content.
			if len(s.Text()) > 50 {
				b.WriteString(strings.TrimSpace(s.Text()))
				b.WriteString("\n\n")
			}
		})
	}
	return strings.TrimSpace(b.String())
}
