// Package richtext converts between the markup the composer produces and
// the plain text shown in lists and exports.
package richtext

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/russross/blackfriday/v2"
)

var (
	whitespaceRegex = regexp.MustCompile(`[^\S\n]+`)
	invisibleRegex  = regexp.MustCompile(`[\x{200B}-\x{200D}\x{FEFF}\x{00AD}\x{2060}-\x{2064}]+`)
)

// Render converts markdown to the HTML stored as message content.
func Render(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}
	out := blackfriday.Run([]byte(markdown),
		blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.HardLineBreak))
	return strings.TrimSpace(string(out))
}

// PlainText strips markup from html. Block elements start a new line and
// runs of spaces collapse to one.
func PlainText(html string) (string, error) {
	if html == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, head, meta, link").Remove()
	doc.Find("p, div, br, h1, h2, h3, h4, h5, h6, li, tr, blockquote, pre").Each(func(_ int, s *goquery.Selection) {
		s.BeforeHtml("\n")
	})

	text := invisibleRegex.ReplaceAllString(doc.Text(), "")
	text = whitespaceRegex.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	clean := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			clean = append(clean, line)
		}
	}
	return strings.Join(clean, "\n"), nil
}

// Preview returns the first n runes of the plain text of html on a single
// line, with "..." appended when it was cut. Unparseable input is
// previewed as is.
func Preview(html string, n int) string {
	text, err := PlainText(html)
	if err != nil {
		text = html
	}
	text = strings.Join(strings.Fields(text), " ")
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "..."
}
