package jobs

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockSelectors end a paragraph when flattened to text.
const blockSelectors = "p, div, li, h1, h2, h3, h4, h5, h6, ul, ol, tr"

// PlainText flattens job notes to newline-separated text. Notes without markup are returned
// with only whitespace normalized. Entity-escaped markup is unescaped first.
func PlainText(notes string) (string, error) {
	if strings.Contains(notes, "&lt;") {
		notes = html.UnescapeString(notes)
	}
	if !strings.Contains(notes, "<") {
		return cleanLines(notes), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(notes))
	if err != nil {
		return "", fmt.Errorf("failed to parse job notes: %w", err)
	}
	doc.Find("script, style").Remove()
	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithNodes(newline())
	})
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendNodes(newline())
	})

	return cleanLines(doc.Text()), nil
}

func newline() *html.Node {
	return &html.Node{Type: html.TextNode, Data: "\n"}
}

func cleanLines(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
