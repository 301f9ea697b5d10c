package retrieve

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MinArticleChars is the minimum extracted length considered enough signal
// to score a page reliably
const MinArticleChars = 300

// boilerplateSelector matches elements stripped before content extraction
const boilerplateSelector = "script, style, noscript, iframe, nav, aside, header, footer, form"

var whitespaceRe = regexp.MustCompile(`\s+`)

// ExtractMainText returns the main article body of a fetched page using a
// readability-style heuristic, falling back to whole-page visible text.
// Returns "" when nothing useful could be extracted.
func ExtractMainText(htmlContent string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return visibleText(htmlContent)
	}
	doc.Find(boilerplateSelector).Remove()

	// Semantic containers first
	for _, selector := range []string{"article", "main", "[role='main']"} {
		if text := cleanText(doc.Find(selector).First().Text()); len(text) >= MinArticleChars {
			return text
		}
	}

	// Densest paragraph block: the container whose direct <p> children
	// carry the most text
	bestText := ""
	doc.Find("div, section").Each(func(_ int, sel *goquery.Selection) {
		var parts []string
		sel.ChildrenFiltered("p").Each(func(_ int, p *goquery.Selection) {
			parts = append(parts, p.Text())
		})
		text := cleanText(strings.Join(parts, " "))
		if len(text) > len(bestText) {
			bestText = text
		}
	})
	if len(bestText) >= MinArticleChars {
		return bestText
	}

	// All paragraphs regardless of container
	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		parts = append(parts, p.Text())
	})
	if text := cleanText(strings.Join(parts, " ")); len(text) >= MinArticleChars {
		return text
	}

	// Whole-page text as the last resort
	return cleanText(doc.Text())
}

// visibleText walks raw HTML collecting text nodes, skipping script/style
// subtrees. Used when goquery cannot parse the page.
func visibleText(htmlContent string) string {
	node, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return cleanText(buf.String())
}

func cleanText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
