package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Text returns the concatenated text content of a node subtree.
func Text(node *html.Node) string {
	var buf bytes.Buffer
	textRecursive(node, &buf)
	return buf.String()
}

func textRecursive(node *html.Node, buf *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buf.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		textRecursive(child, buf)
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// CleanHTML strips script and style subtrees from an HTML fragment and
// returns its visible text with whitespace collapsed. Used on listing
// fragments before their text becomes posting fields.
func CleanHTML(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	text := doc.Text()
	text = StripNonPrintable(text)
	text = innerWhitespace.ReplaceAllString(text, " ")

	return strings.TrimSpace(text), nil
}

// StripNonPrintable drops control and other non-printable runes but
// keeps plain spaces and newlines so collapsing still works.
func StripNonPrintable(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
