package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// InlineScripts returns the text of every <script> element in the document that has
// no `src` attribute, in document order.
func InlineScripts(doc *goquery.Document) []string {
	scripts := []string{}
	for _, node := range doc.Find("script").Nodes {
		external := false
		for _, a := range node.Attr {
			if a.Key == "src" {
				external = true
				break
			}
		}
		if external {
			continue
		}
		scripts = append(scripts, GetText(node))
	}
	return scripts
}

// FindScript returns the first inline script that contains every one of the markers.
func FindScript(doc *goquery.Document, markers ...string) (string, bool) {
	for _, script := range InlineScripts(doc) {
		matched := true
		for _, m := range markers {
			if !strings.Contains(script, m) {
				matched = false
				break
			}
		}
		if matched {
			return script, true
		}
	}
	return "", false
}
