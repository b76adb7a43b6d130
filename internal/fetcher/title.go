package fetcher

import (
	"strings"

	"github.com/antchfx/htmlquery"
)

// titleSelectors are tried in order when the API returns a blank title.
var titleSelectors = []string{
	"//h1",
	"//h2",
	"//title",
}

// TitleFromContent returns the text of the first heading found in content,
// or an empty string.
func TitleFromContent(content string) string {
	doc, err := htmlquery.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}
	for _, expr := range titleSelectors {
		node, err := htmlquery.Query(doc, expr)
		if err != nil || node == nil {
			continue
		}
		if title := strings.Join(strings.Fields(htmlquery.InnerText(node)), " "); title != "" {
			return title
		}
	}
	return ""
}
