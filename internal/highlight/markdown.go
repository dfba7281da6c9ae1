package highlight

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Explanation renders the tutor's markdown reply as HTML. Raw HTML in the
// reply is dropped and only safe link protocols are kept.
func Explanation(text string) template.HTML {
	if text == "" {
		return ""
	}

	extensions := parser.CommonExtensions | parser.HardLineBreak | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(text))

	htmlFlags := html.CommonFlags | html.SkipHTML | html.Safelink | html.HrefTargetBlank | html.NofollowLinks | html.NoreferrerLinks
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})

	return template.HTML(markdown.Render(doc, renderer))
}
