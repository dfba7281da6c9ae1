package highlight

import (
	"html"
	"html/template"
	"strconv"
	"strings"
	"time"
)

// CopyFeedback is how long the copy button shows its "Copied!" label.
const CopyFeedback = 2 * time.Second

// Block is a highlighted code listing with its line gutter.
type Block struct {
	Language string
	Source   string
	Code     template.HTML
	Lines    int
}

// Render highlights code and counts its lines. Lines are counted on the
// unescaped text split on '\n', so empty input still has one line.
func Render(code, language string) Block {
	return Block{
		Language: language,
		Source:   code,
		Code:     Highlight(code, language),
		Lines:    strings.Count(code, "\n") + 1,
	}
}

// LineNumbers returns the gutter labels, starting at 1.
func (b Block) LineNumbers() []int {
	nums := make([]int, b.Lines)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// Markup renders the full listing: header with language and copy button,
// right-aligned line numbers and the highlighted code. The raw source rides
// along in a hidden textarea for the clipboard script.
func (b Block) Markup() template.HTML {
	var sb strings.Builder
	sb.WriteString(`<div class="code-block" data-copy-ms="`)
	sb.WriteString(strconv.FormatInt(CopyFeedback.Milliseconds(), 10))
	sb.WriteString(`"><div class="code-header"><span class="code-lang">`)
	sb.WriteString(html.EscapeString(b.Language))
	sb.WriteString(`</span><button type="button" class="copy-button">Copy</button></div>`)
	sb.WriteString(`<div class="code-body"><div class="gutter" aria-hidden="true">`)
	for _, n := range b.LineNumbers() {
		sb.WriteString(`<div class="ln">`)
		sb.WriteString(strconv.Itoa(n))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div><pre><code>`)
	sb.WriteString(string(b.Code))
	sb.WriteString(`</code></pre></div><textarea class="copy-source" hidden>`)
	sb.WriteString(html.EscapeString(b.Source))
	sb.WriteString(`</textarea></div>`)
	return template.HTML(sb.String())
}
