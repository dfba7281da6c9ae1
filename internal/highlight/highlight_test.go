package highlight

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		language string
		want     template.HTML
	}{
		{
			name:     "empty",
			code:     "",
			language: "html",
			want:     "",
		},
		{
			name:     "plain language is only escaped",
			code:     "SELECT 1",
			language: "sql",
			want:     "SELECT 1",
		},
		{
			name:     "tag is escaped before wrapping",
			code:     "<div>",
			language: "html",
			want:     `<span class="hl-tag">&lt;div</span>&gt;`,
		},
		{
			name:     "closing tag",
			code:     "</p>",
			language: "html",
			want:     `<span class="hl-tag">&lt;/p</span>&gt;`,
		},
		{
			name:     "attribute and string",
			code:     `<a href="x">`,
			language: "html",
			want:     `<span class="hl-tag">&lt;a</span> <span class="hl-attr">href</span>=<span class="hl-string">"x"</span>&gt;`,
		},
		{
			name:     "html comment",
			code:     "<!-- hi -->",
			language: "html",
			want:     `<span class="hl-comment">&lt;!-- hi --&gt;</span>`,
		},
		{
			name:     "block comment spans lines",
			code:     "/* one\ntwo */",
			language: "css",
			want:     "<span class=\"hl-comment\">/* one\ntwo */</span>",
		},
		{
			name:     "keywords also match inside comments",
			code:     "const x = 1; // return",
			language: "js",
			want:     `<span class="hl-keyword">const</span> x = 1; <span class="hl-comment">// <span class="hl-keyword">return</span></span>`,
		},
		{
			name:     "language tag is case insensitive",
			code:     "let y",
			language: "JavaScript",
			want:     `<span class="hl-keyword">let</span> y`,
		},
		{
			name:     "keywords need whole words",
			code:     "constant letter",
			language: "javascript",
			want:     "constant letter",
		},
		{
			name:     "no keywords for other languages",
			code:     "return x",
			language: "python",
			want:     "return x",
		},
		{
			name:     "inline script enables keywords",
			code:     "<script>let a = 'b';</script>",
			language: "html",
			want:     `<span class="hl-tag">&lt;script</span>&gt;<span class="hl-keyword">let</span> a = <span class="hl-string">'b'</span>;<span class="hl-tag">&lt;/script</span>&gt;`,
		},
		{
			name:     "css property and value",
			code:     "body { color: red; }",
			language: "css",
			want:     `body { <span class="hl-property">color</span><span class="hl-value">: red;</span> }`,
		},
		{
			name:     "control characters are kept",
			code:     "echo \x1b[0m\x03\x11",
			language: "text",
			want:     "echo \x1b[0m\x03\x11",
		},
		{
			name:     "private-use runes become references",
			code:     "a\uE000b\uE003<c>",
			language: "html",
			want:     `a&#xE000;b&#xE003;<span class="hl-tag">&lt;c</span>&gt;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.code, tt.language))
		})
	}
}

func TestHighlightNeverEmitsRawTags(t *testing.T) {
	code := "<html>\n<head><style>h1 { color: #f00; }</style></head>\n" +
		"<body class=\"main\">\n<!-- greet -->\n<script>const n = \"x\"; // done\n</script>\n</body>\n</html>"

	for _, lang := range []string{"html", "css", "js", "sql", ""} {
		t.Run(lang, func(t *testing.T) {
			out := string(Highlight(code, lang))

			for _, tag := range []string{"<html>", "<head>", "<style>", "<body", "<script>", "<!--"} {
				assert.NotContains(t, out, tag)
			}
			assert.Equal(t, strings.Count(out, "<span"), strings.Count(out, "</span>"))
			assert.NotContains(t, out, `<span <span`)
			for c := rune(markClose); c <= markLast; c++ {
				assert.NotContains(t, out, string(c))
			}
		})
	}
}

func TestRenderCountsLines(t *testing.T) {
	tests := []struct {
		code  string
		lines int
	}{
		{"", 1},
		{"one", 1},
		{"one\ntwo", 2},
		{"one\ntwo\n", 3},
		{"\n\n", 3},
	}

	for _, tt := range tests {
		for _, lang := range []string{"html", "css", "js", "sql", "prompt"} {
			b := Render(tt.code, lang)
			assert.Equal(t, tt.lines, b.Lines, "code %q", tt.code)
			assert.Len(t, b.LineNumbers(), tt.lines)
			assert.Equal(t, tt.lines, strings.Count(string(b.Markup()), `<div class="ln">`))
		}
	}
}

func TestMarkup(t *testing.T) {
	b := Render("<b>hi</b>\nbye", "<html>")
	out := string(b.Markup())

	assert.Contains(t, out, `data-copy-ms="2000"`)
	assert.Contains(t, out, `<span class="code-lang">&lt;html&gt;</span>`)
	assert.Contains(t, out, `<div class="ln">1</div><div class="ln">2</div>`)
	assert.Contains(t, out, `<textarea class="copy-source" hidden>&lt;b&gt;hi&lt;/b&gt;`+"\nbye</textarea>")
	assert.NotContains(t, out, "<b>")
}
