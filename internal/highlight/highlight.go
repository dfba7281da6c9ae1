// Package highlight renders generated code and explanations for display.
//
// Code highlighting is a fixed sequence of regular-expression passes over
// HTML-escaped source. Each pass sees the output of the previous one, so a
// later pass may wrap text that already sits inside an earlier span. Spans are
// tracked with private-use marker runes while the passes run and only turned
// into markup at the end, which keeps passes from matching the markup itself.
package highlight

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

type kind byte

const (
	kindComment kind = iota
	kindTag
	kindAttr
	kindString
	kindProperty
	kindValue
	kindKeyword
	numKinds
)

var classNames = [numKinds]string{
	kindComment:  "hl-comment",
	kindTag:      "hl-tag",
	kindAttr:     "hl-attr",
	kindString:   "hl-string",
	kindProperty: "hl-property",
	kindValue:    "hl-value",
	kindKeyword:  "hl-keyword",
}

// Span markers are private-use runes. Input runes in that block are
// written as character references before the passes run, so every marker
// in the working text was placed by a pass.
const (
	markClose = '\uE000'
	markOpen  = '\uE001'
	markLast  = markOpen + rune(numKinds) - 1
)

func open(k kind) string { return string(markOpen + rune(k)) }

// Keywords highlighted for JavaScript and inline scripts.
var Keywords = []string{
	"const", "let", "var", "function", "return", "if", "else", "for", "while",
	"switch", "case", "break", "new", "import", "export", "default", "from",
	"async", "await", "try", "catch", "class",
}

// noMark excludes span markers so a match never straddles a span boundary.
var noMark = fmt.Sprintf(`\x{%X}-\x{%X}`, markClose, markLast)

type pass struct {
	re   *regexp.Regexp
	repl string
}

func wrap(k kind, pattern string) pass {
	return pass{re: regexp.MustCompile(pattern), repl: open(k) + "${1}" + string(markClose)}
}

var (
	commentPasses = []pass{
		wrap(kindComment, `(&lt;!--[^`+noMark+`]*?--&gt;)`),
		wrap(kindComment, `(/\*[^`+noMark+`]*?\*/)`),
		wrap(kindComment, `(//[^\n`+noMark+`]*)`),
	}
	tagPass  = wrap(kindTag, `(&lt;/?[\w:-]+)`)
	attrPass = pass{
		re:   regexp.MustCompile(`([\w:-]+)=`),
		repl: open(kindAttr) + "${1}" + string(markClose) + "=",
	}
	stringPasses = []pass{
		wrap(kindString, `("[^"\n`+noMark+`]*")`),
		wrap(kindString, `('[^'\n`+noMark+`]*')`),
	}
	cssPasses = []pass{
		{
			re:   regexp.MustCompile(`([\w-]+)(\s*):`),
			repl: open(kindProperty) + "${1}" + string(markClose) + "${2}:",
		},
		wrap(kindValue, `(:\s*[\w\s#()%-.]+;)`),
	}
	keywordPass = wrap(kindKeyword, `\b(`+strings.Join(Keywords, "|")+`)\b`)
)

var escaper = newEscaper()

// newEscaper escapes the three HTML-significant characters and writes
// input runes that collide with the span markers as character references.
func newEscaper() *strings.Replacer {
	pairs := []string{"&", "&amp;", "<", "&lt;", ">", "&gt;"}
	for r := markClose; r <= markLast; r++ {
		pairs = append(pairs, string(r), fmt.Sprintf("&#x%X;", r))
	}
	return strings.NewReplacer(pairs...)
}

var unmarker = newUnmarker()

func newUnmarker() *strings.Replacer {
	pairs := []string{string(markClose), "</span>"}
	for k := kind(0); k < numKinds; k++ {
		pairs = append(pairs, open(k), `<span class="`+classNames[k]+`">`)
	}
	return strings.NewReplacer(pairs...)
}

// Highlight returns the escaped code with highlighting spans. Unknown
// languages only get the comment, tag, attribute and string passes.
func Highlight(code, language string) template.HTML {
	if code == "" {
		return ""
	}

	out := escaper.Replace(code)
	out = apply(out, commentPasses...)
	out = apply(out, tagPass, attrPass)
	out = apply(out, stringPasses...)

	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "css" || (lang == "html" && strings.Contains(code, "<style>")) {
		out = apply(out, cssPasses...)
	}
	if lang == "javascript" || lang == "js" || (lang == "html" && strings.Contains(code, "<script>")) {
		out = apply(out, keywordPass)
	}

	return template.HTML(unmarker.Replace(out))
}

func apply(s string, passes ...pass) string {
	for _, p := range passes {
		s = p.re.ReplaceAllString(s, p.repl)
	}
	return s
}
