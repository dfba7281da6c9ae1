package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplanation(t *testing.T) {
	out := string(Explanation("**Great question!** The `let` keyword is a *labelled box*.\nSee? Not so scary!"))

	assert.Contains(t, out, "<strong>Great question!</strong>")
	assert.Contains(t, out, "<code>let</code>")
	assert.Contains(t, out, "<em>labelled box</em>")
	assert.Contains(t, out, "<br")
}

func TestExplanationDropsRawHTML(t *testing.T) {
	out := string(Explanation("Hello <script>alert(1)</script> world\n\n<iframe src=\"x\"></iframe>"))

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<iframe")
	assert.Contains(t, out, "Hello")
}

func TestExplanationEmpty(t *testing.T) {
	assert.Empty(t, Explanation(""))
}
