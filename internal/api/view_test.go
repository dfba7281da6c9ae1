package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davg883/Vibe-AI-Canvas/internal/llm"
	"github.com/Davg883/Vibe-AI-Canvas/internal/scribe"
	"github.com/Davg883/Vibe-AI-Canvas/internal/session"
)

func tetrisResult() *scribe.Result {
	return &scribe.Result{
		GoalSummary:     "A playable tetris game.",
		GeneratedPrompt: "Build tetris as one HTML file.",
		Example:         scribe.Example{Language: "html", Code: "<canvas></canvas>"},
	}
}

func renderFrame(t *testing.T, s session.Session) Frame {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	f, err := r.Frame(NewPaneState(s))
	require.NoError(t, err)
	return f
}

func TestFrameWeaveFailure(t *testing.T) {
	f := renderFrame(t, session.Session{
		Version: 2,
		Weave:   session.RequestState{Status: session.StatusFailed, Error: "credential missing", Kind: llm.KindCredentialMissing},
		Explain: session.RequestState{Status: session.StatusIdle},
		View:    session.ViewPreview,
	})

	assert.Equal(t, uint64(2), f.Version)
	assert.False(t, f.Busy)
	assert.Contains(t, f.Blueprint, `class="error-box"`)
	assert.Contains(t, f.Blueprint, "credential missing")
	assert.Contains(t, f.Blueprint, "will appear here")
	assert.NotContains(t, f.Reality, "<iframe")
}

func TestFramePending(t *testing.T) {
	f := renderFrame(t, session.Session{
		Weave:   session.RequestState{Status: session.StatusPending},
		Explain: session.RequestState{Status: session.StatusIdle},
		View:    session.ViewPreview,
	})

	assert.True(t, f.Busy)
	assert.Contains(t, f.Blueprint, "Weaving...")
	assert.NotContains(t, f.Blueprint, "will appear here")
}

func TestFrameExplainFailure(t *testing.T) {
	f := renderFrame(t, session.Session{
		Weave:   session.RequestState{Status: session.StatusSucceeded},
		Explain: session.RequestState{Status: session.StatusFailed, Error: "Failed to generate explanation from AI: timeout"},
		Result:  tetrisResult(),
		View:    session.ViewExplainer,
	})

	assert.Contains(t, f.Reality, "Failed to generate explanation from AI: timeout")
	assert.Contains(t, f.Reality, `aria-selected="true">Code Explainer`)
	assert.NotContains(t, f.Blueprint, "error-box")
	assert.Contains(t, f.Blueprint, "A playable tetris game.")
}

func TestFrameEscapesPreview(t *testing.T) {
	s := session.Session{
		Weave:   session.RequestState{Status: session.StatusSucceeded},
		Explain: session.RequestState{Status: session.StatusIdle},
		Result:  tetrisResult(),
		View:    session.ViewPreview,
	}
	s.Result.Example.Code = `<p onclick="alert('x')">hi</p>`

	f := renderFrame(t, s)
	assert.Contains(t, f.Reality, `srcdoc="&lt;p onclick=&#34;alert(&#39;x&#39;)&#34;&gt;hi&lt;/p&gt;"`)
}
