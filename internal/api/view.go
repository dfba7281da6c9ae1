package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/Davg883/Vibe-AI-Canvas/internal/highlight"
	"github.com/Davg883/Vibe-AI-Canvas/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PaneState is what the page shows for one session snapshot
type PaneState struct {
	Version     uint64
	Idea        string
	Busy        bool
	View        session.View
	Weave       session.RequestState
	Explain     session.RequestState
	HasResult   bool
	GoalSummary string
	Prompt      template.HTML
	Example     template.HTML
	Preview     string
	Explanation template.HTML
}

// NewPaneState builds the view model of a snapshot. Code listings and the
// explanation are rendered here so templates only place markup.
func NewPaneState(s session.Session) PaneState {
	state := PaneState{
		Version: s.Version,
		Idea:    s.Idea,
		Busy:    s.Weave.IsPending(),
		View:    s.View,
		Weave:   s.Weave,
		Explain: s.Explain,
	}

	if s.Result != nil {
		state.HasResult = true
		state.GoalSummary = s.Result.GoalSummary
		state.Prompt = highlight.Render(s.Result.GeneratedPrompt, "prompt").Markup()
		state.Example = highlight.Render(s.Result.Example.Code, s.Result.Example.Language).Markup()
		state.Preview = s.Result.Example.Code
	}
	if s.Explanation != "" {
		state.Explanation = highlight.Explanation(s.Explanation)
	}

	return state
}

// Frame is the payload of a "state" event: the panes that change with the
// session, rendered to HTML.
type Frame struct {
	Version   uint64 `json:"version"`
	Busy      bool   `json:"busy"`
	View      string `json:"view"`
	Blueprint string `json:"blueprint"`
	Reality   string `json:"reality"`
}

// Renderer executes the embedded page templates
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Template returns the parsed templates for gin's HTML renderer
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}

// Frame renders the blueprint and reality panes of state
func (r *Renderer) Frame(state PaneState) (Frame, error) {
	blueprint, err := r.fragment("blueprint", state)
	if err != nil {
		return Frame{}, err
	}
	reality, err := r.fragment("reality", state)
	if err != nil {
		return Frame{}, err
	}

	return Frame{
		Version:   state.Version,
		Busy:      state.Busy,
		View:      string(state.View),
		Blueprint: blueprint,
		Reality:   reality,
	}, nil
}

func (r *Renderer) fragment(name string, state PaneState) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, state); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
