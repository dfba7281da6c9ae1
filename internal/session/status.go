package session

import (
	"fmt"

	"github.com/Davg883/Vibe-AI-Canvas/internal/llm"
)

// Status represents the status of one request lifecycle
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// RequestState is the state of the weave or explain request.
// Error and Kind are only set when Status is StatusFailed.
type RequestState struct {
	Status Status        `json:"status"`
	Error  string        `json:"error,omitempty"`
	Kind   llm.ErrorKind `json:"error_kind,omitempty"`
}

// IsPending returns true while a request is in flight
func (r RequestState) IsPending() bool {
	return r.Status == StatusPending
}

func (r *RequestState) set(status Status) {
	r.Status = status
	r.Error = ""
	r.Kind = ""
}

func (r *RequestState) fail(err error) {
	se := llm.AsServiceError(err)
	r.Status = StatusFailed
	r.Error = se.Message
	r.Kind = se.Kind
}

// View is the selected tab of the reality pane
type View string

const (
	ViewPreview   View = "preview"
	ViewExplainer View = "explainer"
)

// ParseView validates a view name
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewPreview, ViewExplainer:
		return View(s), nil
	}
	return "", fmt.Errorf("unknown view: %q", s)
}
