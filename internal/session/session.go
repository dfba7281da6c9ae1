package session

import (
	"errors"
	"strings"
	"time"

	"github.com/Davg883/Vibe-AI-Canvas/internal/scribe"
)

var (
	// ErrWeavePending rejects a submission while a weave is in flight.
	ErrWeavePending = errors.New("a vision is already being woven")
	// ErrBlankIdea rejects a submission with only whitespace.
	ErrBlankIdea = errors.New("idea must not be blank")
	// ErrSessionNotFound is returned for unknown or evicted sessions.
	ErrSessionNotFound = errors.New("session not found")
)

// Session is the state of one browser's studio.
//
// Result and Explanation are only set by a succeeded transition, and
// Explanation always belongs to the current Result. Cycle counts accepted
// submissions; completions from an older cycle are ignored. Version counts
// transitions so subscribers can order snapshots.
type Session struct {
	ID          string         `json:"session_id"`
	Idea        string         `json:"idea"`
	Cycle       int            `json:"cycle"`
	Version     uint64         `json:"version"`
	Weave       RequestState   `json:"weave"`
	Explain     RequestState   `json:"explain"`
	Result      *scribe.Result `json:"result,omitempty"`
	Explanation string         `json:"explanation,omitempty"`
	View        View           `json:"view"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	LastSeenAt  time.Time      `json:"-"`
}

// ExplainTicket is issued when an explain request should be started
type ExplainTicket struct {
	Cycle int
	Code  string
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		Weave:      RequestState{Status: StatusIdle},
		Explain:    RequestState{Status: StatusIdle},
		View:       ViewPreview,
		CreatedAt:  now,
		UpdatedAt:  now,
		LastSeenAt: now,
	}
}

// BeginWeave starts a new weave cycle. It is rejected while a weave is
// pending or when idea is blank. The idea is kept as typed.
func (s *Session) BeginWeave(idea string, now time.Time) error {
	if s.Weave.IsPending() {
		return ErrWeavePending
	}
	if strings.TrimSpace(idea) == "" {
		return ErrBlankIdea
	}

	s.Cycle++
	s.Idea = idea
	s.Weave.set(StatusPending)
	s.Result = nil
	s.Explain.set(StatusIdle)
	s.Explanation = ""
	s.View = ViewPreview
	s.touch(now)
	return nil
}

// CompleteWeave settles the pending weave of cycle. It reports false when
// the completion is stale.
func (s *Session) CompleteWeave(cycle int, result *scribe.Result, err error, now time.Time) bool {
	if cycle != s.Cycle || !s.Weave.IsPending() {
		return false
	}

	if err == nil && result == nil {
		err = errors.New("no result")
	}
	if err != nil {
		s.Weave.fail(err)
		s.Result = nil
	} else {
		s.Weave.set(StatusSucceeded)
		s.Result = result
	}
	s.touch(now)
	return true
}

// SelectView switches the reality pane tab. Selecting the explainer after
// a successful weave starts the explain request the first time only; every
// later selection is a no-op for explain, including after a failure.
func (s *Session) SelectView(view View, now time.Time) *ExplainTicket {
	changed := s.View != view
	s.View = view

	var ticket *ExplainTicket
	if view == ViewExplainer && s.Weave.Status == StatusSucceeded && s.Result != nil && s.Explain.Status == StatusIdle {
		s.Explain.set(StatusPending)
		ticket = &ExplainTicket{Cycle: s.Cycle, Code: s.Result.Example.Code}
		changed = true
	}

	if changed {
		s.touch(now)
	}
	return ticket
}

// CompleteExplain settles the pending explain request of cycle. It reports
// false when the completion is stale.
func (s *Session) CompleteExplain(cycle int, text string, err error, now time.Time) bool {
	if cycle != s.Cycle || !s.Explain.IsPending() {
		return false
	}

	if err != nil {
		s.Explain.fail(err)
		s.Explanation = ""
	} else {
		s.Explain.set(StatusSucceeded)
		s.Explanation = text
	}
	s.touch(now)
	return true
}

func (s *Session) touch(now time.Time) {
	s.Version++
	s.UpdatedAt = now
	s.LastSeenAt = now
}
