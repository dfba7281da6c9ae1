package weaver

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Davg883/Vibe-AI-Canvas/internal/prompt"
	"github.com/Davg883/Vibe-AI-Canvas/internal/scribe"
	"github.com/Davg883/Vibe-AI-Canvas/internal/session"
)

// ErrStopped is returned for work submitted after Shutdown
var ErrStopped = errors.New("weaver is shutting down")

// Completer makes the structured and explain completion calls
type Completer interface {
	RequestStructured(ctx context.Context, weavePrompt string) (*scribe.Result, error)
	RequestExplanation(ctx context.Context, code string) (string, error)
}

// Weaver runs weave and explain cycles against the session manager
type Weaver struct {
	completer Completer
	sessions  *session.Manager
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	wg     sync.WaitGroup
}

// NewWeaver creates a new weaver
func NewWeaver(completer Completer, sessions *session.Manager, logger *zap.Logger) *Weaver {
	ctx, cancel := context.WithCancel(context.Background())
	return &Weaver{
		completer: completer,
		sessions:  sessions,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Submit starts a weave cycle for the session and returns its number.
// Rejections (blank idea, weave already pending) are returned as is and
// leave the session untouched.
func (w *Weaver) Submit(sessionID, idea string) (int, error) {
	cycle, err := w.sessions.BeginWeave(sessionID, idea)
	if err != nil {
		return 0, err
	}

	log := w.logger.With(zap.String("session_id", sessionID), zap.Int("cycle", cycle))
	if !w.spawn(func(ctx context.Context) {
		w.weave(ctx, log, sessionID, cycle, idea)
	}) {
		w.complete(log, w.sessions.CompleteWeave(sessionID, cycle, nil, ErrStopped))
		return 0, ErrStopped
	}

	log.Info("weave started", zap.Int("idea_len", len(idea)))
	return cycle, nil
}

// SelectView switches the session's view. It reports whether an explain
// request was started by this call.
func (w *Weaver) SelectView(sessionID string, view session.View) (bool, error) {
	ticket, err := w.sessions.SelectView(sessionID, view)
	if err != nil || ticket == nil {
		return false, err
	}

	log := w.logger.With(zap.String("session_id", sessionID), zap.Int("cycle", ticket.Cycle))
	if !w.spawn(func(ctx context.Context) {
		w.explain(ctx, log, sessionID, *ticket)
	}) {
		w.complete(log, w.sessions.CompleteExplain(sessionID, ticket.Cycle, "", ErrStopped))
		return false, ErrStopped
	}

	log.Info("explain started", zap.Int("code_len", len(ticket.Code)))
	return true, nil
}

func (w *Weaver) weave(ctx context.Context, log *zap.Logger, sessionID string, cycle int, idea string) {
	result, err := w.completer.RequestStructured(ctx, prompt.Weave(idea))
	if err != nil {
		log.Warn("weave failed", zap.Error(err))
	} else {
		log.Info("weave succeeded", zap.String("language", result.Example.Language))
	}
	w.complete(log, w.sessions.CompleteWeave(sessionID, cycle, result, err))
}

func (w *Weaver) explain(ctx context.Context, log *zap.Logger, sessionID string, ticket session.ExplainTicket) {
	text, err := w.completer.RequestExplanation(ctx, ticket.Code)
	if err != nil {
		log.Warn("explain failed", zap.Error(err))
	} else {
		log.Info("explain succeeded", zap.Int("text_len", len(text)))
	}
	w.complete(log, w.sessions.CompleteExplain(sessionID, ticket.Cycle, text, err))
}

// complete logs a completion that could not be recorded. A session evicted
// or closed while its request was in flight is not an error for the caller.
func (w *Weaver) complete(log *zap.Logger, err error) {
	if err != nil {
		log.Debug("completion dropped", zap.Error(err))
	}
}

// spawn runs fn in a tracked goroutine unless the weaver is stopped
func (w *Weaver) spawn(fn func(ctx context.Context)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ctx.Err() != nil {
		return false
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		fn(w.ctx)
	}()
	return true
}

// Wait blocks until all in-flight requests have completed
func (w *Weaver) Wait() {
	w.wg.Wait()
}

// Shutdown cancels in-flight requests and waits for them to settle
func (w *Weaver) Shutdown() {
	w.mu.Lock()
	w.cancel()
	w.mu.Unlock()

	w.wg.Wait()
}
