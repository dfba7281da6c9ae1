package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Davg883/Vibe-AI-Canvas/internal/session"
)

// heartbeatInterval keeps idle streams open through proxies
const heartbeatInterval = 30 * time.Second

// SSEClient represents an SSE client connection
type SSEClient struct {
	SessionID string
	Channel   chan session.Session
}

// SSEManager fans session snapshots out to the streams of that session
type SSEManager struct {
	clients    map[string][]*SSEClient
	register   chan *SSEClient
	unregister chan *SSEClient
	broadcast  chan session.Session
	done       chan struct{}
	stopped    chan struct{}
}

// NewSSEManager creates a new SSE manager
func NewSSEManager() *SSEManager {
	manager := &SSEManager{
		clients:    make(map[string][]*SSEClient),
		register:   make(chan *SSEClient),
		unregister: make(chan *SSEClient),
		broadcast:  make(chan session.Session),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}

	go manager.run()
	return manager
}

// run starts the SSE manager event loop
func (m *SSEManager) run() {
	defer close(m.stopped)

	for {
		select {
		case <-m.done:
			return

		case client := <-m.register:
			m.clients[client.SessionID] = append(m.clients[client.SessionID], client)

		case client := <-m.unregister:
			if clients, ok := m.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						m.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(c.Channel)
						break
					}
				}

				if len(m.clients[client.SessionID]) == 0 {
					delete(m.clients, client.SessionID)
				}
			}

		case snapshot := <-m.broadcast:
			for _, client := range m.clients[snapshot.ID] {
				select {
				case client.Channel <- snapshot:
				default:
					// Client channel is full, skip. Versions let the
					// browser resync from the next push.
				}
			}
		}
	}
}

// Register registers a new SSE client for a session
func (m *SSEManager) Register(sessionID string) *SSEClient {
	client := &SSEClient{
		SessionID: sessionID,
		Channel:   make(chan session.Session, 10),
	}
	select {
	case m.register <- client:
	case <-m.done:
	}
	return client
}

// Unregister unregisters an SSE client
func (m *SSEManager) Unregister(client *SSEClient) {
	select {
	case m.unregister <- client:
	case <-m.done:
	}
}

// Broadcast sends a snapshot to every stream of its session
func (m *SSEManager) Broadcast(snapshot session.Session) {
	select {
	case m.broadcast <- snapshot:
	case <-m.done:
	}
}

// Done is closed when the manager shuts down
func (m *SSEManager) Done() <-chan struct{} {
	return m.done
}

// Shutdown stops the event loop. Open streams end on their next select.
func (m *SSEManager) Shutdown() {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
	<-m.stopped
}

// HandleSSE streams "state" events for the caller's session until the
// client goes away or the server shuts down.
func (h *Handler) HandleSSE(c *gin.Context) {
	sessionID := c.GetString(sessionKey)

	if _, err := h.sessions.GetSession(sessionID); err != nil {
		ErrorResponse(c, http.StatusNotFound, "Session not found")
		return
	}

	// Set headers for SSE
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// Register before the initial snapshot so no transition is missed
	client := h.sse.Register(sessionID)
	defer h.sse.Unregister(client)

	// An open stream keeps its session alive
	release, err := h.sessions.Hold(sessionID)
	if err != nil {
		return
	}
	defer release()

	s, err := h.sessions.GetSession(sessionID)
	if err != nil {
		return
	}
	if !h.sendState(c, s) {
		return
	}

	clientGone := c.Request.Context().Done()
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-clientGone:
			return

		case <-h.sse.Done():
			return

		case snapshot, ok := <-client.Channel:
			if !ok || !h.sendState(c, snapshot) {
				return
			}

		case <-ticker.C:
			_ = h.sessions.Touch(sessionID)
			fmt.Fprintf(c.Writer, ": heartbeat\n\n")
			c.Writer.Flush()
		}
	}
}

// sendState renders a snapshot and writes it as a "state" event
func (h *Handler) sendState(c *gin.Context, s session.Session) bool {
	frame, err := h.renderer.Frame(NewPaneState(s))
	if err != nil {
		h.logger.Error("failed to render state", zap.String("session_id", s.ID), zap.Error(err))
		return false
	}

	c.SSEvent("state", frame)
	c.Writer.Flush()
	return true
}
