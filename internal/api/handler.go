package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Davg883/Vibe-AI-Canvas/internal/config"
	"github.com/Davg883/Vibe-AI-Canvas/internal/session"
	"github.com/Davg883/Vibe-AI-Canvas/internal/weaver"
)

// Handler handles HTTP requests
type Handler struct {
	weaver   *weaver.Weaver
	sessions *session.Manager
	sse      *SSEManager
	renderer *Renderer
	cfg      *config.Config
	logger   *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(w *weaver.Weaver, sessions *session.Manager, sse *SSEManager, renderer *Renderer, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		weaver:   w,
		sessions: sessions,
		sse:      sse,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
	}
}

// WeaveRequest represents a weave request
type WeaveRequest struct {
	Idea string `json:"idea"`
}

// WeaveResponse represents an accepted weave request
type WeaveResponse struct {
	Cycle  int    `json:"cycle"`
	Status string `json:"status"`
}

// ViewRequest represents a tab switch
type ViewRequest struct {
	View string `json:"view" binding:"required"`
}

// ViewResponse represents the result of a tab switch
type ViewResponse struct {
	View           session.View `json:"view"`
	ExplainStarted bool         `json:"explain_started"`
}

// HandleIndex renders the studio page for the caller's session
func (h *Handler) HandleIndex(c *gin.Context) {
	s, err := h.sessions.GetSession(c.GetString(sessionKey))
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "Session not found")
		return
	}

	c.HTML(http.StatusOK, "index.html", NewPaneState(s))
}

// HandleWeave handles the weave request
func (h *Handler) HandleWeave(c *gin.Context) {
	var req WeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cycle, err := h.weaver.Submit(c.GetString(sessionKey), req.Idea)
	if err != nil {
		h.submitError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, WeaveResponse{
		Cycle:  cycle,
		Status: string(session.StatusPending),
	})
}

func (h *Handler) submitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrBlankIdea):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrWeavePending):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrSessionNotFound):
		ErrorResponse(c, http.StatusNotFound, "Session not found")
	case errors.Is(err, weaver.ErrStopped):
		ErrorResponse(c, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("weave submission failed", zap.Error(err))
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// HandleView handles a switch between the preview and explainer tabs
func (h *Handler) HandleView(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := session.ParseView(req.View)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	started, err := h.weaver.SelectView(c.GetString(sessionKey), view)
	if err != nil {
		h.submitError(c, err)
		return
	}

	c.JSON(http.StatusOK, ViewResponse{View: view, ExplainStarted: started})
}

// HandleGetSession returns the caller's session snapshot
func (h *Handler) HandleGetSession(c *gin.Context) {
	s, err := h.sessions.GetSession(c.GetString(sessionKey))
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "Session not found")
		return
	}

	c.JSON(http.StatusOK, s)
}

// HandleHealth handles health check
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "vibe-canvas",
		"sessions": h.sessions.Len(),
	})
}

// SetupRouter sets up the Gin router
func SetupRouter(handler *Handler) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(handler.logger), Recovery(handler.logger))
	r.Use(CORS(handler.cfg.Server.AllowedOrigins))

	r.SetHTMLTemplate(handler.renderer.Template())
	r.StaticFS("/static", staticFiles())

	// Health check
	r.GET("/health", handler.HandleHealth)

	studio := r.Group("/", handler.sessionMiddleware)
	{
		studio.GET("/", handler.HandleIndex)
	}

	// API routes
	api := r.Group("/api/v1", handler.sessionMiddleware)
	{
		api.POST("/weave", handler.HandleWeave)
		api.POST("/view", handler.HandleView)
		api.GET("/session", handler.HandleGetSession)
		api.GET("/events", handler.HandleSSE)
	}

	return r
}

// ErrorResponse writes a JSON error body
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}
