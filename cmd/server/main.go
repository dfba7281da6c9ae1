package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Davg883/Vibe-AI-Canvas/internal/api"
	"github.com/Davg883/Vibe-AI-Canvas/internal/config"
	"github.com/Davg883/Vibe-AI-Canvas/internal/llm"
	"github.com/Davg883/Vibe-AI-Canvas/internal/logging"
	"github.com/Davg883/Vibe-AI-Canvas/internal/scribe"
	"github.com/Davg883/Vibe-AI-Canvas/internal/session"
	"github.com/Davg883/Vibe-AI-Canvas/internal/weaver"
)

var (
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vibe-canvas",
	Short: "Idea-to-reality studio",
	Long: `vibe-canvas serves the VibeAI Canvas studio: describe an idea, get a
generated AI prompt with an example program, preview it live and ask for a
beginner friendly explanation of the code.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "env file to load instead of .env")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging and gin debug mode")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer closeLog()

	if verbose {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting vibe-canvas", zap.String("addr", cfg.Server.Addr()), zap.String("provider", cfg.LLM.Provider))

	// Create LLM client. A missing key is reported to the user on first use.
	llmClient, err := llm.New(ctx, cfg.LLM)
	switch {
	case errors.Is(err, llm.ErrCredentialMissing):
		logger.Warn("no API key for provider, requests will fail", zap.String("provider", cfg.LLM.Provider))
		llmClient = llm.Unavailable(err)
	case err != nil:
		return fmt.Errorf("failed to create LLM client: %w", err)
	default:
		logger.Info("LLM client initialized",
			zap.String("model", llmClient.ModelName()),
			zap.Int("max_concurrent_requests", cfg.LLM.MaxConcurrentRequests))
	}

	// Create session manager
	sessions := session.NewManager(cfg.Session.IdleTTL)
	logger.Info("session manager initialized", zap.Duration("idle_ttl", cfg.Session.IdleTTL))

	// Create weaver
	w := weaver.NewWeaver(scribe.NewClient(llmClient, logger.Named("scribe")), sessions, logger.Named("weaver"))

	// Create SSE manager
	sseManager := api.NewSSEManager()

	renderer, err := api.NewRenderer()
	if err != nil {
		return err
	}

	// Create handler and router
	handler := api.NewHandler(w, sessions, sseManager, renderer, cfg, logger.Named("http"))
	router := api.SetupRouter(handler)

	// WriteTimeout stays unset: event streams are long lived
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in a goroutine
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	// Streams end first so Shutdown does not wait on them
	sseManager.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}

	w.Shutdown()
	sessions.Shutdown()

	logger.Info("server stopped")
	return nil
}
