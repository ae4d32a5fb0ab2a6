package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dhanushperumalla/ai-post-generator/internal/generation"
	"github.com/dhanushperumalla/ai-post-generator/internal/models"
	"github.com/dhanushperumalla/ai-post-generator/internal/storage"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Generator runs one full generation
type Generator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GeneratedContent, error)
}

// Provider reports whether an upstream API has its secret configured
type Provider interface {
	Configured() bool
	Provider() string
}

// ImageProvider is the standalone image endpoint's upstream
type ImageProvider interface {
	Provider
	GenerateImage(ctx context.Context, prompt string) (models.Image, error)
}

// Sharer publishes a saved post somewhere outside the app
type Sharer interface {
	Configured() bool
	SharePost(ctx context.Context, post models.SavedPost) error
}

type Config struct {
	Generator     Generator
	Text          Provider
	Image         ImageProvider
	Sharer        Sharer
	Store         storage.Store
	Guard         *generation.BusyGuard
	Logger        *zap.Logger
	SessionTTL    time.Duration
	SecureCookies bool
}

type Server struct {
	generator     Generator
	text          Provider
	image         ImageProvider
	sharer        Sharer
	store         storage.Store
	guard         *generation.BusyGuard
	logger        *zap.Logger
	sessionTTL    time.Duration
	secureCookies bool
	router        *gin.Engine
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Generator == nil || cfg.Store == nil {
		return nil, errors.New("generator and store are required")
	}
	if cfg.Guard == nil {
		cfg.Guard = generation.NewBusyGuard()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := &Server{
		generator:     cfg.Generator,
		text:          cfg.Text,
		image:         cfg.Image,
		sharer:        cfg.Sharer,
		store:         cfg.Store,
		guard:         cfg.Guard,
		logger:        cfg.Logger,
		sessionTTL:    cfg.SessionTTL,
		secureCookies: cfg.SecureCookies,
	}

	router, err := s.generateRouter()
	if err != nil {
		return nil, err
	}
	s.router = router
	return s, nil
}

func (s *Server) generateRouter() (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.logger))

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api", s.sessionMiddleware())
	api.POST("/generate", s.handleAPIGenerate)
	api.POST("/generate-image", s.handleAPIGenerateImage)

	pages := router.Group("/", s.sessionMiddleware())
	pages.GET("/", s.handleIndex)
	pages.POST("/generate", s.handleGenerate)
	pages.POST("/generated/:field/save", s.handleSaveGenerated)
	pages.POST("/generated/:field/delete", s.handleDeleteGenerated)
	pages.GET("/saved", s.handleSaved)
	pages.POST("/saved/:index/update", s.handleUpdateSaved)
	pages.POST("/saved/:index/delete", s.handleDeleteSaved)
	pages.GET("/saved/:index/download", s.handleDownloadSaved)
	pages.POST("/saved/:index/share", s.handleShareSaved)
	pages.POST("/preferences/theme", s.handleToggleTheme)
	pages.POST("/preferences/sidebar", s.handleToggleSidebar)
	pages.POST("/session/reset", s.handleResetSession)

	return router, nil
}

// Router exposes the handler for tests and for embedding in another server
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("🚀 Server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("🛑 Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := gin.H{"status": "ok", "store": "ok"}, http.StatusOK
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("⚠️ Store health check failed", zap.Error(err))
		status, code = gin.H{"status": "degraded", "store": err.Error()}, http.StatusServiceUnavailable
	}
	if reporter, ok := s.store.(storage.StatsReporter); ok {
		status["stats"] = reporter.Stats()
	}
	c.JSON(code, status)
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("❌ Request failed", fields...)
		case c.Request.URL.Path == "/healthz":
			logger.Debug("Request", fields...)
		default:
			logger.Info("Request", fields...)
		}
	}
}

var templateFuncs = template.FuncMap{
	// imageSrc lets generated data URIs through html/template's URL filter
	"imageSrc": func(uri string) template.URL {
		if strings.HasPrefix(uri, "data:image/") {
			return template.URL(uri)
		}
		return ""
	},
	"inc": func(i int) int { return i + 1 },
}
