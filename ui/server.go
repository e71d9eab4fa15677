package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"resultdesk/app"
	"resultdesk/domain/result"
	"resultdesk/internal"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "resultdesk_session"

// Dependencies are the services and settings the web server needs
type Dependencies struct {
	Ingestion      *app.IngestionService
	Lookup         *app.LookupService
	Summaries      *app.SummaryService
	Gate           *app.AdminGate
	Classes        []result.ClassLabel
	MaxUploadBytes int64
	SessionSecret  string
	Logger         *internal.Logger
}

// Server represents the web server for the result desk
type Server struct {
	router    *gin.Engine
	templates *template.Template
	assets    fs.FS
	deps      Dependencies
	logger    *internal.Logger
}

// NewServer builds the router. assets must contain templates/*.html and static/*.
func NewServer(deps Dependencies, assets fs.FS) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = internal.DefaultLogger
	}
	if deps.Ingestion == nil || deps.Lookup == nil || deps.Summaries == nil || deps.Gate == nil {
		return nil, fmt.Errorf("ui server requires ingestion, lookup, summary and admin services")
	}

	s := &Server{
		router: gin.New(),
		assets: assets,
		deps:   deps,
		logger: deps.Logger.With("Server"),
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// Handler exposes the router for http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger(), gin.Recovery())

	store := cookie.NewStore([]byte(s.deps.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   8 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.router.Use(sessions.Sessions(sessionName, store))

	staticFS, err := fs.Sub(s.assets, "static")
	if err != nil {
		s.logger.Error("Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/results", s.handleMarksheetPage)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/results", s.handleLookup)

	admin := api.Group("/admin")
	admin.POST("/login", s.handleLogin)
	admin.POST("/logout", s.handleLogout)
	admin.GET("/session", s.handleSession)

	protected := admin.Group("", s.requireAdmin())
	protected.POST("/upload", s.handleUpload)
	protected.GET("/classes", s.handleClasses)
	protected.GET("/uploads", s.handleUploads)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
