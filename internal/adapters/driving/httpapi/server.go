package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/docvault-labs/docvault-cli/internal/logger"
)

// searchRatePerSecond bounds search queries across all clients.
// Search is the only endpoint whose cost is query-controlled.
const searchRatePerSecond = 10

// Options configures optional server behaviour.
type Options struct {
	// BlobDir, when set, is served read-only under /blobs for logos
	// and avatars.
	BlobDir string
}

// Server is the HTTP API server for DocVault.
type Server struct {
	ports  *Ports
	router *gin.Engine
}

// NewServer creates an HTTP API server with the given ports.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		ports:  ports,
		router: router,
	}
	s.registerRoutes(opts)

	return s, nil
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes(opts Options) {
	api := s.router.Group("/api")
	api.Use(sessionMiddleware(s.ports.Auth))

	auth := api.Group("/auth")
	{
		auth.POST("/signup", s.handleSignup)
		auth.POST("/login", s.handleLogin)
		auth.POST("/logout", s.handleLogout)
		auth.POST("/refresh", s.handleRefresh)
		auth.GET("/me", s.handleMe)
		auth.POST("/reset-request", s.handleResetRequest)
		auth.POST("/reset", s.handleReset)
	}

	projects := api.Group("/projects")
	{
		projects.GET("", s.handleProjectList)
		projects.POST("", s.handleProjectCreate)
		projects.GET("/:slug", s.handleProjectGet)
		projects.PATCH("/:slug", s.handleProjectUpdate)
		projects.POST("/:slug/logo", s.handleProjectSetLogo)

		projects.GET("/:slug/members", s.handleMemberList)
		projects.POST("/:slug/members", s.handleMemberAdd)
		projects.PATCH("/:slug/members/:email", s.handleMemberSetRole)
		projects.DELETE("/:slug/members/:email", s.handleMemberRemove)

		projects.GET("/:slug/pages", s.handlePageTree)
		projects.POST("/:slug/pages", s.handlePageCreate)
		projects.GET("/:slug/pages/*path", s.handlePageGet)

		projects.GET("/:slug/versions", s.handleVersionList)
		projects.POST("/:slug/versions", s.handleVersionCreate)
		projects.GET("/:slug/versions/suggest", s.handleVersionSuggest)
	}

	pages := api.Group("/pages")
	{
		pages.PATCH("/:id", s.handlePageUpdate)
		pages.DELETE("/:id", s.handlePageDelete)
		pages.POST("/:id/move", s.handlePageMove)
	}

	versions := api.Group("/versions")
	{
		versions.GET("/:id", s.handleVersionGet)
		versions.DELETE("/:id", s.handleVersionDelete)
		versions.POST("/:id/publish", s.handleVersionPublish)
		versions.POST("/:id/archive", s.handleVersionArchive)
		versions.POST("/:id/restore", s.handleVersionRestore)
		versions.GET("/:id/snapshots", s.handleVersionSnapshots)
	}

	searchLimiter := rate.NewLimiter(rate.Limit(searchRatePerSecond), searchRatePerSecond)
	api.GET("/search", rateLimitMiddleware(searchLimiter), s.handleSearch)

	api.GET("/roles", s.handleRoles)

	if opts.BlobDir != "" {
		s.router.Static("/blobs", opts.BlobDir)
	}
}

// Run starts the server on addr and blocks until the context is
// cancelled or the listener fails.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("http api listening on %s", addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
