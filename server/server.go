// Package server serves a generated pressgen site over HTTP. It adds the
// production middleware stack, optional privacy-first analytics with a
// password-protected dashboard, and a development watch mode that rebuilds
// the site and live-reloads connected browsers.
package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pressgen"
	"github.com/eringen/pressgen/analytics"
	"github.com/eringen/pressgen/views"
)

// Server hosts the output directory of a build.
type Server struct {
	Config pressgen.SiteConfig
	Echo   *echo.Echo

	store        *analytics.Store
	loginLimiter *loginLimiter
	hub          *reloadHub
	watcher      *Watcher
	rebuild      func() error
}

// Option configures additional Server behavior.
type Option func(*Server)

// WithWatch rebuilds via fn whenever the input or assets directory changes
// and pushes a live reload to connected browsers.
func WithWatch(fn func() error) Option {
	return func(s *Server) {
		s.rebuild = fn
	}
}

// New creates a Server for the given site configuration.
func New(cfg pressgen.SiteConfig, opts ...Option) *Server {
	s := &Server{
		Config: cfg,
		Echo:   echo.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes analytics, middleware, and routes, then serves until the
// listener fails or the process is terminated.
func (s *Server) Start() error {
	if info, err := os.Stat(s.Config.OutputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("output directory %q does not exist, run a build first", s.Config.OutputDir)
	}

	if s.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(s.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("init analytics: %w", err)
		}
		s.store = store
		stopCleanup := store.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

	if s.statsEnabled() {
		if s.Config.SessionSecret == "" {
			return fmt.Errorf("SessionSecret is required when the stats dashboard is enabled")
		}
		s.loginLimiter = newLoginLimiter(5, time.Minute)
	}

	if s.rebuild != nil {
		s.hub = newReloadHub()
		watcher, err := newWatcher([]string{s.Config.InputDir, s.Config.AssetsDir}, func() {
			if err := s.rebuild(); err != nil {
				s.Echo.Logger.Errorf("rebuild: %v", err)
				return
			}
			s.hub.broadcast()
		})
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		s.watcher = watcher
		defer watcher.Close()
	}

	s.setupMiddleware()
	s.setupRoutes()

	if err := s.Echo.Start(s.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases server resources.
func (s *Server) Close() error {
	if s.store != nil {
		s.store.Close()
	}
	return nil
}

func (s *Server) statsEnabled() bool {
	return s.Config.AnalyticsEnabled && s.Config.StatsPassword != ""
}

func (s *Server) setupRoutes() {
	e := s.Echo

	if s.hub != nil {
		e.GET("/__reload", s.hub.handle)
	}

	if s.statsEnabled() {
		e.GET("/stats/", s.handleStats)
		e.POST("/stats/login/", s.handleStatsLogin)
		e.POST("/stats/logout/", handleStatsLogout)
	}

	// Everything else is the generated site.
	e.GET("/*", s.handleStatic)
}

// handleStatic serves files from the output directory. Directory requests
// fall through to their index.html.
func (s *Server) handleStatic(c echo.Context) error {
	reqPath := c.Request().URL.Path
	name := filepath.Join(s.Config.OutputDir, filepath.Clean("/"+reqPath))

	info, err := os.Stat(name)
	if err == nil && info.IsDir() {
		if !strings.HasSuffix(reqPath, "/") {
			return c.Redirect(http.StatusMovedPermanently, reqPath+"/")
		}
		name = filepath.Join(name, "index.html")
		info, err = os.Stat(name)
	}
	if err != nil || info.IsDir() {
		return s.renderNotFound(c)
	}

	if s.hub != nil && strings.HasSuffix(name, ".html") {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		return c.HTMLBlob(http.StatusOK, injectReloadScript(data))
	}
	return c.File(name)
}

func (s *Server) renderNotFound(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusNotFound)
	return views.NotFound(s.site()).Render(c.Request().Context(), c.Response().Writer)
}

func (s *Server) site() views.Site {
	return views.Site{
		Name:        s.Config.Name,
		URL:         s.Config.URL,
		Description: s.Config.Description,
		Author:      s.Config.Author,
	}
}
