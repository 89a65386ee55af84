package pressgen

// SiteConfig holds all configuration for a pressgen site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	InputDir  string // Directory of Markdown posts (default "content")
	OutputDir string // Directory for generated HTML (default "public")
	AssetsDir string // Optional directory of static assets copied into the output

	IncludeDrafts bool // Publish posts marked draft: true

	Addr         string // Listen address for the serve command (default ":3000")
	CookieSecure bool   // Set true when serving over HTTPS

	AnalyticsEnabled      bool   // Record page views while serving
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")
	StatsPassword         string // Password for the /stats/ dashboard
	SessionSecret         string // Session encryption secret for the dashboard login
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.InputDir == "" {
		c.InputDir = "content"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
}

// Option configures additional Site behavior.
type Option func(*Site)

// WithDrafts includes posts marked draft: true in the build.
func WithDrafts() Option {
	return func(s *Site) {
		s.Config.IncludeDrafts = true
	}
}

// WithAssetsDir sets the directory of static assets copied into the output.
func WithAssetsDir(dir string) Option {
	return func(s *Site) {
		s.Config.AssetsDir = dir
	}
}
