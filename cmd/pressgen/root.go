package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/pressgen"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pressgen",
	Short: "A static blog generator built with Go, goldmark, and templ",
	Long: `Pressgen turns a directory of Markdown posts with YAML front-matter
into a complete static site: one HTML page per post, a date-ordered
index, an RSS feed, and a sitemap. Re-running a build on the same
input produces byte-identical output.

Quick Start:
  pressgen new myblog             Scaffold a new site
  pressgen build                  Render the site into the output directory
  pressgen serve --watch          Serve locally with rebuild on change

Configuration is read from pressgen.yml in the current directory,
PRESSGEN_* environment variables, and command-line flags, in rising
order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is pressgen.yml, can also use PRESSGEN_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("input", "", "directory of Markdown posts")
	rootCmd.PersistentFlags().String("output", "", "directory for generated HTML")
	viper.BindPFlag("input", rootCmd.PersistentFlags().Lookup("input"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

// initConfig wires up viper. Flags win over environment variables, which win
// over the config file. A missing config file is not an error.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PRESSGEN_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("pressgen")
	}

	viper.SetEnvPrefix("PRESSGEN")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetDefault("name", "Blog")
	viper.SetDefault("url", "http://localhost:3000")
	viper.SetDefault("input", "content")
	viper.SetDefault("output", "public")
	viper.SetDefault("addr", ":3000")
	viper.SetDefault("analytics.database", "data/analytics.db")

	_ = viper.ReadInConfig()
}

// siteConfig assembles the pipeline configuration from all viper sources.
func siteConfig() pressgen.SiteConfig {
	return pressgen.SiteConfig{
		Name:        viper.GetString("name"),
		URL:         viper.GetString("url"),
		Description: viper.GetString("description"),
		Author:      viper.GetString("author"),

		InputDir:  viper.GetString("input"),
		OutputDir: viper.GetString("output"),
		AssetsDir: viper.GetString("assets"),

		IncludeDrafts: viper.GetBool("drafts"),

		Addr:         viper.GetString("addr"),
		CookieSecure: viper.GetBool("cookie-secure"),

		AnalyticsEnabled:      viper.GetBool("analytics.enabled"),
		AnalyticsDatabasePath: viper.GetString("analytics.database"),
		StatsPassword:         viper.GetString("stats-password"),
		SessionSecret:         viper.GetString("session-secret"),
	}
}
