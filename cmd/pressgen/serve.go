package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/pressgen"
	"github.com/eringen/pressgen/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated site over HTTP",
	Long: `Serve hosts the output directory with gzip, security headers, and
pretty URLs. With --watch it also rebuilds the site when the input or
assets directory changes and live-reloads connected browsers.

Analytics and the /stats/ dashboard are enabled through the config
file or PRESSGEN_ANALYTICS_ENABLED, PRESSGEN_STATS_PASSWORD, and
PRESSGEN_SESSION_SECRET.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := siteConfig()
		watch, _ := cmd.Flags().GetBool("watch")

		var opts []server.Option
		if watch {
			rebuild := func() error {
				res, err := pressgen.New(cfg).Build()
				if err != nil {
					return err
				}
				fmt.Printf("Rebuilt %d posts (%d files)\n", res.Posts, res.Files)
				return nil
			}
			// Build once up front so there is something to serve.
			if err := rebuild(); err != nil {
				return err
			}
			opts = append(opts, server.WithWatch(rebuild))
		}

		srv := server.New(cfg, opts...)
		defer srv.Close()
		fmt.Printf("Serving %s on %s\n", cfg.OutputDir, cfg.Addr)
		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address")
	serveCmd.Flags().Bool("watch", false, "rebuild on change and live-reload browsers")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}
