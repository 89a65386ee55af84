package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/pressgen"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site into the output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site := pressgen.New(siteConfig())
		res, err := site.Build()
		if err != nil {
			return err
		}
		fmt.Printf("Built %d posts (%d files) into %s\n", res.Posts, res.Files, site.Config.OutputDir)
		return nil
	},
}

func init() {
	buildCmd.Flags().Bool("drafts", false, "include posts marked draft: true")
	buildCmd.Flags().String("assets", "", "directory of static assets copied into the output")
	buildCmd.Flags().String("base-url", "", "canonical site URL used in links, the feed, and the sitemap")
	viper.BindPFlag("drafts", buildCmd.Flags().Lookup("drafts"))
	viper.BindPFlag("assets", buildCmd.Flags().Lookup("assets"))
	viper.BindPFlag("url", buildCmd.Flags().Lookup("base-url"))
	rootCmd.AddCommand(buildCmd)
}
