package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/pressgen/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a traffic summary from the analytics database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := siteConfig()
		days, _ := cmd.Flags().GetInt("days")

		store, err := analytics.NewStore(cfg.AnalyticsDatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		to := time.Now()
		sum, err := store.Summarize(to.AddDate(0, 0, -days), to, 20)
		if err != nil {
			return err
		}

		fmt.Printf("Last %d days: %d visits, %d unique visitors\n", days, sum.TotalVisits, sum.UniqueVisitors)
		if len(sum.TopPages) > 0 {
			fmt.Println("\nTop pages:")
			for _, p := range sum.TopPages {
				fmt.Printf("  %6d  %s\n", p.Count, p.Path)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("days", 30, "number of days to summarize")
	rootCmd.AddCommand(statsCmd)
}
