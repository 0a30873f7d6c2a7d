package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
)

var (
	refreshNiche   string
	refreshTimeout time.Duration
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-verify curated competitor lists",
	Long: `Runs thorough discovery for every catalog niche, or one niche with --niche,
and replaces the stored curated list of each niche that verified at least one store.
A failing niche is reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().StringVarP(&refreshNiche, "niche", "n", "", "refresh a single niche")
	refreshCmd.Flags().DurationVarP(&refreshTimeout, "timeout", "t", 0, "per-niche discovery budget (default from config)")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	niches := nicheKeys
	if refreshNiche != "" {
		niches = []string{refreshNiche}
	}
	if len(niches) == 0 {
		return errors.New("no niches to refresh")
	}

	ctx := commandContext(cmd)
	refreshed := 0
	for _, niche := range niches {
		if ctx.Err() != nil {
			cmd.Printf("  %-20s skipped: %v\n", niche, ctx.Err())
			continue
		}

		start := time.Now()
		result, err := lookupService.Refresh(ctx, niche, refreshTimeout)
		elapsed := time.Since(start).Round(100 * time.Millisecond)
		if err != nil {
			cmd.Printf("  %-20s failed: %v (%s)\n", niche, err, elapsed)
			continue
		}

		refreshed++
		suffix := ""
		if result.TimedOut {
			suffix = ", partial"
		}
		cmd.Printf("  %-20s %d verified (%s%s)\n", niche, len(result.Stores), elapsed, suffix)
	}

	cmd.Printf("Refreshed %d of %d niches\n", refreshed, len(niches))
	return nil
}
