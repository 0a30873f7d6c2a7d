// Package cli implements the scout command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/BeefBowl03/domain-generator/internal/usecase"
)

var (
	lookupService *usecase.LookupService
	nicheKeys     []string
)

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Find verified competitor stores for a niche",
	Long: `scout resolves a free-text niche to a catalog category and finds live,
relevant, high-ticket competitor stores for it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Configure wires the services the commands run against.
// keys lists the niches refreshed when refresh is run without --niche.
func Configure(svc *usecase.LookupService, keys []string) {
	lookupService = svc
	nicheKeys = keys
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
