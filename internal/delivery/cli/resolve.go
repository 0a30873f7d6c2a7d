package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [niche]",
	Short: "Show how a niche maps onto the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	res, variations := lookupService.Resolve(strings.Join(args, " "))

	cmd.Printf("Input:      %s\n", res.Input)
	cmd.Printf("Normalized: %s\n", res.Normalized)
	cmd.Printf("Canonical:  %s (%s)\n", res.Canonical, res.Strategy)
	cmd.Printf("Variations: %s\n", strings.Join(variations, ", "))
	return nil
}
