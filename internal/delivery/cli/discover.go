package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/BeefBowl03/domain-generator/internal/domain"
	"github.com/BeefBowl03/domain-generator/internal/usecase"
)

var (
	discoverFast    bool
	discoverTimeout time.Duration
	discoverJSON    bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover [niche]",
	Short: "Find verified competitors for a niche",
	Long: `Runs competitor discovery for a niche.
Thorough mode probes every candidate and keeps live, relevant, high-ticket stores.
Fast mode returns curated stores without probing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverFast, "fast", false, "skip verification and return curated stores")
	discoverCmd.Flags().DurationVarP(&discoverTimeout, "timeout", "t", 0, "discovery budget (default from config)")
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	niche := strings.Join(args, " ")
	result, err := lookupService.Lookup(commandContext(cmd), usecase.LookupRequest{
		Niche:   niche,
		Fast:    discoverFast,
		Timeout: discoverTimeout,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoCompetitors) {
			cmd.Printf("No verified competitors found for %q - try a different niche.\n", niche)
		}
		return fmt.Errorf("discovery failed: %w", err)
	}

	if discoverJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Competitors for %q (canonical: %s, source: %s)\n", niche, result.Canonical, result.Source)
	if result.Partial {
		cmd.Println("Deadline reached - results are partial.")
	}
	cmd.Println()
	for i, store := range result.Competitors {
		cmd.Printf("  [%d] %s - %s\n", i+1, store.Name, store.URL)
		if store.Description != "" {
			cmd.Printf("      %s\n", store.Description)
		}
	}
	return nil
}
