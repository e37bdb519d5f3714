// Package categorize handles transaction categorization commands
package categorize

import (
	"fmt"
	"strings"

	"cardsense/cardsense-india/cmd/root"
	"cardsense/cardsense-india/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [description...]",
	Short: "Categorize transaction descriptions",
	Long: `Categorize transaction descriptions with the keyword rules.
Each argument is one description; its category is printed on its own line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: categorizeFunc,
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	cfg := root.GetConfig()
	if cfg == nil {
		return fmt.Errorf("configuration not initialized")
	}

	cat, err := container.NewCategorizer(cfg, root.Log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, desc := range args {
		desc = strings.TrimSpace(desc)
		if desc == "" {
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", cat.Categorize(desc), desc)
	}
	return nil
}
