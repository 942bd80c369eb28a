// Import command merges a JSON bundle back into the vault.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brennanjay-74/idea-vault/internal/bundle"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON bundle into the vault",
	Long: `Import merges the bundle's ideas and images into the vault by ID;
imported records win. After the merge the single-active rule is repaired:
if more than one idea ends up active, the most recently updated one keeps
the slot and the rest are parked.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	backend, _, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	result, err := bundle.Import(backend, args[0])
	if err != nil {
		if errors.Is(err, bundle.ErrInvalidFormat) {
			return fmt.Errorf("invalid bundle: %w", err)
		}
		return fmt.Errorf("import: %w", err)
	}

	if flagJSON {
		return printJSON(result)
	}
	fmt.Printf("Imported %d idea(s), %d image(s)", result.IdeasImported, result.ImagesImported)
	if result.ImagesSkipped > 0 {
		fmt.Printf(", skipped %d image(s)", result.ImagesSkipped)
	}
	if result.ActiveDemoted > 0 {
		fmt.Printf(", parked %d extra active idea(s)", result.ActiveDemoted)
	}
	fmt.Println()
	return nil
}
