// Export command writes the whole vault to a JSON bundle.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brennanjay-74/idea-vault/internal/bundle"
)

var (
	exportOut    string
	exportImages bool
	exportLimit  int64
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the vault to a JSON bundle",
	Long: `Export writes every idea (and, with --images, every image inlined
as a base64 data URL) to a single JSON file. When the estimated encoded
size of the images exceeds the limit, the export aborts without writing
and suggests an ideas-only export.

Example:
  ideavault export --out backup.json
  ideavault export --out backup.json --images`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "ideavault-export.json", "output file path")
	exportCmd.Flags().BoolVar(&exportImages, "images", false, "inline image payloads into the bundle")
	exportCmd.Flags().Int64Var(&exportLimit, "limit", 0, "max estimated encoded image bytes (default 25 MiB)")
}

func runExport(cmd *cobra.Command, args []string) error {
	backend, _, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	result, err := bundle.Export(backend, exportOut, bundle.ExportOptions{
		IncludeImages: exportImages,
		MaxBytes:      exportLimit,
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if result.TooLarge {
		fmt.Printf("Export too large: estimated %d encoded image bytes exceeds the limit; nothing written.\n", result.EstimatedBytes)
		fmt.Println("Re-run without --images, or use 'ideavault image export' for per-file downloads.")
		return nil
	}

	if flagJSON {
		return printJSON(result)
	}
	fmt.Printf("Exported %d idea(s) and %d image(s) to %s\n", result.IdeaCount, result.ImageCount, exportOut)
	return nil
}
