// Activate command promotes an idea to the single active slot.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brennanjay-74/idea-vault/internal/vault"
	"github.com/brennanjay-74/idea-vault/pkg/types"
)

var activateDemoteTo string

var activateCmd = &cobra.Command{
	Use:   "activate <idea-id>",
	Short: "Make an idea the active project",
	Long: `Activate moves an idea into the active bucket. At most one idea is
active at a time; if another idea currently holds the slot it is demoted
to the bucket named by --demote-to (parked or long_term).

Example:
  ideavault activate 0190cafe
  ideavault activate 0190cafe --demote-to long_term`,
	Args: cobra.ExactArgs(1),
	RunE: runActivate,
}

func init() {
	activateCmd.Flags().StringVar(&activateDemoteTo, "demote-to", types.BucketParked, "bucket for the previously active idea (parked or long_term)")
}

func runActivate(cmd *cobra.Command, args []string) error {
	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	idea, err := lookupIdea(svc, args[0])
	if err != nil {
		return err
	}

	previous, err := svc.ActiveIdea()
	if err != nil {
		return fmt.Errorf("query active idea: %w", err)
	}

	idea.Bucket = types.BucketActive
	saved, err := svc.SaveIdea(idea, vault.SaveOptions{DemoteTo: activateDemoteTo})
	if err != nil {
		if errors.Is(err, types.ErrInvalidBucket) {
			return fmt.Errorf("invalid --demote-to %q (valid: parked, long_term)", activateDemoteTo)
		}
		return fmt.Errorf("activate idea: %w", err)
	}

	if flagJSON {
		return printJSON(saved)
	}
	fmt.Printf("Activated idea: %s\n", saved.IdeaID)
	if previous != nil && previous.IdeaID != saved.IdeaID {
		fmt.Printf("Demoted %s (%q) to %s\n", previous.IdeaID, previous.Title, activateDemoteTo)
	}
	return nil
}
