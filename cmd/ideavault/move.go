// Move command re-buckets an idea.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brennanjay-74/idea-vault/internal/vault"
	"github.com/brennanjay-74/idea-vault/pkg/types"
)

var moveDemoteTo string

var moveCmd = &cobra.Command{
	Use:   "move <idea-id> <bucket>",
	Short: "Move an idea to another bucket",
	Long: `Move changes the idea's bucket (` + validBucketsStr + `).
Moving into the active bucket demotes the current active idea, like
'ideavault activate'.`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func init() {
	moveCmd.Flags().StringVar(&moveDemoteTo, "demote-to", types.BucketParked, "bucket for the previously active idea when moving into active")
}

func runMove(cmd *cobra.Command, args []string) error {
	bucket := args[1]
	if !types.ValidBucket(bucket) {
		return fmt.Errorf("invalid bucket %q (valid: %s)", bucket, validBucketsStr)
	}

	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	idea, err := lookupIdea(svc, args[0])
	if err != nil {
		return err
	}

	idea.Bucket = bucket
	saved, err := svc.SaveIdea(idea, vault.SaveOptions{DemoteTo: moveDemoteTo})
	if err != nil {
		return fmt.Errorf("move idea: %w", err)
	}

	if flagJSON {
		return printJSON(saved)
	}
	fmt.Printf("Moved idea %s to %s\n", saved.IdeaID, saved.Bucket)
	return nil
}
