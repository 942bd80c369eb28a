// Delete command removes an idea and its images.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <idea-id>",
	Short: "Delete an idea and all of its images",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	idea, err := lookupIdea(svc, args[0])
	if err != nil {
		return err
	}

	if err := svc.DeleteIdea(idea.IdeaID); err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}

	fmt.Printf("Deleted idea %s (%q) and %d image(s)\n", idea.IdeaID, idea.Title, len(idea.ImageIDs))
	return nil
}
