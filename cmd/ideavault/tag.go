// Tag commands add and remove normalized tags on an idea.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags on an idea",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <idea-id> <tag>...",
	Short: "Add tags to an idea",
	Long: `Add normalizes each tag (lowercase, whitespace to underscores) and
attaches the ones not already present.

Example:
  ideavault tag add 0190cafe woodworking "Weekend Project"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTagAdd,
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <idea-id> <tag>...",
	Short: "Remove tags from an idea",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTagRm,
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRmCmd)
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	return mutateTags(args[0], args[1:], func(idea *types.Idea, tag string) bool {
		return idea.AddTag(tag)
	})
}

func runTagRm(cmd *cobra.Command, args []string) error {
	return mutateTags(args[0], args[1:], func(idea *types.Idea, tag string) bool {
		return idea.RemoveTag(tag)
	})
}

// mutateTags applies op for each tag and persists the idea when anything
// changed.
func mutateTags(ideaID string, tags []string, op func(*types.Idea, string) bool) error {
	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	idea, err := lookupIdea(svc, ideaID)
	if err != nil {
		return err
	}

	// Per-tag edits coalesce through the debounced save slot.
	changed := false
	for _, t := range tags {
		if op(idea, t) {
			svc.ScheduleSave(idea)
			changed = true
		}
	}
	if !changed {
		fmt.Println("Tags unchanged")
		return nil
	}

	if err := svc.Flush(); err != nil {
		return fmt.Errorf("save idea: %w", err)
	}
	saved, err := svc.Get(idea.IdeaID)
	if err != nil {
		return fmt.Errorf("get idea: %w", err)
	}

	if flagJSON {
		return printJSON(saved)
	}
	fmt.Printf("Tags now: %v\n", saved.Tags)
	return nil
}
