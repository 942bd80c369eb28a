// Add command creates a new idea.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brennanjay-74/idea-vault/internal/vault"
	"github.com/brennanjay-74/idea-vault/pkg/types"
)

var (
	addTitle       string
	addDescription string
	addNotes       string
	addBucket      string
	addPriority    string
	addStatus      string
	addNextAction  string
	addTags        []string
	addLinks       []string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new idea",
	Long: `Add creates a new idea with the specified title.

The idea lands in the parked bucket with medium priority by default.

Example:
  ideavault add --title "Build a birdhouse"
  ideavault add --title "Learn woodworking" --bucket long_term --tag hobby
  ideavault add --title "Weekend hack" --link "repo=https://example.com" --json`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "title for the idea (required)")
	addCmd.Flags().StringVar(&addDescription, "desc", "", "free-text description")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "free-text notes")
	addCmd.Flags().StringVar(&addBucket, "bucket", "", "bucket ("+validBucketsStr+"; default parked)")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "priority (low, medium, high; default medium)")
	addCmd.Flags().StringVar(&addStatus, "status", "", "free-text status (default draft)")
	addCmd.Flags().StringVar(&addNextAction, "next", "", "next action")
	addCmd.Flags().StringArrayVar(&addTags, "tag", nil, "tag to attach (repeatable)")
	addCmd.Flags().StringArrayVar(&addLinks, "link", nil, "label=url link to attach (repeatable)")
	_ = addCmd.MarkFlagRequired("title")
}

func runAdd(cmd *cobra.Command, args []string) error {
	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	idea := types.NewIdea()
	idea.Title = addTitle
	idea.Description = addDescription
	idea.Notes = addNotes
	idea.Status = firstNonEmpty(addStatus, idea.Status)
	idea.NextAction = addNextAction

	if addBucket != "" {
		if !types.ValidBucket(addBucket) {
			return fmt.Errorf("invalid bucket %q (valid: %s)", addBucket, validBucketsStr)
		}
		idea.Bucket = addBucket
	}
	if addPriority != "" {
		if !types.ValidPriority(addPriority) {
			return fmt.Errorf("invalid priority %q (valid: low, medium, high)", addPriority)
		}
		idea.Priority = addPriority
	}
	for _, t := range addTags {
		idea.AddTag(t)
	}
	for _, l := range addLinks {
		link, err := parseLinkFlag(l)
		if err != nil {
			return err
		}
		idea.Links = append(idea.Links, link)
	}

	saved, err := svc.SaveIdea(idea, vault.SaveOptions{})
	if err != nil {
		if errors.Is(err, types.ErrActiveConflict) {
			return fmt.Errorf("another idea is already active; use 'ideavault activate' with --demote-to after adding")
		}
		return fmt.Errorf("create idea: %w", err)
	}

	if flagJSON {
		return printJSON(saved)
	}
	fmt.Printf("Created idea: %s\n", saved.IdeaID)
	return nil
}

// firstNonEmpty returns a if non-empty, otherwise b.
func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
