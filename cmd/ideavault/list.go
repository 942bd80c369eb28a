// List command shows ideas with filter, search, and sort.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brennanjay-74/idea-vault/internal/vault"
	"github.com/brennanjay-74/idea-vault/pkg/types"
)

var (
	listBucket string
	listTag    string
	listSearch string
	listSort   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ideas",
	Long: `List shows ideas, optionally filtered by bucket, tag, or a search
query over title, description, notes, and tags.

Example:
  ideavault list
  ideavault list --bucket sparks --sort priority
  ideavault list --search birdhouse --json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listBucket, "bucket", "", "restrict to one bucket ("+validBucketsStr+")")
	listCmd.Flags().StringVar(&listTag, "tag", "", "restrict to ideas carrying a tag")
	listCmd.Flags().StringVar(&listSearch, "search", "", "case-insensitive search query")
	listCmd.Flags().StringVar(&listSort, "sort", vault.SortByUpdated, "sort key (updated, created, title, priority)")
}

func runList(cmd *cobra.Command, args []string) error {
	if listBucket != "" && !types.ValidBucket(listBucket) {
		return fmt.Errorf("invalid bucket %q (valid: %s)", listBucket, validBucketsStr)
	}

	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	var ideas []*types.Idea
	switch {
	case listSearch != "":
		ideas = svc.Search(listSearch)
	case listTag != "":
		ideas = svc.FilterByTag(listTag)
	default:
		ideas = svc.Ideas("")
	}

	if listBucket != "" {
		filtered := ideas[:0]
		for _, idea := range ideas {
			if idea.Bucket == listBucket {
				filtered = append(filtered, idea)
			}
		}
		ideas = filtered
	}

	vault.SortIdeas(ideas, listSort)

	if flagJSON {
		return printJSON(ideas)
	}
	if len(ideas) == 0 {
		fmt.Println("No ideas found")
		return nil
	}
	for _, idea := range ideas {
		printIdeaLine(idea)
	}
	return nil
}
