// Review command lists today's updates for the daily-review flow.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List ideas touched today",
	Long: `Review lists every idea updated during the current day, newest
first. Re-bucket anything that needs it with 'ideavault move' or
'ideavault activate'.`,
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	ideas := svc.ReviewToday()

	if flagJSON {
		return printJSON(ideas)
	}
	if len(ideas) == 0 {
		fmt.Println("No ideas touched today")
	} else {
		for _, idea := range ideas {
			printIdeaLine(idea)
		}
	}

	reminder, err := svc.Setting(types.SettingAutoExportReminder)
	if err == nil && reminder == "true" {
		fmt.Println("\nReminder: back up your vault with 'ideavault export'")
	}
	return nil
}
