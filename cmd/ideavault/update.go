// Update command edits fields of an existing idea.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	updTitle       string
	updDescription string
	updNotes       string
	updPriority    string
	updStatus      string
	updNextAction  string
)

var updateCmd = &cobra.Command{
	Use:   "update <idea-id>",
	Short: "Edit fields of an idea",
	Long: `Update changes only the fields whose flags were provided. Every
edit refreshes the idea's last-update timestamp. Bucket moves go through
'ideavault move' or 'ideavault activate'.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updDescription, "desc", "", "new description")
	updateCmd.Flags().StringVar(&updNotes, "notes", "", "new notes")
	updateCmd.Flags().StringVar(&updPriority, "priority", "", "new priority (low, medium, high)")
	updateCmd.Flags().StringVar(&updStatus, "status", "", "new status")
	updateCmd.Flags().StringVar(&updNextAction, "next", "", "new next action")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	idea, err := lookupIdea(svc, args[0])
	if err != nil {
		return err
	}

	// Each field edit schedules a debounced write; the edits coalesce into a
	// single save, flushed before exit.
	changed := false
	flags := cmd.Flags()
	if flags.Changed("title") {
		idea.Title = updTitle
		svc.ScheduleSave(idea)
		changed = true
	}
	if flags.Changed("desc") {
		idea.Description = updDescription
		svc.ScheduleSave(idea)
		changed = true
	}
	if flags.Changed("notes") {
		idea.Notes = updNotes
		svc.ScheduleSave(idea)
		changed = true
	}
	if flags.Changed("priority") {
		if err := idea.SetPriority(updPriority); err != nil {
			return fmt.Errorf("invalid priority %q: %w", updPriority, err)
		}
		svc.ScheduleSave(idea)
		changed = true
	}
	if flags.Changed("status") {
		idea.Status = updStatus
		svc.ScheduleSave(idea)
		changed = true
	}
	if flags.Changed("next") {
		idea.NextAction = updNextAction
		svc.ScheduleSave(idea)
		changed = true
	}

	if !changed {
		fmt.Println("Nothing to update")
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
	fmt.Printf("Updated idea: %s\n", saved.IdeaID)
	return nil
}
