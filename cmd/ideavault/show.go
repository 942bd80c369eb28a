// Show command prints one idea in full.
package main

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <idea-id>",
	Short: "Show one idea in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	idea, err := lookupIdea(svc, args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(idea)
	}
	printIdeaDetail(idea)
	return nil
}
