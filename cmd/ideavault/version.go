package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brennanjay-74/idea-vault/pkg/ideavault"
)

const modulePath = "github.com/brennanjay-74/idea-vault"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ideavault version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "ideavault v%s\nmodule: %s\n", ideavault.Version, modulePath)
		return nil
	},
}
