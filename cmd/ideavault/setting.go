// Setting commands read and write persisted preferences.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

var settingCmd = &cobra.Command{
	Use:   "setting",
	Short: "Manage persisted preferences",
}

var settingGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a preference value",
	Long: `Get prints the stored value for a key. Well-known keys fall back
to their default when never written (autoExportReminder defaults to true).`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingGet,
}

var settingSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a preference value",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingSet,
}

func init() {
	settingCmd.AddCommand(settingGetCmd)
	settingCmd.AddCommand(settingSetCmd)
}

func runSettingGet(cmd *cobra.Command, args []string) error {
	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	value, err := svc.Setting(args[0])
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("setting %s not found", args[0])
		}
		return fmt.Errorf("get setting: %w", err)
	}

	fmt.Println(value)
	return nil
}

func runSettingSet(cmd *cobra.Command, args []string) error {
	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	if err := svc.SetSetting(args[0], args[1]); err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	fmt.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}
