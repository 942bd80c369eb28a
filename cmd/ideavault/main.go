// Package main provides the ideavault CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode maps a command error to the process exit code. Storage-class
// failures (engine cannot be opened, backend detached underneath a command)
// are system errors; everything else is a user error.
func exitCode(err error) int {
	if errors.Is(err, types.ErrStorageUnavailable) || errors.Is(err, types.ErrVaultDetached) {
		return exitSysError
	}
	return exitUserError
}
