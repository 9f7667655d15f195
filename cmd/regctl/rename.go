package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRenameCmd())
}

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a registry key in place",
		Long: `The rename command gives a registry key a new name under the same
parent. The new name is a single segment, not a path.

Example:
  regctl rename "HKCU\Software\Vendor\App" "AppBackup"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(args)
		},
	}
}

func runRename(args []string) error {
	key, err := parseKeyArg(args[0])
	if err != nil {
		return err
	}
	newName := args[1]

	r, err := openRegistry()
	if err != nil {
		return err
	}

	logger.Debug("renaming key", "key", key.Path(), "to", newName)
	renamed, err := r.Rename(key, newName)
	if err != nil {
		return fmt.Errorf("failed to rename key: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"from":    key.Path(),
			"to":      renamed.Path(),
			"success": true,
		})
	}

	printInfo("Renamed %s -> %s\n", key.Path(), renamed.Path())
	return nil
}
