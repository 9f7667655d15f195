package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDeleteValueCmd())
}

func newDeleteValueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-value <path> <name>",
		Short: "Delete a registry value",
		Long: `The delete-value command removes one value from a registry key.
Pass "" as the name to remove the key's default value.

Example:
  regctl delete-value "HKCU\Software\Vendor" "OldSetting"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteValue(args)
		},
	}
}

func runDeleteValue(args []string) error {
	key, err := parseKeyArg(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	r, err := openRegistry()
	if err != nil {
		return err
	}

	logger.Debug("deleting value", "key", key.Path(), "name", name)
	if err := r.DeleteValue(key, name); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"path":    key.Path(),
			"name":    name,
			"success": true,
		})
	}

	printInfo("Deleted %s @ %s\n", displayName(name), key.Path())
	return nil
}
