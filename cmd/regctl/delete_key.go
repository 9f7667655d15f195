package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteKeyIfExists bool

func init() {
	cmd := newDeleteKeyCmd()
	cmd.Flags().BoolVar(&deleteKeyIfExists, "if-exists", false, "Succeed if the key is already gone")
	rootCmd.AddCommand(cmd)
}

func newDeleteKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-key <path>",
		Short: "Delete an empty registry key",
		Long: `The delete-key command removes one registry key. The key must have
no subkeys; deleting a subtree means deleting leaves first.

Example:
  regctl delete-key "HKCU\Software\Vendor\App"
  regctl delete-key "HKCU\Software\Vendor\App" --if-exists`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteKey(args)
		},
	}
}

func runDeleteKey(args []string) error {
	key, err := parseKeyArg(args[0])
	if err != nil {
		return err
	}

	r, err := openRegistry()
	if err != nil {
		return err
	}

	logger.Debug("deleting key", "key", key.Path())
	if deleteKeyIfExists {
		err = r.DeleteIfExists(key)
	} else {
		err = r.Delete(key)
	}
	if err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"path":    key.Path(),
			"success": true,
		})
	}

	printInfo("Deleted %s\n", key.Path())
	return nil
}
