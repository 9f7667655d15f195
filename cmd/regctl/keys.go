package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newKeysCmd())
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <path>",
		Short: "List direct subkeys of a key",
		Long: `The keys command lists the direct subkeys of a registry key.

Example:
  regctl keys "HKLM\SOFTWARE\Microsoft"
  regctl keys "HKCU\Software" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(args)
		},
	}
}

func runKeys(args []string) error {
	key, err := parseKeyArg(args[0])
	if err != nil {
		return err
	}

	r, err := openRegistry()
	if err != nil {
		return err
	}

	logger.Debug("listing subkeys", "key", key.Path())
	keys, err := r.Subkeys(key)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if jsonOut {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.Name()
		}
		return printJSON(map[string]interface{}{
			"path":  key.Path(),
			"keys":  names,
			"count": len(names),
		})
	}

	printInfo("\nKeys in %s:\n", key.Path())
	for _, k := range keys {
		printInfo("  %s\n", k.Name())
	}
	printInfo("\nTotal: %d keys\n", len(keys))

	return nil
}
