package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path> <name>",
		Short: "Get a specific registry value",
		Long: `The get command retrieves and displays one value from a registry key.
Pass "" as the name to read the key's default value.

Example:
  regctl get "HKCU\Environment" "TEMP"
  regctl get "HKLM\SOFTWARE\Vendor" "Version" --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
}

func runGet(args []string) error {
	key, err := parseKeyArg(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	r, err := openRegistry()
	if err != nil {
		return err
	}

	logger.Debug("reading value", "key", key.Path(), "name", name)
	v, err := r.GetValue(key, name)
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}

	if jsonOut {
		out := valueJSON(v)
		out["path"] = key.Path()
		return printJSON(out)
	}

	printInfo("%s\n", formatValue(v))
	return nil
}
