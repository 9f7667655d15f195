package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createExistsOK bool

func init() {
	cmd := newCreateCmd()
	cmd.Flags().BoolVar(&createExistsOK, "exists-ok", false, "Succeed if the key already exists")
	rootCmd.AddCommand(cmd)
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <path>",
		Short: "Create a registry key",
		Long: `The create command creates a new registry key, making intermediate
keys along the way. Without --exists-ok an existing key is an error.

Example:
  regctl create "HKCU\Software\Vendor\App"
  regctl create "HKCU\Software\Vendor\App" --exists-ok`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args)
		},
	}
}

func runCreate(args []string) error {
	key, err := parseKeyArg(args[0])
	if err != nil {
		return err
	}

	r, err := openRegistry()
	if err != nil {
		return err
	}

	logger.Debug("creating key", "key", key.Path())
	if createExistsOK {
		err = r.CreateIfNotExists(key)
	} else {
		err = r.Create(key)
	}
	if err != nil {
		return fmt.Errorf("failed to create key: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"path":    key.Path(),
			"success": true,
		})
	}

	printInfo("Created %s\n", key.Path())
	return nil
}
