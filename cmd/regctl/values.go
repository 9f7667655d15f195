package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/types"
)

var valuesType string

func init() {
	cmd := newValuesCmd()
	cmd.Flags().StringVar(&valuesType, "type", "", "Only show values of this type (sz, dword, ...)")
	rootCmd.AddCommand(cmd)
}

func newValuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "values <path>",
		Short: "List the values of a key",
		Long: `The values command lists every value stored under a registry key.

Example:
  regctl values "HKCU\Environment"
  regctl values "HKLM\SOFTWARE\Vendor" --type dword
  regctl values "HKCU\Environment" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(args)
		},
	}
}

func runValues(args []string) error {
	key, err := parseKeyArg(args[0])
	if err != nil {
		return err
	}

	var filter *types.Filter
	if valuesType != "" {
		t, err := types.ParseRegType(valuesType)
		if err != nil {
			return err
		}
		filter = &types.Filter{Types: []types.RegType{t}}
	}

	r, err := openRegistry()
	if err != nil {
		return err
	}

	logger.Debug("listing values", "key", key.Path())
	vals, err := r.ValueList(key, filter)
	if err != nil {
		return fmt.Errorf("failed to list values: %w", err)
	}

	if jsonOut {
		out := make([]map[string]interface{}, len(vals))
		for i, v := range vals {
			out[i] = valueJSON(v)
		}
		return printJSON(map[string]interface{}{
			"path":   key.Path(),
			"values": out,
			"count":  len(out),
		})
	}

	printInfo("\nValues in %s:\n", key.Path())
	for _, v := range vals {
		printInfo("  %-24s %-12s %s\n", displayName(v.Name), v.Type, formatValue(v))
	}
	printInfo("\nTotal: %d values\n", len(vals))

	return nil
}

// displayName renders the default value's empty name the way regedit does.
func displayName(name string) string {
	if name == "" {
		return "(Default)"
	}
	return name
}

// formatValue renders a value's payload for text output.
func formatValue(v types.Value) string {
	switch v.Type {
	case types.REG_SZ:
		return v.Str
	case types.REG_MULTI_SZ:
		return strings.Join(v.Strs, "; ")
	case types.REG_DWORD:
		return fmt.Sprintf("%d (0x%08x)", v.Dword, v.Dword)
	case types.REG_QWORD:
		return fmt.Sprintf("%d (0x%016x)", v.Qword, v.Qword)
	default:
		return hex.EncodeToString(v.Data)
	}
}

// valueJSON projects a value for JSON output, with a payload field matching
// the value's type.
func valueJSON(v types.Value) map[string]interface{} {
	out := map[string]interface{}{
		"name": v.Name,
		"type": v.Type.String(),
	}
	switch v.Type {
	case types.REG_SZ:
		out["data"] = v.Str
	case types.REG_MULTI_SZ:
		out["data"] = v.Strs
	case types.REG_DWORD:
		out["data"] = v.Dword
	case types.REG_QWORD:
		out["data"] = v.Qword
	default:
		out["data"] = hex.EncodeToString(v.Data)
	}
	return out
}
