package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/reg"
)

var exportDepth int

func init() {
	cmd := newExportCmd()
	cmd.Flags().IntVar(&exportDepth, "depth", -1, "Maximum depth (-1 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Dump a subtree with all its values",
		Long: `The export command walks a subtree and prints every key together
with its values, one [bracketed] key header per key.

Example:
  regctl export "HKCU\Software\Vendor"
  regctl export "HKCU\Software\Vendor" --depth 1 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
}

func runExport(args []string) error {
	key, err := parseKeyArg(args[0])
	if err != nil {
		return err
	}

	r, err := openRegistry()
	if err != nil {
		return err
	}

	depth := exportDepth
	if depth < 0 {
		depth = reg.UnlimitedDepth
	}

	logger.Debug("exporting subtree", "key", key.Path())
	w, err := r.Walk(key, depth, reg.PreOrder)
	if err != nil {
		return err
	}
	defer w.Close()

	type keyDump struct {
		Path   string                   `json:"path"`
		Values []map[string]interface{} `json:"values"`
	}
	var dump []keyDump

	for w.Next() {
		k := w.Key()
		vals, err := r.ValueList(k, nil)
		if err != nil {
			return fmt.Errorf("failed to read values of %s: %w", k.Path(), err)
		}

		if jsonOut {
			d := keyDump{Path: k.Path(), Values: []map[string]interface{}{}}
			for _, v := range vals {
				d.Values = append(d.Values, valueJSON(v))
			}
			dump = append(dump, d)
			continue
		}

		printInfo("[%s]\n", k.Path())
		for _, v := range vals {
			printInfo("%q = %s: %s\n", displayName(v.Name), v.Type, formatValue(v))
		}
		printInfo("\n")
	}
	if err := w.Err(); err != nil {
		return fmt.Errorf("walk failed: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"path": key.Path(),
			"keys": dump,
		})
	}
	return nil
}
