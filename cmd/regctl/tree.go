package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/reg"
)

var (
	treeDepth int
	treePost  bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 3, "Maximum depth (0 = just the key itself)")
	cmd.Flags().BoolVar(&treePost, "post", false, "Emit subkeys before their parent")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <path>",
		Short: "Walk a registry subtree",
		Long: `The tree command walks the subtree rooted at a key depth-first and
prints every key it visits, indented by depth.

Example:
  regctl tree "HKCU\Software\Vendor"
  regctl tree "HKLM\SOFTWARE" --depth 2
  regctl tree "HKCU\Software\Vendor" --post`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
}

func runTree(args []string) error {
	key, err := parseKeyArg(args[0])
	if err != nil {
		return err
	}

	r, err := openRegistry()
	if err != nil {
		return err
	}

	order := reg.PreOrder
	if treePost {
		order = reg.PostOrder
	}

	logger.Debug("walking subtree", "key", key.Path(), "depth", treeDepth)
	w, err := r.Walk(key, treeDepth, order)
	if err != nil {
		return err
	}
	defer w.Close()

	base := len(key.Segments())
	var paths []string
	for w.Next() {
		k := w.Key()
		if jsonOut {
			paths = append(paths, k.Path())
			continue
		}
		depth := len(k.Segments()) - base
		printInfo("%*s%s\n", depth*2, "", k.Name())
	}
	if err := w.Err(); err != nil {
		return fmt.Errorf("walk failed: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"path":  key.Path(),
			"keys":  paths,
			"count": len(paths),
		})
	}
	return nil
}
