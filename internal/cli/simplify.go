package cli

import (
	"github.com/spf13/cobra"

	"github.com/zxtools/zxviz/pkg/graph"
	"github.com/zxtools/zxviz/pkg/zx/rewrite"
)

// simplifyCommand creates the simplify command for applying rewrites.
func (c *CLI) simplifyCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "simplify [file]",
		Short: "Fuse adjacent same-color spiders and remove identity spiders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			d, err := graph.ReadFile(input)
			if err != nil {
				return err
			}
			before := d.NodeCount()

			prog := newProgress(c.Logger)
			n := rewrite.Simplify(d)
			prog.done("Simplification finished")

			if n == 0 {
				printInfo("Diagram is already fully simplified")
				return nil
			}

			path := output
			if path == "" {
				path = input
			}
			if err := graph.WriteFile(d, path); err != nil {
				return err
			}

			printSuccess("Applied %d rewrites (%d → %d nodes)", n, before, d.NodeCount())
			printFile(path)
			printStats(d.NodeCount(), d.EdgeCount(), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: rewrite input in place)")

	return cmd
}
