package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// dotCommand creates the dot command for exporting Graphviz DOT text.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		output   string
		simplify bool
	)

	cmd := &cobra.Command{
		Use:   "dot [file]",
		Short: "Export a diagram as Graphviz DOT text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			d, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			if simplify {
				runner.Simplify(ctx, d)
			}

			dot := d.ToDOT()
			if output == "" {
				fmt.Print(dot)
				return nil
			}

			if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Exported DOT")
			printFile(output)
			printStats(d.NodeCount(), d.EdgeCount(), false)
			printNextStep("Render it", fmt.Sprintf("zxviz render %s", args[0]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&simplify, "simplify", false, "apply rewrites before exporting")

	return cmd
}
