package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorlayout/pkg/pipeline"
)

type graphOpts struct {
	output   string
	format   string
	detailed bool
	cycles   bool
}

// graphCommand creates the graph command, which exports the frame
// dependency graph for debugging anchor chains.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Export the frame dependency graph (dot, mermaid, svg)",
		Example: `  anchorlayout graph ui.yaml
  anchorlayout graph ui.yaml --format svg -o deps.svg --cycles`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDeclaration,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			set, _, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			gopts := pipeline.GraphOptions{Format: opts.format, Detailed: opts.detailed}
			if opts.cycles {
				gopts.Highlight = pipeline.Cycles(set)
				if len(gopts.Highlight) > 0 {
					printWarning("%d frames in dependency cycles", len(gopts.Highlight))
				}
			}

			var spin *Spinner
			if gopts.Format == pipeline.FormatSVG {
				spin = newSpinner(ctx, os.Stderr, "Rendering SVG...")
				spin.Start()
			}
			data, _, err := runner.Graph(ctx, set, gopts)
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return err
			}
			if opts.output == "" {
				_, err = c.Out.Write(data)
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			printSuccess("Wrote %s graph", gopts.Format)
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatDOT, "graph format: dot, mermaid, svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with their dependency depth")
	cmd.Flags().BoolVar(&opts.cycles, "cycles", false, "highlight frames in dependency cycles")

	return cmd
}
