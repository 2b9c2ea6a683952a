package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorlayout/pkg/pipeline"
	"github.com/matzehuels/anchorlayout/pkg/snapshot"
)

// Output formats of the resolve command.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

type resolveOpts struct {
	layout layoutFlags
	output string // output file path
	format string // table, json, yaml
	save   bool   // persist the snapshot in the store
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "resolve [file]",
		Short: "Resolve a frame declaration file to absolute geometry",
		Long: `Resolve reads frame declarations (JSON, YAML or TOML) and prints the absolute
rectangle of every frame. Dependency cycles, unknown anchor targets and
runaway recursion are reported as diagnostics; they never abort the run.`,
		Example: `  anchorlayout resolve ui.yaml
  anchorlayout resolve ui.json --policy clamp --width 1920 --height 1080
  anchorlayout resolve ui.toml --format json -o snapshot.json --save`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDeclaration,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, args[0], &opts)
		},
	}

	opts.layout.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the snapshot to a file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", outputTable, "output format: table, json, yaml")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store the snapshot for later inspection")

	return cmd
}

func (c *CLI) runResolve(cmd *cobra.Command, path string, opts *resolveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	switch opts.format {
	case outputTable, outputJSON, outputYAML:
	default:
		return fmt.Errorf("invalid format %q (want table, json or yaml)", opts.format)
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	snap, hit, err := c.resolveFile(ctx, cmd, runner, path, &opts.layout)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d frames", len(snap.Frames)))
	logDiagnostics(logger, snap.Diagnostics)

	if opts.save {
		if err := c.saveSnapshot(ctx, snap); err != nil {
			return err
		}
	}

	data, err := encodeSnapshot(snap, opts.format, hit)
	if err != nil {
		return err
	}
	if opts.output != "" {
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
		printSuccess("Wrote snapshot")
		printFile(opts.output)
		return nil
	}
	_, err = c.Out.Write(data)
	return err
}

// resolveFile loads path and resolves it with the flag and config options.
func (c *CLI) resolveFile(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner, path string, lf *layoutFlags) (*snapshot.Snapshot, bool, error) {
	set, doc, err := runner.Load(ctx, path)
	if err != nil {
		return nil, false, err
	}
	lopts, err := lf.options(c, cmd, doc)
	if err != nil {
		return nil, false, err
	}
	return runner.Resolve(ctx, set, pipeline.Options{Layout: lopts, Refresh: lf.refresh})
}

func (c *CLI) saveSnapshot(ctx context.Context, snap *snapshot.Snapshot) error {
	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Put(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	printSuccess("Saved snapshot %s", snap.ID)
	return nil
}

// encodeSnapshot renders snap in the requested output format.
func encodeSnapshot(snap *snapshot.Snapshot, format string, cached bool) ([]byte, error) {
	switch format {
	case outputJSON:
		data, err := snapshot.Marshal(snap)
		return append(data, '\n'), err
	case outputYAML:
		return yaml.Marshal(snap)
	}
	var buf bytes.Buffer
	writeSummary(&buf, snap, cached)
	for _, d := range snap.Diagnostics {
		fmt.Fprintln(&buf, "  "+StyleWarning.Render(iconWarning+" "+d.String()))
	}
	return buf.Bytes(), nil
}
