package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zxtools/zxviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: "svg", "png", "dot", "json"
	simplify bool     // apply rewrites before rendering
	noCache  bool     // bypass the artifact cache
}

// renderCommand creates the render command for generating diagram artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram to SVG, PNG, DOT, or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, c.Config.DefaultFormat)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.simplify, "simplify", false, "apply rewrites before rendering")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// runRender executes the pipeline and writes one file per requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Loading %s", input))
	spinner.Start()

	d, err := runner.Load(ctx, input)
	if err != nil {
		spinner.Stop()
		return err
	}

	rewrites := 0
	if opts.simplify {
		spinner.SetMessage("Applying rewrites")
		rewrites = runner.Simplify(ctx, d)
	}

	spinner.SetMessage(fmt.Sprintf("Rendering %s", strings.Join(opts.formats, ", ")))
	prog := newProgress(c.Logger)
	artifacts, err := runner.Render(ctx, d, pipeline.Options{
		Formats:  opts.formats,
		CacheTTL: c.cacheTTL(),
		Logger:   c.Logger,
	})
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render failed: %v", err))
		if spinner.Cancelled() {
			return ctx.Err()
		}
		return err
	}
	spinner.Stop()
	if rewrites > 0 {
		printInfo("Applied %d rewrites", rewrites)
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(artifacts)))

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Generated %d file(s)", len(opts.formats))
	printStats(d.NodeCount(), d.EdgeCount(), false)
	return nil
}

// cacheTTL converts the configured TTL to a duration, zero meaning the
// pipeline default.
func (c *CLI) cacheTTL() time.Duration {
	return time.Duration(c.Config.Cache.TTLDays) * 24 * time.Hour
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output has a
// format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
