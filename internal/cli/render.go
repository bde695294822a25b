package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	input   inputOpts
	frame   int    // 1-based applied step; 0 renders the final state
	format  string // svg or dot
	output  string
	noCache bool
}

// renderCommand creates the render command, which draws one frame of a
// graph algorithm.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{frame: pipeline.LastFrame, format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame of a graph algorithm as SVG or DOT",
		Example: `  stepwise render -a prim -o mst.svg
  stepwise render -a bfs --frame 3 --format dot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), &opts)
		},
	}

	bindInputFlags(cmd, &opts.input)
	cmd.Flags().IntVar(&opts.frame, "frame", opts.frame, "frame to render (number of applied steps, 0 = final)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, w io.Writer, opts *renderOpts) error {
	req, _, err := opts.input.request()
	if err != nil {
		return err
	}
	format := strings.ToLower(opts.format)
	popts := pipeline.Options{
		Request: req,
		Frame:   opts.frame,
		Formats: []string{format},
		Logger:  loggerFromContext(ctx),
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if !popts.Renderable() {
		return errs.New(errs.ErrCodeUnsupported, "%s does not draw a graph", req.Resolve())
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	if err := writeOutput(w, opts.output, res.Artifacts[format]); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}

	if opts.output != "" {
		printSuccess("Rendered %s frame", res.Trace.Algorithm)
		printStats(res.Stats.Steps, res.Stats.RenderTime, res.CacheInfo.RenderHit)
		printFile(opts.output)
	}
	return nil
}
