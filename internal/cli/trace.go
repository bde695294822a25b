package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepwise/pkg/pipeline"
	"github.com/matzehuels/stepwise/pkg/step"
)

// traceOpts holds the flags of the trace command.
type traceOpts struct {
	input   inputOpts
	output  string
	noCache bool
	refresh bool
}

// traceCommand creates the trace command, which records every step of a run
// as JSON.
func (c *CLI) traceCommand() *cobra.Command {
	var opts traceOpts

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Record every step of a run as JSON",
		Example: `  stepwise trace -a dfs --edges-file graph.txt -o dfs.json
  stepwise trace -a horspool --text "HERE IS A SIMPLE EXAMPLE" --pattern EXAMPLE`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrace(cmd.Context(), cmd.OutOrStdout(), &opts)
		},
	}

	bindInputFlags(cmd, &opts.input)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild the trace even when cached")

	return cmd
}

func (c *CLI) runTrace(ctx context.Context, w io.Writer, opts *traceOpts) error {
	req, _, err := opts.input.request()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	// The spinner shares the terminal with stdout; only show it for files.
	var spin *Spinner
	if opts.output != "" {
		spin = newSpinnerWithContext(ctx, "Tracing "+req.Resolve()+"...")
		spin.Start()
	}

	res, err := runner.Execute(ctx, pipeline.Options{Request: req, Refresh: opts.refresh, Logger: loggerFromContext(ctx)})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	out, err := openOutput(w, opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := step.WriteTrace(res.Trace, out); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Traced %s", res.Trace.Algorithm)
		printStats(res.Stats.Steps, res.Stats.TraceTime, res.CacheInfo.TraceHit)
		printFile(opts.output)
		printNewline()
		printNextStep("Render the final frame", "stepwise render -a "+req.Algorithm+" -o frame.svg")
	}
	return nil
}
