package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepwise/pkg/gallery"
	"github.com/matzehuels/stepwise/pkg/player"
	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

// runOpts holds the flags of the run command.
type runOpts struct {
	input   inputOpts
	speed   float64 // multiplies the scenario's pace scale
	instant bool
	quiet   bool // print only the result
}

// runCommand creates the run command, which plays an algorithm in the
// terminal.
func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{speed: 1}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play an algorithm step by step in the terminal",
		Example: `  stepwise run -a bfs --source A
  stepwise run -a prim --edges "$(cat graph.txt)" --instant
  stepwise run -a recursion --function toh --n 3
  stepwise run --scenarios examples/gallery.toml --scenario heapsort-default`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRun(cmd.Context(), &opts)
		},
	}

	bindInputFlags(cmd, &opts.input)
	cmd.Flags().Float64Var(&opts.speed, "pace", opts.speed, "pace multiplier (2 = twice as slow, 0.5 = twice as fast)")
	cmd.Flags().BoolVar(&opts.instant, "instant", false, "do not wait between steps")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the result")

	return cmd
}

func (c *CLI) runRun(ctx context.Context, opts *runOpts) error {
	req, pace, err := opts.input.request()
	if err != nil {
		return err
	}
	gen, err := gallery.New(req)
	if err != nil {
		return err
	}

	pacer := player.Suggested(pace * opts.speed)
	if opts.instant || opts.quiet {
		pacer = player.Instant
	}
	p := player.New(player.WithPacer(pacer), player.WithLogger(loggerFromContext(ctx)))

	listing, _ := pseudocode.Lookup(gen.Algorithm())
	if !opts.quiet {
		printTitle(listing.Title)
	}

	prog := newProgress(loggerFromContext(ctx))
	res, err := p.Run(ctx, gen, func(st player.State) {
		if !opts.quiet {
			printStep(*st.Current, listing)
		}
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Played %d steps", p.State().Applied))

	printNewline()
	printSuccess("%s", res.Summary())
	return nil
}

// printStep prints one applied step: sequence, pseudocode line, kind and
// note.
func printStep(s step.Step, listing pseudocode.Listing) {
	line := "   "
	code := ""
	if s.HasLine() {
		line = fmt.Sprintf("L%-2d", s.Line)
		code = strings.TrimSpace(listing.Line(s.Line))
	}
	fmt.Printf("%s %s %s %s\n",
		StyleNumber.Render(fmt.Sprintf("%4d", s.Seq)),
		StyleDim.Render(line),
		StyleHighlight.Render(fmt.Sprintf("%-13s", s.Kind)),
		s.Note)
	if code != "" {
		fmt.Println("                       " + StyleDim.Render(code))
	}
}
