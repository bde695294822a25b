package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/stepwise/pkg/gallery"
	"github.com/matzehuels/stepwise/pkg/player"
)

// inputOpts holds the flags that describe what to run. Unset flags fall back
// to the algorithm's default input.
type inputOpts struct {
	algorithm string
	edges     string
	edgesFile string
	source    string
	array     string
	text      string
	pattern   string
	function  string
	n, a, b   int
	from      string
	to        string
	aux       string

	scenarios string // TOML scenario file
	scenario  string // scenario name within the file

	flags *pflag.FlagSet
}

// bindInputFlags registers the input flags on cmd.
func bindInputFlags(cmd *cobra.Command, opts *inputOpts) {
	f := cmd.Flags()
	f.StringVarP(&opts.algorithm, "algorithm", "a", "", "algorithm name (see 'stepwise algorithms'), or 'recursion' with --function")
	f.StringVar(&opts.edges, "edges", "", `edge list, one "source target [weight]" per line`)
	f.StringVar(&opts.edgesFile, "edges-file", "", "read the edge list from a file")
	f.StringVarP(&opts.source, "source", "s", "", "start node for graph algorithms")
	f.StringVar(&opts.array, "array", "", "whitespace-separated numbers for heap algorithms")
	f.StringVar(&opts.text, "text", "", "text to search (horspool)")
	f.StringVar(&opts.pattern, "pattern", "", "pattern to find (horspool)")
	f.StringVar(&opts.function, "function", "", "recursive function: fibonacci, factorial, gcd, toh")
	f.IntVar(&opts.n, "n", 0, "argument n (fibonacci, factorial, toh)")
	f.IntVar(&opts.a, "gcd-a", 0, "first gcd argument")
	f.IntVar(&opts.b, "gcd-b", 0, "second gcd argument")
	f.StringVar(&opts.from, "from", "", "source peg (toh)")
	f.StringVar(&opts.to, "to", "", "target peg (toh)")
	f.StringVar(&opts.aux, "aux", "", "spare peg (toh)")
	f.StringVar(&opts.scenarios, "scenarios", "", "TOML scenario file")
	f.StringVar(&opts.scenario, "scenario", "", "scenario name in --scenarios")
	opts.flags = f
}

// request resolves the flags into a gallery request and its pace scale.
// A scenario supplies the base request; explicit flags override it.
func (o *inputOpts) request() (gallery.Request, float64, error) {
	pace := player.DefaultPaceScale
	var req gallery.Request

	switch {
	case o.scenario != "":
		if o.scenarios == "" {
			return req, 0, fmt.Errorf("--scenario requires --scenarios")
		}
		scs, err := gallery.LoadScenarios(o.scenarios)
		if err != nil {
			return req, 0, err
		}
		sc, err := gallery.FindScenario(scs, o.scenario)
		if err != nil {
			return req, 0, err
		}
		req = sc.Request
		if sc.PaceScale > 0 {
			pace = sc.PaceScale
		}
	default:
		name := o.algorithm
		if name == "" {
			return req, 0, fmt.Errorf("--algorithm or --scenario is required")
		}
		if name == gallery.Recursion && o.function != "" {
			name = o.function
		}
		def, err := gallery.DefaultRequest(name)
		if err != nil {
			return req, 0, err
		}
		req = def
	}

	if o.changed("edges-file") {
		data, err := os.ReadFile(o.edgesFile)
		if err != nil {
			return req, 0, fmt.Errorf("read edges: %w", err)
		}
		req.Edges = string(data)
	}
	override(o, "edges", &req.Edges, o.edges)
	override(o, "source", &req.Source, o.source)
	override(o, "array", &req.Array, o.array)
	override(o, "text", &req.Text, o.text)
	override(o, "pattern", &req.Pattern, o.pattern)
	override(o, "from", &req.From, o.from)
	override(o, "to", &req.To, o.to)
	override(o, "aux", &req.Aux, o.aux)
	override(o, "n", &req.N, o.n)
	override(o, "gcd-a", &req.A, o.a)
	override(o, "gcd-b", &req.B, o.b)
	return req, pace, nil
}

func (o *inputOpts) changed(name string) bool {
	return o.flags != nil && o.flags.Changed(name)
}

func override[T any](o *inputOpts, name string, dst *T, v T) {
	if o.changed(name) {
		*dst = v
	}
}
