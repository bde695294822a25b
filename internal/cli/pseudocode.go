package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

// pseudocodeCommand prints the listing of one algorithm.
func (c *CLI) pseudocodeCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:       "pseudocode <algorithm>",
		Short:     "Print the pseudocode of an algorithm",
		Args:      cobra.ExactArgs(1),
		ValidArgs: pseudocode.Algorithms(),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, ok := pseudocode.Lookup(args[0])
			if !ok {
				return errs.New(errs.ErrCodeInvalidAlgorithm, "unknown algorithm %q", args[0])
			}
			return printListing(cmd.OutOrStdout(), l, step.Kind(kind))
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "mark the line highlighted by this step kind")
	return cmd
}

// printListing writes the numbered listing; the line of kind, if any, gets
// an arrow.
func printListing(w io.Writer, l pseudocode.Listing, kind step.Kind) error {
	active := step.NoLine
	if kind != "" {
		active = l.LineOf(kind)
		if active == step.NoLine {
			kinds := make([]string, 0, len(l.Kinds))
			for k := range l.Kinds {
				kinds = append(kinds, string(k))
			}
			slices.Sort(kinds)
			return errs.New(errs.ErrCodeInvalidInput, "%s has no line for step kind %q (known: %v)", l.Algorithm, kind, kinds)
		}
	}

	fmt.Fprintln(w, StyleTitle.Render(l.Title))
	for i, text := range l.Lines {
		marker := "  "
		if i == active {
			marker = StyleHighlight.Render("▸ ")
		}
		fmt.Fprintf(w, "%s%s  %s\n", marker, StyleDim.Render(fmt.Sprintf("%2d", i)), text)
	}
	return nil
}
