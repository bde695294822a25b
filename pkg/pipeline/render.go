package pipeline

import (
	"context"

	"github.com/matzehuels/stepwise/pkg/algo/prim"
	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/gallery"
	"github.com/matzehuels/stepwise/pkg/render"
	"github.com/matzehuels/stepwise/pkg/step"
)

// RenderOptions returns the drawing options for a graph algorithm. Prim
// works on undirected weighted graphs, the traversals on directed ones.
func RenderOptions(algorithm string) render.Options {
	if algorithm == prim.Algorithm {
		return render.Options{Weighted: true}
	}
	return render.Options{Directed: true}
}

// FramePayload returns the payload after frame applied steps of tr.
// LastFrame and frames past the end select the final step. A trace with no
// steps has no payload.
func FramePayload(tr *step.Trace, frame int) any {
	if tr.Len() == 0 {
		return nil
	}
	if frame == LastFrame || frame > tr.Len() {
		frame = tr.Len()
	}
	return tr.Steps[frame-1].Payload
}

// RenderFrame draws one frame of a graph trace. Non-graph algorithms yield
// ErrCodeUnsupported.
func RenderFrame(ctx context.Context, tr *step.Trace, req gallery.Request, frame int, format string) ([]byte, error) {
	m, ok := gallery.Model(req)
	if !ok {
		return nil, errs.New(errs.ErrCodeUnsupported, "%s has no graph to render", req.Resolve())
	}
	dot := render.ToDOT(m, render.HighlightFrom(FramePayload(tr, frame)), RenderOptions(req.Resolve()))
	if format == FormatDOT {
		return []byte(dot), nil
	}
	return render.RenderSVG(ctx, dot)
}
