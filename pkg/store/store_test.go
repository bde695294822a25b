package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/stepwise/pkg/gallery"
	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

func newTrace(t *testing.T, id, algorithm string, at time.Time) *step.Trace {
	t.Helper()
	req, err := gallery.DefaultRequest(algorithm)
	if err != nil {
		t.Fatal(err)
	}
	gen, err := gallery.New(req)
	if err != nil {
		t.Fatal(err)
	}
	tr := step.Collect(gen, pseudocode.MustLookup(algorithm).Lines)
	tr.ID = id
	tr.Input = req
	tr.CreatedAt = at
	return tr
}

// exerciseStore runs the behavior every Store must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	traces := []*step.Trace{
		newTrace(t, "t1", "bfs", base),
		newTrace(t, "t2", "prim", base.Add(time.Minute)),
		newTrace(t, "t3", "bfs", base.Add(2*time.Minute)),
	}
	for _, tr := range traces {
		if err := s.SaveTrace(ctx, tr); err != nil {
			t.Fatalf("SaveTrace(%s): %v", tr.ID, err)
		}
	}

	got, err := s.GetTrace(ctx, "t2")
	if err != nil {
		t.Fatalf("GetTrace: %v", err)
	}
	if got.Algorithm != "prim" || got.Len() != traces[1].Len() || got.Summary != traces[1].Summary {
		t.Errorf("GetTrace = %s/%d/%q", got.Algorithm, got.Len(), got.Summary)
	}
	if len(got.Pseudocode) == 0 {
		t.Error("pseudocode lost")
	}

	if _, err := s.GetTrace(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTrace(missing) = %v, want ErrNotFound", err)
	}

	all, err := s.ListTraces(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != "t3" || all[2].ID != "t1" {
		t.Errorf("ListTraces order = %+v", all)
	}

	bfsOnly, err := s.ListTraces(ctx, "bfs", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(bfsOnly) != 1 || bfsOnly[0].ID != "t3" || bfsOnly[0].Steps != traces[2].Len() {
		t.Errorf("ListTraces(bfs, 1) = %+v", bfsOnly)
	}

	// Saving the same ID again replaces the trace.
	replaced := newTrace(t, "t1", "dfs", base.Add(3*time.Minute))
	if err := s.SaveTrace(ctx, replaced); err != nil {
		t.Fatal(err)
	}
	got, err = s.GetTrace(ctx, "t1")
	if err != nil || got.Algorithm != "dfs" {
		t.Errorf("replaced trace = %v, %v", got, err)
	}

	if err := s.SaveTrace(ctx, &step.Trace{}); err == nil {
		t.Error("trace without id should be rejected")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close(context.Background())
	exerciseStore(t, s)
}

func TestMemoryStoreDecodedPayloads(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.SaveTrace(ctx, newTrace(t, "x", "bfs", time.Now())); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetTrace(ctx, "x")
	if err != nil {
		t.Fatal(err)
	}
	last, ok := got.Last()
	if !ok {
		t.Fatal("no steps")
	}
	if _, ok := last.Payload.(map[string]any); !ok {
		t.Errorf("payload type = %T, want map[string]any", last.Payload)
	}
}

func TestToDoc(t *testing.T) {
	tr := newTrace(t, "doc", "horspool", time.Now().UTC())
	doc, err := toDoc(tr)
	if err != nil {
		t.Fatal(err)
	}
	if doc.ID != "doc" || doc.Algorithm != "horspool" || doc.Steps != tr.Len() || len(doc.Data) == 0 {
		t.Errorf("toDoc = %+v", doc.TraceInfo)
	}
	back, err := step.UnmarshalTrace(doc.Data)
	if err != nil || back.Summary != tr.Summary {
		t.Errorf("doc data round trip = %v, %v", back, err)
	}
	if _, err := toDoc(nil); err == nil {
		t.Error("nil trace should fail")
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("STEPWISE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("STEPWISE_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := "stepwise_test_" + time.Now().Format("20060102150405")
	s, err := NewMongoStore(ctx, uri, db)
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer func() {
		_ = s.client.Database(db).Drop(ctx)
		_ = s.Close(ctx)
	}()
	exerciseStore(t, s)
}
