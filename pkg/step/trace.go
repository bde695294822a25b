package step

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Trace is a complete, serializable record of one run.
//
// When a trace is decoded from JSON, payloads and the result become generic
// maps; the typed values are only available on traces built by [Collect].
type Trace struct {
	ID         string    `json:"id" bson:"_id"`
	Algorithm  string    `json:"algorithm" bson:"algorithm"`
	Input      any       `json:"input,omitempty" bson:"input,omitempty"`
	Pseudocode []string  `json:"pseudocode,omitempty" bson:"pseudocode,omitempty"`
	Steps      []Step    `json:"steps" bson:"steps"`
	Result     any       `json:"result,omitempty" bson:"result,omitempty"`
	Summary    string    `json:"summary" bson:"summary"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Collect runs gen to completion and records the steps and the result.
// pseudocode is stored verbatim and may be nil.
func Collect(gen Generator, pseudocode []string) *Trace {
	steps := Drain(gen.Steps())
	if steps == nil {
		steps = []Step{}
	}
	res := gen.Result()
	t := &Trace{
		Algorithm:  gen.Algorithm(),
		Pseudocode: pseudocode,
		Steps:      steps,
		Result:     res,
		CreatedAt:  time.Now().UTC(),
	}
	if res != nil {
		t.Summary = res.Summary()
	}
	return t
}

// Len returns the number of steps.
func (t *Trace) Len() int { return len(t.Steps) }

// Last returns the final step, if any.
func (t *Trace) Last() (Step, bool) {
	if len(t.Steps) == 0 {
		return Step{}, false
	}
	return t.Steps[len(t.Steps)-1], true
}

// MarshalTrace encodes a trace as indented JSON.
func MarshalTrace(t *Trace) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTrace(t, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTrace writes a trace as indented JSON.
func WriteTrace(t *Trace, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	return nil
}

// UnmarshalTrace decodes a JSON trace.
func UnmarshalTrace(data []byte) (*Trace, error) {
	var t Trace
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	return &t, nil
}
