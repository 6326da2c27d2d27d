// Package scoring defines the contract for obtaining predictions from the
// remote model serving endpoint.
package scoring

import (
	"context"
)

// Request is a single-row ordered record derived from a validated feature
// mapping. Column i of Columns corresponds positionally to Rows[0][i]; the
// remote model does not use names to disambiguate columns once serialized.
type Request struct {
	Columns []string
	Index   []int
	Rows    [][]float64
}

// NewRequest builds the one-row Request for a prediction call.
func NewRequest(columns []string, row []float64) Request {
	return Request{
		Columns: columns,
		Index:   []int{0},
		Rows:    [][]float64{row},
	}
}

// Response is the serving endpoint's decoded JSON document. It is not
// validated beyond being valid JSON; Prediction extracts the useful part.
type Response struct {
	Document any
}

// Prediction returns the result value the caller cares about: the first
// element of a "predictions" sequence when the document has one, otherwise
// the whole document. Different model flavors return different shapes.
func (r Response) Prediction() any {
	doc, ok := r.Document.(map[string]any)
	if !ok {
		return r.Document
	}
	preds, ok := doc["predictions"].([]any)
	if !ok || len(preds) == 0 {
		return r.Document
	}
	return preds[0]
}

// Scorer performs one scoring call against the remote endpoint. The call
// honors ctx and the implementation's configured timeout; it is attempted
// exactly once, with no retries and no caching.
type Scorer interface {
	Score(ctx context.Context, req Request) (Response, error)
}
