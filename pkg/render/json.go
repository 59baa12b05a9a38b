package render

import (
	"encoding/json"

	"github.com/matzehuels/holepunch/pkg/paper"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
	folds   []paper.Fold
}

// WithJSONCompact drops indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONFolds records the full fold sequence so a client can replay it.
func WithJSONFolds(folds []paper.Fold) JSONOption {
	return func(r *jsonRenderer) { r.folds = folds }
}

type jsonOutput struct {
	Scene
	Folds []paper.Fold `json:"folds,omitempty"`
}

// RenderJSON serialises the scene. Folds use fold notation.
func RenderJSON(s Scene, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{Scene: s, Folds: r.folds}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
