// Package classifier defines the train(event-stream)/score(feature-vector)
// contract ParseState and TrainState drive (spec.md §2 item 7, §5): a
// Context is the sparse predicate vector feature extraction produces, an
// Event pairs one with the gold Action taken from it, and Model is the
// interface any trainable scorer (a maxent or averaged-perceptron
// implementation) must satisfy. Grounded on the teacher's
// alg/perceptron/types.go Model/Instance contract and alg/featurevector's
// sparse feature id convention.
package classifier

import "github.com/desr-go/depparse/action"

// Context is a sparse feature vector: the feature ids a Vocab resolved
// the extractor's predicate strings to for one parser configuration
// (spec.md §4.4, §4.5). Order is insignificant; duplicates are kept, and
// Trivial's Score and Train count each occurrence. feature.Extractor.Next is
// what builds one from raw predicate strings.
type Context []int

// Event pairs a Context with the action the oracle chose from it,
// spec.md §5's unit of supervised training data.
type Event struct {
	Action   action.Action
	Features Context
}

// Model is anything that can score a Context against every action it has
// been trained on and be updated incrementally — the interface
// TrainState's output feeds and ParseState's decoding consults, mirroring
// the shape of the teacher's perceptron.Model.
type Model interface {
	// Score returns a score per candidate action for ctx; map iteration
	// order is unspecified, so callers sort.
	Score(ctx Context) map[action.Action]float64

	// Train consumes one Event, the supervised training contract spec.md
	// §2 item 7 calls out explicitly.
	Train(ev Event)

	// Copy returns an independent model with the same learned weights.
	Copy() Model
}
