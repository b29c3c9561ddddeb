package classifier

import "github.com/desr-go/depparse/action"

// Trivial is a minimal in-memory perceptron-style Model: one sparse
// feature-weight map per action, updated by the standard mistake-driven
// perceptron rule. It exists to give TrainState/ParseState something
// concrete to train and score against in tests, the same role the
// teacher's commented-out alg/transition/model/trivial.go sketch was
// meant to play for its own perceptron package.
type Trivial struct {
	weights map[action.Action]map[int]float64
}

var _ Model = &Trivial{}

// NewTrivial returns an untrained Trivial model.
func NewTrivial() *Trivial {
	return &Trivial{weights: make(map[action.Action]map[int]float64)}
}

// Score sums, for every action this model has ever seen, the weights of
// the features present in ctx.
func (m *Trivial) Score(ctx Context) map[action.Action]float64 {
	scores := make(map[action.Action]float64, len(m.weights))
	for act, w := range m.weights {
		var s float64
		for _, f := range ctx {
			s += w[f]
		}
		scores[act] = s
	}
	return scores
}

// Best returns the highest-scoring action for ctx among every action seen
// so far, and false if the model has seen none. Ties go to the
// lexically smallest action, so the result does not depend on map order.
func (m *Trivial) Best(ctx Context) (action.Action, bool) {
	scores := m.Score(ctx)
	var best action.Action
	var bestScore float64
	found := false
	for act, s := range scores {
		if !found || s > bestScore || (s == bestScore && act < best) {
			best, bestScore, found = act, s, true
		}
	}
	return best, found
}

// Train applies one step of the mistake-driven perceptron update: if the
// model's current best guess for ev.Features disagrees with ev.Action, the
// gold action's weights are incremented and the wrongly preferred
// action's weights are decremented, both by one, for every feature in
// ev.Features.
func (m *Trivial) Train(ev Event) {
	m.ensure(ev.Action)
	guess, ok := m.Best(ev.Features)
	if ok && guess == ev.Action {
		return
	}
	gold := m.weights[ev.Action]
	for _, f := range ev.Features {
		gold[f]++
	}
	if ok {
		m.ensure(guess)
		wrong := m.weights[guess]
		for _, f := range ev.Features {
			wrong[f]--
		}
	}
}

func (m *Trivial) ensure(act action.Action) {
	if m.weights[act] == nil {
		m.weights[act] = make(map[int]float64)
	}
}

// Copy returns an independent Trivial model with the same weights.
func (m *Trivial) Copy() Model {
	clone := NewTrivial()
	for act, w := range m.weights {
		cw := make(map[int]float64, len(w))
		for f, v := range w {
			cw[f] = v
		}
		clone.weights[act] = cw
	}
	return clone
}
