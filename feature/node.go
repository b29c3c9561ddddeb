// Package feature implements the predicate extractor: turning one parser
// configuration into the sparse Context the classifier trains and scores
// against (spec.md §2 item 5, §4.5). Grounded on the teacher's
// SimpleConfiguration.Address/Attribute resolution
// (nlp/parser/dependency/transition/simple_features.go), generalized from
// its byte-location addressing to featconf.TokenPath/FeatureSpec chains
// over the mutable token.Graph tree.
package feature

import (
	"github.com/desr-go/depparse/featconf"
	"github.com/desr-go/depparse/state"
	"github.com/desr-go/depparse/token"
)

// anchorNode adapts a *token.Graph, plus the configuration it came from
// (needed to resolve the 'h' head hop, which a bare Graph can't do on its
// own since it only stores a HeadID), to featconf.Node so TokenPath.Follow
// can walk it.
type anchorNode struct {
	g  *token.Graph
	by func(id int) (*token.Graph, bool)
}

var _ featconf.Node = anchorNode{}

func (n anchorNode) ID() int { return n.g.ID }

func (n anchorNode) LeftChild(i int) (featconf.Node, bool) {
	if i >= len(n.g.Left) {
		return nil, false
	}
	return anchorNode{n.g.Left[i], n.by}, true
}

func (n anchorNode) RightChild(i int) (featconf.Node, bool) {
	if i >= len(n.g.Right) {
		return nil, false
	}
	return anchorNode{n.g.Right[i], n.by}, true
}

func (n anchorNode) Head() (featconf.Node, bool) {
	head, ok := n.by(n.g.HeadID)
	if !ok {
		return nil, false
	}
	return anchorNode{head, n.by}, true
}

// byID builds a node resolver over everything reachable from a
// configuration: the synthetic root plus every node currently on the
// stack, the input queue, or parked in Extracted, found by walking each
// one's subtree. Good enough for the depths TokenPath chains ever use.
func byID(s *state.State) func(id int) (*token.Graph, bool) {
	index := make(map[int]*token.Graph)
	var walk func(g *token.Graph)
	walk = func(g *token.Graph) {
		if g == nil {
			return
		}
		if _, seen := index[g.ID]; seen {
			return
		}
		index[g.ID] = g
		for _, c := range g.Left {
			walk(c)
		}
		for _, c := range g.Right {
			walk(c)
		}
	}
	walk(s.Root)
	for _, g := range s.Stack {
		walk(g)
	}
	for _, g := range s.Input {
		walk(g)
	}
	for _, g := range s.Extracted {
		walk(g)
	}
	return func(id int) (*token.Graph, bool) {
		g, ok := index[id]
		return g, ok
	}
}

// anchor resolves a TokenPath's Root offset against the current
// configuration: negative values count from the top of Stack, Root >= 0
// from the front of Input.
func anchor(s *state.State, root int) (*token.Graph, bool) {
	if root < 0 {
		return s.At(-root)
	}
	return s.NextAt(root)
}
