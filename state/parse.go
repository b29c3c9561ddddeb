package state

import (
	"github.com/desr-go/depparse/action"
	"github.com/desr-go/depparse/corpus"
	"github.com/desr-go/depparse/featconf"
	"github.com/desr-go/depparse/token"
)

// ParseState is a beam-search-safe parser configuration: every Transition
// clones its underlying State before mutating the clone, so sibling
// branches in a beam never alias a node (spec.md §4.2). Ancestors are
// kept alive by a reference count that Prune walks back up, freeing a
// whole dead chain in one call once its last surviving descendant drops
// out of the beam.
type ParseState struct {
	*State

	refs   int
	parent *ParseState
}

// NewParseState returns the initial configuration for sentence, held by
// one reference (the caller's).
func NewParseState(cfg *featconf.Config, sentence *token.Sentence) *ParseState {
	return &ParseState{State: New(cfg, sentence), refs: 1}
}

// Retain adds a reference to p, returning p for chaining. Call this
// whenever a second beam slot starts pointing at the same ParseState.
func (p *ParseState) Retain() *ParseState {
	p.refs++
	return p
}

// Prune drops one reference from p. When that was the last one, p's
// reference to its parent is dropped too and Prune recurses up the
// parent chain, so an entire abandoned branch of the search tree is
// released in one call rather than lingering until its last leaf goes
// out of scope on its own.
func (p *ParseState) Prune() {
	cur := p
	for cur != nil {
		cur.refs--
		if cur.refs > 0 {
			return
		}
		if cur.refs < 0 {
			panic("state: Prune decremented a ParseState past zero references")
		}
		next := cur.parent
		cur.parent = nil
		cur = next
	}
}

// rewrite applies the punctuation guard: once a token has been parked in
// Extracted, a Shift or Left that would next consume a punctuation token
// is redirected to Insert instead, so a parked token gets a chance to be
// reinserted and reattached before punctuation is allowed to pass by.
func (p *ParseState) rewrite(act action.Action) action.Action {
	if len(p.Extracted) == 0 {
		return act
	}
	switch act.Head() {
	case 'S', 'L':
		if n0, ok := p.Next(); ok && corpus.IsPunct(n0.Form) {
			return action.Intern("I")
		}
	}
	return act
}

// Transition returns a new ParseState holding a deep copy of p's
// configuration with act applied, retaining p as its parent. It returns
// ok=false, discarding the clone, if act does not structurally apply —
// callers should not advance the beam with that candidate.
func (p *ParseState) Transition(act action.Action) (*ParseState, bool) {
	act = p.rewrite(act)
	child := &ParseState{State: p.State.clone(), refs: 1, parent: p}
	child.Previous = p.State
	if !child.Apply(act) {
		return nil, false
	}
	p.refs++
	return child, true
}

// HasNext reports whether decoding should keep going. Once the input
// queue and the extracted pile are both empty, no structural attachment
// (Shift, Left, Right, or Insert) can fire any longer, so rather than
// waiting on a classifier to emit one Pop per leftover stack fragment,
// HasNext finalizes them immediately through the stray-root fix-up and
// reports completion.
func (p *ParseState) HasNext() bool {
	if len(p.Input) > 0 || len(p.Extracted) > 0 {
		return true
	}
	if len(p.Stack) > 1 {
		p.fixStrayRoots()
	}
	return false
}

// fixStrayRoots resolves any tokens still sitting on the stack with no
// head assigned — fragments the transition sequence never attached to
// anything. The real root is chosen as the stray with no assigned head
// whose POS the language table flags as root-eligible and, among those,
// the largest subtree; when Config.SingleRoot is set every other stray
// is attached under it with the language's root label, otherwise they
// are left as additional bare top-level heads, Stanford-dependencies
// style.
func (p *ParseState) fixStrayRoots() {
	strays := p.Stack[1:]
	if len(strays) == 0 {
		return
	}

	// A stray can already carry a correct head: ArcEager's leftArcEager
	// links a dependent's head without popping it off the stack, so it
	// can still be sitting here once input and extraction both run dry.
	// Such tokens are not root candidates at all — criterion (a) — and
	// are left untouched rather than risk the reattachment loop below
	// overwriting an arc that already exists.
	var candidates []*token.Graph
	for _, s := range strays {
		if s.HeadID == 0 {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		p.Stack = p.Stack[:1]
		return
	}

	rootEligible := func(g *token.Graph) bool {
		return p.Lang == nil || p.Lang.RootPos(g.POS)
	}

	best := candidates[0]
	for _, s := range candidates[1:] {
		sEligible, bestEligible := rootEligible(s), rootEligible(best)
		switch {
		case sEligible && !bestEligible:
			best = s
		case sEligible == bestEligible && s.Size() > best.Size():
			best = s
		}
	}

	label := ""
	if p.Lang != nil {
		label = p.Lang.RootLabel()
	}
	if p.Config == nil || p.Config.SingleRoot {
		for _, s := range candidates {
			if s == best {
				continue
			}
			s.LinkHead(best.ID)
			s.LinkLabel(label)
			best.AddRight(s)
		}
	} else {
		for _, s := range candidates {
			if s == best {
				continue
			}
			s.LinkLabel(label)
		}
	}

	best.LinkHead(0)
	p.Stack = p.Stack[:1]
}
