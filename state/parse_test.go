package state

import (
	"testing"

	"github.com/desr-go/depparse/action"
	"github.com/desr-go/depparse/featconf"
	"github.com/desr-go/depparse/token"
)

func newParseStateFor(forms []string) *ParseState {
	s := token.NewSentence(nil, forms)
	return NewParseState(featconf.Default(), s)
}

func shiftAction() action.Action { return action.Intern("S") }

func TestTransitionClonesIndependently(t *testing.T) {
	p0 := newParseStateFor([]string{"a", "b"})
	p1, ok := p0.Transition(shiftAction())
	if !ok {
		t.Fatal("Shift should apply to the initial state")
	}

	if len(p0.Stack) != 1 {
		t.Errorf("parent Stack mutated by child transition: len = %d, want 1", len(p0.Stack))
	}
	if len(p1.Stack) != 2 {
		t.Errorf("child Stack = %d, want 2", len(p1.Stack))
	}

	// mutating a node reachable from the child must not affect the parent's copy.
	p1.Stack[1].SetAttr("x", "mutated")
	if v, ok := p0.Input[len(p0.Input)-1].Attr("x"); ok {
		t.Errorf("mutation leaked into parent's node: got %q", v)
	}
}

func TestPruneCascadesThroughDeadChain(t *testing.T) {
	p0 := newParseStateFor([]string{"a", "b", "c"})
	p1, ok := p0.Transition(shiftAction())
	if !ok {
		t.Fatal("first shift failed")
	}
	p2, ok := p1.Transition(shiftAction())
	if !ok {
		t.Fatal("second shift failed")
	}

	if p1.refs != 2 { // p0's reference plus p2's parent reference
		t.Errorf("p1.refs = %d, want 2", p1.refs)
	}

	p2.Prune()
	if p1.refs != 1 {
		t.Errorf("p1.refs after pruning its only child = %d, want 1", p1.refs)
	}

	p1.Prune()
	if p0.refs != 1 {
		t.Errorf("p0.refs after its only child chain is pruned = %d, want 1 (its own caller-held reference)", p0.refs)
	}

	p0.Prune()
	if p0.refs != 0 {
		t.Errorf("p0.refs after its own reference is pruned = %d, want 0", p0.refs)
	}
}

func TestHasNextFixesStrayRoots(t *testing.T) {
	p := newParseStateFor([]string{"a", "b", "c"})
	// Drain the input so the only remaining moves would come from leftover
	// stack fragments: simulate two unattached stray tokens.
	p.Input = nil
	a := token.NewGraph(1, "a")
	b := token.NewGraph(2, "bb")
	b.AddLeft(token.NewGraph(4, "extra")) // give b the larger subtree
	p.Stack = []*token.Graph{p.Root, a, b}

	if p.HasNext() {
		t.Fatal("HasNext() should report completion once input and real moves are exhausted")
	}
	if len(p.Stack) != 1 {
		t.Errorf("Stack after fix-up = %d, want 1 (root only)", len(p.Stack))
	}
	if a.HeadID != b.ID {
		t.Errorf("smaller stray should attach under the larger one: a.HeadID = %d, want %d", a.HeadID, b.ID)
	}
	if b.HeadID != 0 {
		t.Errorf("larger stray should become the designated root: b.HeadID = %d, want 0", b.HeadID)
	}
}

// TestHasNextDoesNotOverwriteAnAlreadyResolvedStray covers the ArcEager
// case where leftArcEager links a dependent's head without popping it off
// the stack: such a token can still be sitting in p.Stack[1:] when input
// and extraction both run dry, but it already has the correct head and
// must not be treated as an eligible root candidate.
func TestHasNextDoesNotOverwriteAnAlreadyResolvedStray(t *testing.T) {
	p := newParseStateFor([]string{"a", "b", "c"})
	p.Input = nil
	resolved := token.NewGraph(1, "resolved")
	resolved.LinkHead(99)
	resolved.LinkLabel("obj")
	root := token.NewGraph(2, "root")
	p.Stack = []*token.Graph{p.Root, resolved, root}

	if p.HasNext() {
		t.Fatal("HasNext() should report completion once input and real moves are exhausted")
	}
	if resolved.HeadID != 99 {
		t.Errorf("already-resolved stray's head was overwritten: HeadID = %d, want 99", resolved.HeadID)
	}
	if resolved.HeadLabel != "obj" {
		t.Errorf("already-resolved stray's label was overwritten: HeadLabel = %q, want %q", resolved.HeadLabel, "obj")
	}
	if root.HeadID != 0 {
		t.Errorf("the head-free stray should become the designated root: root.HeadID = %d, want 0", root.HeadID)
	}
}
