// Package state implements the transition engine over a TokenGraph tree:
// the shift-reduce configuration every transition mutates (spec.md §2
// items 5-6, §4.1-§4.3), plus its two specializations — TrainState, which
// derives the gold action sequence for a fully annotated sentence, and
// ParseState, which explores the action space at decode time with
// copy-on-write cloning. Grounded on the teacher's
// nlp/parser/dependency/transition configuration types, generalized from
// an arc-set model to the mutable linked-tree model TrainState/ParseState
// need to mutate directly.
package state

import (
	"github.com/desr-go/depparse/action"
	"github.com/desr-go/depparse/featconf"
	"github.com/desr-go/depparse/token"
)

// State is one shift-reduce configuration: `(stack, input, extracted,
// rootNode, previous, action, afterUnshift)` (spec.md §3 "State"). Stack
// and Input are both last-in-first-out: Stack's active end (the "top")
// and Input's active end (the "next" token) are both the end of their
// respective slices, so Shift/Unshift/Extract/Insert all move a single
// element between the back of one slice and the back of the other.
type State struct {
	Config *featconf.Config
	Lang   token.Language
	Root   *token.Graph

	Stack     []*token.Graph
	Input     []*token.Graph
	Extracted []*token.Graph

	// Previous links to the configuration transition() was called on to
	// produce this one, giving history features (spec.md §4.5
	// "PastActions") a chain to walk without storing it separately.
	Previous     *State
	Action       action.Action
	AfterUnshift bool

	pendingKind byte
	pendingArc  *token.Graph
}

// New builds the initial configuration for sentence: the stack holds only
// the synthetic root, and the input holds every token in order with the
// first token as the active "next" end.
func New(cfg *featconf.Config, sentence *token.Sentence) *State {
	root := token.NewRoot()
	input := make([]*token.Graph, len(sentence.Tokens))
	for i, tok := range sentence.Tokens {
		input[len(input)-1-i] = tok
	}
	return &State{
		Config: cfg,
		Lang:   sentence.Lang,
		Root:   root,
		Stack:  []*token.Graph{root},
		Input:  input,
	}
}

// Top returns the stack's top element (its last element).
func (s *State) Top() (*token.Graph, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// At returns the stack element depth positions from the top (1 = top, 2 =
// second from top, ...).
func (s *State) At(depth int) (*token.Graph, bool) {
	idx := len(s.Stack) - depth
	if idx < 0 || idx >= len(s.Stack) {
		return nil, false
	}
	return s.Stack[idx], true
}

// Next returns the input's active end — the next token to consume.
func (s *State) Next() (*token.Graph, bool) {
	if len(s.Input) == 0 {
		return nil, false
	}
	return s.Input[len(s.Input)-1], true
}

// NextAt returns the input element offset positions behind next (0 =
// next itself, 1 = the token after next, ...).
func (s *State) NextAt(offset int) (*token.Graph, bool) {
	idx := len(s.Input) - 1 - offset
	if idx < 0 || idx >= len(s.Input) {
		return nil, false
	}
	return s.Input[idx], true
}

// HasNext is true while the input is non-empty (spec.md §4.1).
func (s *State) HasNext() bool {
	return len(s.Input) > 0
}

// Apply mutates s in place according to act, returning false if act is
// impossible in the current configuration. The router dispatches on
// act.Head(); a Right with only the root on the stack is silently
// upgraded to Shift (spec.md §4.1 "for R with stack.size()==1 it
// silently upgrades to S").
func (s *State) Apply(act action.Action) bool {
	ok := s.apply(act)
	if ok {
		s.Action = act
	}
	return ok
}

func (s *State) apply(act action.Action) bool {
	switch act.Head() {
	case 'S':
		return s.shift()
	case 'U':
		return s.unshift()
	case 'L':
		return s.left(act.Label())
	case 'R':
		if len(s.Stack) == 1 {
			return s.shift()
		}
		return s.right(act.Label())
	case 'l':
		d := act.Depth()
		if d == 0 {
			d = 1
		}
		return s.leftDeep(d, act.Label())
	case 'r':
		d := act.Depth()
		if d < 2 {
			return false
		}
		return s.rightDeep(d, act.Label())
	case 'D':
		return s.depLink(act.Label())
	case 'E':
		return s.extract()
	case 'I':
		return s.insert()
	case 'P':
		return s.pop()
	}
	return false
}

// shift moves next from input to stack. A no-op success when input is
// already empty (spec.md §4.1 "S ... end-of-sequence tolerance").
func (s *State) shift() bool {
	if len(s.Input) == 0 {
		return true
	}
	n := len(s.Input) - 1
	tok := s.Input[n]
	s.Input = s.Input[:n]
	s.Stack = append(s.Stack, tok)
	return true
}

// unshift moves top back onto input. Requires more than just the root on
// the stack.
func (s *State) unshift() bool {
	if len(s.Stack) < 2 {
		return false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	s.Input = append(s.Input, top)
	s.AfterUnshift = true
	return true
}

// left implements L: next's head becomes top, and next is appended to
// top's right children since it follows its new head in the sentence
// (spec.md §4.1 "Create arc top → next"). Top is not spliced out of the
// tree; depending on configuration it either moves into next's old slot
// in the input (the common case, ready to be re-examined against
// whatever is now exposed beneath it) or stays put on the stack when it
// was the stack's only element, anticipating a Shift. Grounded directly
// on `State::Left` (original_source/.../State.cpp:203-235): the worked
// trace in spec.md §8 scenario 1 does not reproduce against the
// original's own oracle for the sentence it uses and was not followed.
func (s *State) left(label string) bool {
	if len(s.Stack) == 0 || len(s.Input) == 0 {
		return false
	}
	if s.Config != nil && s.Config.ArcEager {
		return s.leftArcEager(label)
	}
	top := s.Stack[len(s.Stack)-1]
	next := s.Input[len(s.Input)-1]
	top.AddRight(next)
	next.LinkHead(top.ID)
	if label != "" {
		next.LinkLabel(label)
	}
	s.pendingKind, s.pendingArc = 'L', next

	if s.Config != nil && s.Config.CompositeActions {
		if len(s.Stack) > 1 {
			s.Stack = s.Stack[:len(s.Stack)-1]
			s.Input[len(s.Input)-1] = top
		} else {
			s.Input = s.Input[:len(s.Input)-1]
		}
		return true
	}
	s.Stack = s.Stack[:len(s.Stack)-1]
	s.Input[len(s.Input)-1] = top
	return true
}

// leftArcEager implements L under ArcEager: the arc is the same as plain
// L (next's head becomes top, next appended to top's right children),
// but top is not popped — next is shifted directly onto the stack above
// it instead, so the pair stays adjacent for further arc-eager
// reductions (spec.md §4.1 "arcEager: shift next onto stack without
// popping"; State.cpp:208-211).
func (s *State) leftArcEager(label string) bool {
	top, okT := s.Top()
	next, okN := s.Next()
	if !okT || !okN {
		return false
	}
	top.AddRight(next)
	next.LinkHead(top.ID)
	if label != "" {
		next.LinkLabel(label)
	}
	s.pendingKind, s.pendingArc = 'L', next
	s.Input = s.Input[:len(s.Input)-1]
	s.Stack = append(s.Stack, next)
	return true
}

// right implements R: the arc runs from the input's next token to the
// stack's top (top's head becomes next, top appended to next's left
// children since it precedes its new head in the sentence; spec.md
// §4.1 "Create arc top → next" read from top's side). Top leaves the
// stack entirely; next stays in the input, refreshed in place. Grounded
// on `State::Right` (original_source/.../State.cpp:186-201).
func (s *State) right(label string) bool {
	if len(s.Stack) < 2 || len(s.Input) == 0 {
		return false
	}
	top := s.Stack[len(s.Stack)-1]
	next := s.Input[len(s.Input)-1]
	next.AddLeft(top)
	top.LinkHead(next.ID)
	if label != "" {
		top.LinkLabel(label)
	}
	s.pendingKind, s.pendingArc = 'R', top
	s.Stack = s.Stack[:len(s.Stack)-1]
	return true
}

// rightDeep implements r<n>, non-projective right: the n-th stack
// element from the top becomes the dependent of next (stack[-n].head =
// next.ID), appended to next's left children since it precedes next in
// the sentence, and removed from the stack. When CompositeActions is
// set, top is additionally unshifted back onto the input, anticipating
// later reductions (spec.md §4.1 "r<n>").
func (s *State) rightDeep(depth int, label string) bool {
	n, ok := s.Next()
	if !ok {
		return false
	}
	idx := len(s.Stack) - depth
	if idx <= 0 {
		return false
	}
	target := s.Stack[idx]
	n.AddLeft(target)
	target.LinkHead(n.ID)
	if label != "" {
		target.LinkLabel(label)
	}
	s.pendingKind, s.pendingArc = 'r', target

	s.Stack = append(s.Stack[:idx], s.Stack[idx+1:]...)
	if s.Config != nil && s.Config.CompositeActions {
		s.moveTopToInput()
	}
	return true
}

// leftDeep implements l<n>: the n-th stack element from the top becomes
// the parent of next, the intervening n-1 elements above it are
// unshifted back onto the input so they're re-examined against a new
// top, and the target itself follows them back onto the input, even when
// that leaves only the root on the stack (spec.md §4.1 "l<n>"). l<n>
// fails when stack[-n] is the root, so the target is never the root.
func (s *State) leftDeep(depth int, label string) bool {
	if depth == 1 {
		return s.left(label)
	}
	n, ok := s.Next()
	if !ok {
		return false
	}
	idx := len(s.Stack) - depth
	if idx <= 0 {
		return false
	}
	target := s.Stack[idx]
	target.AddRight(n)
	n.LinkHead(target.ID)
	if label != "" {
		n.LinkLabel(label)
	}
	s.pendingKind, s.pendingArc = 'l', n

	intervening := append([]*token.Graph(nil), s.Stack[idx+1:]...)
	base := s.Stack[:idx]
	s.Input = s.Input[:len(s.Input)-1]
	for i := len(intervening) - 1; i >= 0; i-- {
		s.Input = append(s.Input, intervening[i])
	}

	if len(base) == 0 {
		// target is the root itself: keep it on the stack, anticipating
		// a Shift, instead of popping the synthetic root off entirely.
		s.Stack = append(base, target)
		return true
	}
	s.Stack = base
	s.Input = append(s.Input, target)
	return true
}

// moveTopToInput is the "complete it" cleanup r<n> and D<label> share:
// top is unshifted back onto the input so it is re-examined before any
// further reduction commits to it.
func (s *State) moveTopToInput() {
	if len(s.Stack) < 2 {
		return
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	s.Input = append(s.Input, top)
}

// depLink assigns label to the arc the immediately preceding structural
// action created, then performs whichever deferred cleanup that action
// left pending (spec.md §4.1 "D<label>"). A non-composite, non-arc-eager
// L pops top unconditionally, even when top was the stack's only
// element; when that has left the stack empty, D restores top (the
// token D just labeled its dependent against) from the input back onto
// the stack, exactly as `State::DepLink`'s own "link to rootNode,
// restore it" branch does (State.cpp:295-323).
func (s *State) depLink(label string) bool {
	if s.pendingArc == nil || label == "" {
		return false
	}
	s.pendingArc.LinkLabel(label)
	kind := s.pendingKind
	s.pendingKind, s.pendingArc = 0, nil

	switch kind {
	case 'r':
		s.moveTopToInput()
	case 'L', 'l':
		if len(s.Stack) == 0 && len(s.Input) > 0 {
			n := len(s.Input) - 1
			tok := s.Input[n]
			s.Input = s.Input[:n]
			s.Stack = append(s.Stack, tok)
		}
	}
	return true
}

// extract requires at least a root, two real stack elements, and a
// non-empty input: the second-from-top element is parked in Extracted,
// then a Shift runs (spec.md §4.1 "E (Extract)").
func (s *State) extract() bool {
	if len(s.Stack) < 3 || len(s.Input) == 0 {
		return false
	}
	idx := len(s.Stack) - 2
	tok := s.Stack[idx]
	s.Stack = append(s.Stack[:idx], s.Stack[idx+1:]...)
	s.Extracted = append(s.Extracted, tok)
	return s.shift()
}

// insert pops the most recently extracted token and pushes it back onto
// the input (spec.md §4.1 "I (Insert)").
func (s *State) insert() bool {
	if len(s.Extracted) == 0 {
		return false
	}
	n := len(s.Extracted) - 1
	tok := s.Extracted[n]
	s.Extracted = s.Extracted[:n]
	s.Input = append(s.Input, tok)
	return true
}

// pop requires more than just the root on the stack and discards top
// with no further bookkeeping (spec.md §4.1 "P (Pop)").
func (s *State) pop() bool {
	if len(s.Stack) < 2 {
		return false
	}
	s.Stack = s.Stack[:len(s.Stack)-1]
	return true
}

// cloneDeep returns a fully independent copy of the node tree rooted at
// g — every reachable node gets its own Graph, keyed by identity so a
// node reachable by more than one path (e.g. through both Stack and the
// attached tree) is only cloned once and every reference to it in the
// clone stays consistent. ParseState uses this for copy-on-write: two
// sibling configurations in a beam never alias a mutable node. This
// trades the arena-of-overridable-slots the original's node-level
// copy-on-write used for a simpler always-deep-copy scheme that Go's
// garbage collector makes cheap enough not to need.
func cloneDeep(g *token.Graph, memo map[*token.Graph]*token.Graph) *token.Graph {
	if g == nil {
		return nil
	}
	if c, ok := memo[g]; ok {
		return c
	}
	c := g.Copy()
	memo[g] = c
	c.Left = make([]*token.Graph, len(g.Left))
	for i, ch := range g.Left {
		c.Left[i] = cloneDeep(ch, memo)
	}
	c.Right = make([]*token.Graph, len(g.Right))
	for i, ch := range g.Right {
		c.Right[i] = cloneDeep(ch, memo)
	}
	return c
}

// clone returns a State with every node reachable from Root, Stack,
// Input, or Extracted deep-copied, sharing no mutable node with s.
func (s *State) clone() *State {
	memo := make(map[*token.Graph]*token.Graph, len(s.Stack)+len(s.Input)+len(s.Extracted))
	newRoot := cloneDeep(s.Root, memo)

	newStack := make([]*token.Graph, len(s.Stack))
	for i, g := range s.Stack {
		newStack[i] = cloneDeep(g, memo)
	}
	newInput := make([]*token.Graph, len(s.Input))
	for i, g := range s.Input {
		newInput[i] = cloneDeep(g, memo)
	}
	newExtracted := make([]*token.Graph, len(s.Extracted))
	for i, g := range s.Extracted {
		newExtracted[i] = cloneDeep(g, memo)
	}

	clone := &State{
		Config:    s.Config,
		Lang:      s.Lang,
		Root:      newRoot,
		Stack:     newStack,
		Input:     newInput,
		Extracted: newExtracted,
	}
	if s.pendingArc != nil {
		clone.pendingArc = memo[s.pendingArc]
		clone.pendingKind = s.pendingKind
	}
	return clone
}
