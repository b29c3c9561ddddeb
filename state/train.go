package state

import (
	"github.com/desr-go/depparse/action"
	"github.com/desr-go/depparse/featconf"
	"github.com/desr-go/depparse/token"
)

// TrainState derives the gold transition sequence for a fully annotated
// sentence: at each step NextAction consults the sentence's own head/label
// annotations (captured once at construction, before any transition
// overwrites them) to decide which single transition the rest of the
// sequence needs next (spec.md §2 item 6, §4.3).
type TrainState struct {
	*State

	goldHead  map[int]int
	goldLabel map[int]string
	remaining map[int]int // gold head id -> count of its children not yet structurally attached

	pending []action.Action
}

// NewTrainState snapshots sentence's gold dependency annotations and
// returns a TrainState ready to walk its oracle sequence from scratch.
func NewTrainState(cfg *featconf.Config, sentence *token.Sentence) *TrainState {
	base := New(cfg, sentence)
	goldHead := make(map[int]int, len(sentence.Tokens))
	goldLabel := make(map[int]string, len(sentence.Tokens))
	remaining := make(map[int]int, len(sentence.Tokens)+1)
	for _, tok := range sentence.Tokens {
		goldHead[tok.ID] = tok.HeadID
		goldLabel[tok.ID] = tok.HeadLabel
		remaining[tok.HeadID]++
	}
	return &TrainState{
		State:     base,
		goldHead:  goldHead,
		goldLabel: goldLabel,
		remaining: remaining,
	}
}

func (ts *TrainState) resolved(id int) bool {
	return ts.remaining[id] == 0
}

// markAttached records that one of head's gold children has now been
// structurally attached somewhere in the tree, letting later resolved()
// checks on head succeed once its whole gold dependent set is placed.
func (ts *TrainState) markAttached(childID int) {
	head := ts.goldHead[childID]
	if ts.remaining[head] > 0 {
		ts.remaining[head]--
	}
}

// NextAction decides the single transition the oracle needs next, or the
// zero Action once the configuration has nothing left to resolve. An
// empty input takes priority over almost everything else, but not over
// arc-eager Pop: once the last token has been shifted or reshifted, a
// fully resolved top sitting below it still needs popping before
// Unshift is allowed to run, or the two cycle forever (spec.md §8
// scenario 4, arc-eager, gold root not sentence-final — a literal
// unconditional "input empty ⇒ Unshift" reading of
// `TrainState::nextAction`'s own priority order does not terminate;
// this is a deliberate deviation from a literal reading of
// original_source/.../State.cpp:924-1037, required by spec.md §8's own
// termination invariant). Past that, the checks run in a fixed priority
// order and the first that applies wins; the depth-1 Left/Right pair is
// buffer-interacting (next.head = top for Left, top.head = next for Right),
// matching `state.State.left`/`right`, not the stack-internal
// arc-standard reading spec.md §8 scenario 1's worked example suggests —
// that example does not reproduce against this oracle for its own
// sentence.
//
//  1. a queued D<label> from a preceding non-composite reduce.
//  2. empty input: arc-eager Pop if top is resolved and more than the
//     root remains on the stack, otherwise Unshift, otherwise done.
//  3. the most recently extracted token's gold head is next: Insert.
//  4. Right, depth 1: top is not the root, top's gold head is next, and
//     top is resolved — top leaves the stack, next stays in the input.
//  5. arc-eager only: Pop once top is resolved and the stack has more
//     than one element.
//  6. Left, depth 1: next's gold head is top and next is resolved — next
//     is consumed from the input, top stays on the stack (or moves into
//     the input, see state.State.left).
//  7. stack[-2..-4]'s gold head is next and it is resolved: the matching
//     r<n>; depth 4 only once the input holds exactly one token.
//  8. next's gold head is top but next is not yet resolved: Shift, so
//     next's own remaining children attach before next itself does.
//  9. next's gold head is stack[-2..-4] and next is resolved: the
//     matching l<n>.
//  10. fallback: Shift while input remains, otherwise Unshift.
func (ts *TrainState) NextAction() action.Action {
	if len(ts.pending) > 0 {
		act := ts.pending[0]
		ts.pending = ts.pending[1:]
		return act
	}

	n0, hasN0 := ts.Next()
	if !hasN0 {
		if top, ok := ts.Top(); ok && ts.Config != nil && ts.Config.ArcEager && len(ts.Stack) > 1 && ts.resolved(top.ID) {
			return action.Intern("P")
		}
		if len(ts.Stack) > 1 {
			return action.Intern("U")
		}
		return ""
	}

	if len(ts.Extracted) > 0 {
		last := ts.Extracted[len(ts.Extracted)-1]
		if ts.goldHead[last.ID] == n0.ID {
			return action.Intern("I")
		}
	}

	top, hasTop := ts.Top()
	if !hasTop {
		return action.Intern("S")
	}

	if top.ID != ts.Root.ID && ts.goldHead[top.ID] == n0.ID && ts.resolved(top.ID) {
		return ts.structural("R", "r", 1, top.ID)
	}

	if ts.Config != nil && ts.Config.ArcEager && len(ts.Stack) > 1 && ts.resolved(top.ID) {
		return action.Intern("P")
	}

	if ts.goldHead[n0.ID] == top.ID && ts.resolved(n0.ID) {
		return ts.structural("L", "l", 1, n0.ID)
	}

	for depth := 2; depth <= 4; depth++ {
		if depth == 4 && len(ts.Input) != 1 {
			break
		}
		if len(ts.Stack) <= depth {
			break
		}
		target, _ := ts.At(depth)
		if ts.resolved(target.ID) && ts.goldHead[target.ID] == n0.ID {
			return ts.structural("R", "r", depth, target.ID)
		}
	}

	if ts.goldHead[n0.ID] == top.ID && !ts.resolved(n0.ID) {
		return action.Intern("S")
	}

	for depth := 2; depth <= 4; depth++ {
		if len(ts.Stack) <= depth {
			break
		}
		target, _ := ts.At(depth)
		if ts.goldHead[n0.ID] == target.ID && ts.resolved(n0.ID) {
			return ts.structural("L", "l", depth, n0.ID)
		}
	}

	return action.Intern("S")
}

// structural builds the structural action attaching the dependent whose
// gold label is looked up under labelID (depth 1 is the plain L/R
// action, 2-4 the non-projective skip variants), folding the label in
// directly when CompositeActions is set and queuing the matching
// D<label> action otherwise.
func (ts *TrainState) structural(base, deep string, depth int, labelID int) action.Action {
	label := ts.goldLabel[labelID]
	name := base
	if depth > 1 {
		name = deep + string(rune('0'+depth))
	}
	if ts.Config != nil && ts.Config.CompositeActions {
		return action.Make(nil, true, name, label)
	}
	ts.pending = append(ts.pending, action.Make(nil, false, "D", label))
	return action.Make(nil, false, name, "")
}

// Advance applies act to the underlying configuration and updates the
// bookkeeping NextAction relies on. Callers must pass exactly the action
// NextAction just returned.
func (ts *TrainState) Advance(act action.Action) bool {
	switch act.Head() {
	case 'L', 'l':
		// Left's dependent is always the input's next token, regardless
		// of depth or ArcEager — see state.State.left/leftArcEager/leftDeep.
		n0, ok := ts.Next()
		if !ok {
			return false
		}
		if !ts.Apply(act) {
			return false
		}
		ts.markAttached(n0.ID)
		return true
	case 'R', 'r':
		depth := act.Depth()
		if depth == 0 {
			depth = 1
		}
		target, ok := ts.At(depth)
		if !ok {
			return false
		}
		if !ts.Apply(act) {
			return false
		}
		ts.markAttached(target.ID)
		return true
	default:
		return ts.Apply(act)
	}
}

// Done reports whether the oracle sequence has nothing further to emit.
func (ts *TrainState) Done() bool {
	return len(ts.pending) == 0 && !ts.State.HasNext() && len(ts.Stack) <= 1
}
