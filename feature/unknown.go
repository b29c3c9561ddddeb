package feature

import (
	"strings"

	"github.com/desr-go/depparse/classifier"
	"github.com/desr-go/depparse/featconf"
	"github.com/desr-go/depparse/state"
)

// Next is the classifier-facing predicate→id pipeline spec.md §4.4
// describes for ParseState.next(): extract s's predicate strings, resolve
// each through vocab, and on a miss retry once against an #UNKNOWN
// variant of the predicate before giving up. It is hosted here rather
// than as a method on state.ParseState because feature already imports
// state for Extract's *state.State parameter — a method on ParseState
// calling back into feature would be an import cycle.
func (x *Extractor) Next(s *state.State, vocab *classifier.Vocab) classifier.Context {
	preds := x.Extract(s)
	ctx := make(classifier.Context, 0, len(preds))
	for _, pred := range preds {
		if id, ok := vocab.Lookup(pred); ok {
			ctx = append(ctx, id)
			continue
		}
		fallback, ok := UnknownVariant(pred, x.Config.UnambiguousFeatures)
		if !ok {
			continue
		}
		if id, ok := vocab.Lookup(fallback); ok {
			ctx = append(ctx, id)
		}
	}
	return ctx
}

// UnknownVariant rewrites predicate into its #UNKNOWN fallback form by
// replacing the lexical tail past its path+type prefix with the literal
// "#UNKNOWN" (spec.md §4.4), and reports whether predicate had a tail to
// replace at all. A templated predicate renders each chained element as
// either "<path><n><letter><value>" (unambiguous) or
// "<n><letter><path><value>" (non-unambiguous; see renderChain), so the
// boundary is found by locating the rightmost digit-then-uppercase-letter
// pair — the start of the final chained element's "<n><letter>" — and,
// for the non-unambiguous layout, skipping the direction-code run that
// follows it. Predicates with no such pair (boundary sentinels,
// word-distance, and most other non-templated families) report ok=false,
// going straight to the drop spec.md §4.4 describes for a predicate that
// still misses. A non-templated predicate that does contain such a pair,
// such as the history predicate "a0S" or "1TIME", is cut after it the
// same way ("a0S#UNKNOWN").
func UnknownVariant(predicate string, unambiguous bool) (string, bool) {
	cut := -1
	for i := len(predicate) - 2; i >= 0; i-- {
		if isDigit(predicate[i]) && isUpper(predicate[i+1]) {
			cut = i + 2
			break
		}
	}
	if cut < 0 {
		return "", false
	}
	if !unambiguous {
		for cut < len(predicate) && strings.IndexByte(featconf.DirCodeAlphabet, predicate[cut]) >= 0 {
			cut++
		}
	}
	return predicate[:cut] + "#UNKNOWN", true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
