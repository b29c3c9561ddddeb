package corpus

import "github.com/desr-go/depparse/token"

// FreqRatio is the threshold GlobalInfo uses to decide a lemma leans
// toward a time or location reading: one counter must exceed the other by
// this factor before EntityType commits to either, matching the
// original's GlobalInfo freqRatio constant.
const FreqRatio = 1.5

// timeLabels and locLabels name the dependency relations GlobalInfo
// treats as marking a temporal or locative prepositional complement when
// harvesting training-corpus statistics.
var (
	timeLabels = map[string]bool{"time": true}
	locLabels  = map[string]bool{"loc": true}
)

// GlobalInfo accumulates corpus-wide lemma frequency counts for the
// PrepChildEntityType feature (spec.md §4.5, §6): how often a lemma heads
// a time complement versus a location complement, so that at parse time a
// preposition's child can be classified by which reading dominates.
type GlobalInfo struct {
	timeLemmas map[string]int
	locLemmas  map[string]int
}

// NewGlobalInfo returns an empty counter set ready for repeated Extract
// calls over a training corpus.
func NewGlobalInfo() *GlobalInfo {
	return &GlobalInfo{
		timeLemmas: make(map[string]int),
		locLemmas:  make(map[string]int),
	}
}

// Extract scans sentence for tokens attached by a time or location
// relation and bumps the corresponding lemma counter, the same role the
// original's GlobalInfo::extract plays when it is run once over the whole
// training corpus before feature extraction begins.
func (g *GlobalInfo) Extract(sentence *token.Sentence) {
	for _, tok := range sentence.Tokens {
		lemma := tok.Lemma
		if lemma == "" {
			lemma = tok.Form
		}
		switch {
		case timeLabels[tok.HeadLabel]:
			g.timeLemmas[lemma]++
		case locLabels[tok.HeadLabel]:
			g.locLemmas[lemma]++
		}
	}
}

// EntityType classifies lemma as "TIME" or "LOC" when one counter beats
// the other by more than FreqRatio, or "" when the evidence is too thin
// or too balanced to commit either way.
func (g *GlobalInfo) EntityType(lemma string) string {
	t := float64(g.timeLemmas[lemma])
	l := float64(g.locLemmas[lemma])
	switch {
	case t > 0 && t > l*FreqRatio:
		return "TIME"
	case l > 0 && l > t*FreqRatio:
		return "LOC"
	default:
		return ""
	}
}
