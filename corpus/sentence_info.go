// Package corpus holds the per-sentence and corpus-wide auxiliary counters
// the feature extractor consults: SentenceInfo's punctuation/quote state
// and GlobalInfo's time/location lemma frequencies (spec.md §2, §4.5;
// original's SentenceInfo and GlobalInfo in State.cpp).
package corpus

import (
	"regexp"

	"github.com/desr-go/depparse/token"
)

// These reproduce the original's bug-compatible punctuation/quote
// character classes verbatim (spec.md §9 "Design Notes"): RE2's Unicode
// general-category support covers \p{P} (punctuation), \p{Pi} (initial
// quotation), and \p{Pf} (final quotation), so no third-party regex
// engine is needed to match them exactly.
var (
	isPunctRE     = regexp.MustCompile(`^\p{P}+$`)
	isOpenQuoteRE = regexp.MustCompile(`^(\p{Pi}|` + "`{1,2}" + `)$`)
	isCloseQuoteRE = regexp.MustCompile(`^(\p{Pf}|'{1,2})$`)
	isBareQuoteRE = regexp.MustCompile(`^"$`)
)

// SentenceInfo carries per-token auxiliary state derived from a single
// sentence's surface forms: a running punctuation count and whether each
// token falls inside an open quotation span.
type SentenceInfo struct {
	PunctCount []int
	InQuotes   []bool
}

// NewSentenceInfo walks sentence once, accumulating a cumulative
// punctuation count and tracking quote nesting with the same three-way
// open/close/bare toggle the original's constructor uses: a recognized
// open-quote glyph starts a span and is itself inside it, a recognized
// close-quote glyph ends a span and is itself inside it, and a bare ASCII
// '"' (which carries no directionality) flips whatever state is current
// and, opening or closing, is itself inside the span it delimits.
func NewSentenceInfo(sentence *token.Sentence) *SentenceInfo {
	n := sentence.Len()
	info := &SentenceInfo{
		PunctCount: make([]int, n),
		InQuotes:   make([]bool, n),
	}

	count := 0
	inQuotes := false
	for i, tok := range sentence.Tokens {
		form := tok.Form
		switch {
		case isOpenQuoteRE.MatchString(form):
			inQuotes = true
			info.InQuotes[i] = true
		case isCloseQuoteRE.MatchString(form):
			info.InQuotes[i] = true
			inQuotes = false
		case isBareQuoteRE.MatchString(form):
			info.InQuotes[i] = true
			inQuotes = !inQuotes
		default:
			info.InQuotes[i] = inQuotes
		}

		if isPunctRE.MatchString(form) {
			count++
		}
		info.PunctCount[i] = count
	}
	return info
}

// IsPunct reports whether form is composed entirely of punctuation
// characters, the same test UseChildPunct and InPunct features use.
func IsPunct(form string) bool {
	return isPunctRE.MatchString(form)
}
