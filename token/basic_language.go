package token

// BasicLanguage is a minimal, set-driven Language implementation — the same
// role BasicSentence and BasicTaggedSentence play for their interfaces in
// the teacher's nlp/types package: a plain reference implementation usable
// directly by tests or by small deployments that don't need a real
// morphological lookup service.
type BasicLanguage struct {
	VerbPOS, NounPOS, RootEligiblePOS map[string]bool
	// NoMorphoLeft/NoMorphoRight list POS tags for which morphology is
	// suppressed (mirrors the original's "!lang->morphoLeft(pos)" gating).
	NoMorphoLeft, NoMorphoRight map[string]bool
	Root                        string
}

var _ Language = &BasicLanguage{}

// MorphoLeft/MorphoRight report whether pos is exempt from morphological
// agreement checking on that side (e.g. a preposition never inflects) —
// the predicate the feature extractor negates before testing agreement, matching the
// original's "!lang->morphoLeft(pos)" gating.
func (l *BasicLanguage) MorphoLeft(pos string) bool  { return l.NoMorphoLeft[pos] }
func (l *BasicLanguage) MorphoRight(pos string) bool { return l.NoMorphoRight[pos] }

func (l *BasicLanguage) NumbAgree(a, b string) bool {
	return a == "" || b == "" || a == b
}

func (l *BasicLanguage) GendAgree(a, b string) bool {
	return a == "" || b == "" || a == b
}

func (l *BasicLanguage) IsVerb(tok *Graph) bool { return l.VerbPOS[tok.POS] }
func (l *BasicLanguage) IsNoun(tok *Graph) bool { return l.NounPOS[tok.POS] }
func (l *BasicLanguage) RootPos(pos string) bool { return l.RootEligiblePOS[pos] }
func (l *BasicLanguage) RootLabel() string       { return l.Root }
