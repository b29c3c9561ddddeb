package token

// Sentence is an ordered sequence of Graph nodes carrying a Language
// handle (spec.md §3 "Sentence"). Tokens are addressed by their 1-based
// Graph.ID, i.e. Tokens[i].ID == i+1 for a freshly loaded sentence.
type Sentence struct {
	Tokens []*Graph
	Lang   Language
}

// NewSentence assigns 1-based ids to toks in order and returns the
// resulting Sentence.
func NewSentence(lang Language, forms []string) *Sentence {
	toks := make([]*Graph, len(forms))
	for i, form := range forms {
		toks[i] = NewGraph(i+1, form)
	}
	return &Sentence{Tokens: toks, Lang: lang}
}

// Len returns the number of tokens (excluding the synthetic root, which is
// not part of Sentence — it belongs to each State).
func (s *Sentence) Len() int {
	return len(s.Tokens)
}

// Reverse flips the token order in place, used when FeatureConfig.RightToLeft
// is set (spec.md §3, §6).
func (s *Sentence) Reverse() {
	for i, j := 0, len(s.Tokens)-1; i < j; i, j = i+1, j-1 {
		s.Tokens[i], s.Tokens[j] = s.Tokens[j], s.Tokens[i]
	}
}

// Copy returns a sentence holding shallow clones of every node ("a shallow
// copy of nodes" per spec.md §3 "Ownership"), so each State can own a
// mutable working copy independent of the original annotated sentence.
func (s *Sentence) Copy() *Sentence {
	toks := make([]*Graph, len(s.Tokens))
	for i, t := range s.Tokens {
		toks[i] = t.Copy()
	}
	return &Sentence{Tokens: toks, Lang: s.Lang}
}
