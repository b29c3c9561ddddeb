package feature

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/desr-go/depparse/corpus"
	"github.com/desr-go/depparse/featconf"
	"github.com/desr-go/depparse/state"
	"github.com/desr-go/depparse/token"
)

// Extractor holds the auxiliary, corpus-derived context the richer
// feature families need alongside the bare configuration: per-sentence
// punctuation/quote bookkeeping and corpus-wide entity-lemma statistics
// (spec.md §4.5).
type Extractor struct {
	Config *featconf.Config
	Attrs  *featconf.AttrRegistry
	Info   *corpus.SentenceInfo
	Global *corpus.GlobalInfo

	// childPunct memoizes the leftmost/rightmost child-punctuation check
	// per anchor position (TokenPath.Root) for the lifetime of one Extract call's chain
	// walk (spec.md §4.5 "Child-punctuation ... per-token memoization").
	childPunct map[int]string
}

// NewExtractor returns an Extractor ready to extract over sentences
// described by cfg, using attrs to resolve attribute letters.
func NewExtractor(cfg *featconf.Config, attrs *featconf.AttrRegistry) *Extractor {
	if attrs == nil {
		attrs = cfg.Attrs
	}
	return &Extractor{Config: cfg, Attrs: attrs}
}

// Extract turns one configuration into a sparse bag of predicate strings:
// the boundary sentinels, the compiled template chains in
// Config.Feature/SplitFeature, and every ambient feature family Config's
// flags enable (spec.md §4.5). These are raw predicates, not yet feature
// ids — see Next for the predicate→id step (spec.md §4.4).
func (x *Extractor) Extract(s *state.State) []string {
	var ctx []string
	x.childPunct = make(map[int]string)
	resolve := byID(s)

	empty := len(s.Stack) == 1
	if empty {
		ctx = append(ctx, "(")
		if x.Config.CompositeActions {
			return ctx
		}
	}
	if _, ok := s.Next(); !ok {
		ctx = append(ctx, ")")
	}

	for _, spec := range x.Config.Feature {
		if pred, ok := x.renderChain(s, spec, resolve); ok {
			ctx = append(ctx, pred)
			ctx = append(ctx, x.childPunctuation(s, spec)...)
		}
	}
	if x.Config.SplitFeature != nil {
		if pred, ok := x.renderChain(s, x.Config.SplitFeature, resolve); ok {
			ctx = append(ctx, "SF"+pred)
		}
	}

	if len(s.Extracted) > 0 {
		last := s.Extracted[len(s.Extracted)-1]
		ctx = append(ctx, "EL"+lemmaOf(last), "EW"+last.Form, "EP"+last.POS)
	}

	top, hasTop := s.Top()
	n0, hasN0 := s.Next()

	if x.Config.MorphoAgreement && s.Lang != nil && hasTop && hasN0 {
		ctx = append(ctx, x.morphoAgreement(s, top, n0)...)
	}

	if x.Config.StackSize && len(s.Stack) > 2 {
		ctx = append(ctx, "((")
	}
	if x.Config.InputSize && len(s.Input) > 1 {
		ctx = append(ctx, "))")
	}
	if x.Config.VerbCount && s.Lang != nil {
		count := 0
		for _, tok := range s.Stack[1:] {
			if s.Lang.IsVerb(tok) {
				count++
			}
		}
		ctx = append(ctx, fmt.Sprintf("VC%d", count))
	}

	if hasN0 && x.Info != nil {
		ctx = append(ctx, x.punctuationContext(n0)...)
	}

	prefix := "a"
	if x.Config.Legacy() {
		prefix = "A"
	}
	cur := s.Previous
	for i := 0; i < x.Config.PastActions && cur != nil; i++ {
		ctx = append(ctx, fmt.Sprintf("%s%d%s", prefix, i, cur.Action))
		cur = cur.Previous
	}

	if x.Config.WordDistance && hasTop && hasN0 {
		ctx = append(ctx, fmt.Sprintf("WD%d", wordDistance(top, n0)))
	}

	if x.Config.UseChildPunct {
		ctx = append(ctx, x.useChildPunct(top, hasTop, n0, hasN0)...)
	}

	if x.Config.PrepChildEntityType && x.Global != nil && s.Lang != nil {
		if hasTop {
			for _, c := range top.Right {
				if s.Lang.IsNoun(c) {
					if et := x.Global.EntityType(lemmaOf(c)); et != "" {
						ctx = append(ctx, "1"+et)
					}
				}
			}
		}
		if hasN0 {
			for _, c := range n0.Left {
				if s.Lang.IsNoun(c) {
					if et := x.Global.EntityType(lemmaOf(c)); et != "" {
						ctx = append(ctx, et+"0")
					}
				}
			}
		}
	}

	if !x.Config.CompositeActions && hasN0 {
		switch s.Action.Head() {
		case 'R', 'r':
			if len(n0.Left) > 0 {
				ctx = append(ctx, "d"+n0.Left[len(n0.Left)-1].POS+n0.POS)
			}
		case 'L', 'l':
			if len(n0.Right) > 0 {
				ctx = append(ctx, "D"+n0.Right[len(n0.Right)-1].POS+n0.POS)
			}
		}
	}

	if x.Config.SecondOrder {
		ctx = append(ctx, secondOrderPairs(ctx)...)
	}

	return ctx
}

// morphoAgreement implements spec.md §4.5's morphological (dis)agreement
// family: disagreement between top and next is reported directly, and
// when they agree, disagreement one or two tokens further into the input
// is reported instead.
func (x *Extractor) morphoAgreement(s *state.State, top, n0 *token.Graph) []string {
	var tags []string
	if s.Lang.MorphoLeft(top.POS) || s.Lang.MorphoRight(n0.POS) {
		return tags
	}
	numAgree := s.Lang.NumbAgree(top.Morpho.Number, n0.Morpho.Number)
	gendAgree := s.Lang.GendAgree(top.Morpho.Gender, n0.Morpho.Gender)
	if !numAgree {
		tags = append(tags, "!=N")
	}
	if !gendAgree {
		tags = append(tags, "!=G")
	}
	if numAgree && gendAgree {
		if n1, ok := s.NextAt(1); ok && !agrees(s, n0, n1) {
			tags = append(tags, "=NG!1")
		}
		if n2, ok := s.NextAt(2); ok && !agrees(s, n0, n2) {
			tags = append(tags, "=NG!2")
		}
	}
	return tags
}

func agrees(s *state.State, a, b *token.Graph) bool {
	return s.Lang.NumbAgree(a.Morpho.Number, b.Morpho.Number) &&
		s.Lang.GendAgree(a.Morpho.Gender, b.Morpho.Gender)
}

// punctuationContext implements spec.md §4.5's punctuation context
// family: the cumulative punctuation count one token behind next decides
// InPunct/PunctCount, and next's own quote flag decides the in-quote
// marker.
func (x *Extractor) punctuationContext(n0 *token.Graph) []string {
	var tags []string
	idx := n0.ID - 2
	if idx >= 0 && idx < len(x.Info.PunctCount) {
		count := x.Info.PunctCount[idx]
		if x.Config.InPunct && count%2 == 1 {
			tags = append(tags, ".")
		}
		if x.Config.PunctCount && count != 0 {
			tags = append(tags, fmt.Sprintf(".%d", count))
		}
	}
	qIdx := n0.ID - 1
	if x.Config.InQuotes && qIdx >= 0 && qIdx < len(x.Info.InQuotes) && x.Info.InQuotes[qIdx] {
		tags = append(tags, `0"`)
	}
	return tags
}

// useChildPunct implements spec.md §4.5's UseChildPunct family: the first
// punctuation child found, checking top's children before next's,
// decides which single marker is reported.
func (x *Extractor) useChildPunct(top *token.Graph, hasTop bool, n0 *token.Graph, hasN0 bool) []string {
	if hasTop {
		for _, c := range top.Left {
			if corpus.IsPunct(c.Form) {
				return []string{"1.<" + c.Form}
			}
		}
		for _, c := range top.Right {
			if corpus.IsPunct(c.Form) {
				return []string{"1.>" + c.Form}
			}
		}
	}
	if hasN0 {
		for _, c := range n0.Left {
			if corpus.IsPunct(c.Form) {
				return []string{".<0" + c.Form}
			}
		}
		for _, c := range n0.Right {
			if corpus.IsPunct(c.Form) {
				return []string{".>0" + c.Form}
			}
		}
	}
	return nil
}

// nonWordASCII reproduces the original's bug-compatible child-punctuation
// character class (spec.md §6, §9 "Design Notes"): the unintended wide
// ASCII range 0x5F-0x7A ("_-z") is preserved deliberately rather than
// corrected, since the features a trained model already relies on were
// extracted with it in place.
var nonWordASCII = regexp.MustCompile(`^[^$0-9_\-zA-Z]+$`)

// childPunctuation implements spec.md §4.5's child-punctuation family,
// triggered only by a single-element chain anchored directly on a stack
// or input position with no path hop: it looks at the anchor token's
// leftmost and rightmost children for a form made entirely of
// nonWordASCII punctuation and reports which side it fell on, with the
// bracket on the side UnambiguousFeatures puts the path code, memoized
// per anchor position so a chain list anchored repeatedly at the same
// position only contributes once.
func (x *Extractor) childPunctuation(s *state.State, spec *featconf.FeatureSpec) []string {
	if spec.Next != nil || spec.Path.Length() != 0 {
		return nil
	}
	n := spec.Path.Root
	if cached, ok := x.childPunct[n]; ok {
		if cached == "" {
			return nil
		}
		return []string{cached}
	}

	g, ok := anchor(s, n)
	if !ok {
		x.childPunct[n] = ""
		return nil
	}
	abs := n
	if abs < 0 {
		abs = -abs
	}
	tag := ""
	switch {
	case len(g.Left) > 0 && nonWordASCII.MatchString(g.Left[0].Form):
		if x.Config.UnambiguousFeatures {
			tag = fmt.Sprintf("/.%d", abs)
		} else {
			tag = fmt.Sprintf(".%d/", abs)
		}
	case len(g.Right) > 0 && nonWordASCII.MatchString(g.Right[len(g.Right)-1].Form):
		if x.Config.UnambiguousFeatures {
			tag = fmt.Sprintf(`\.%d`, abs)
		} else {
			tag = fmt.Sprintf(`.%d\`, abs)
		}
	}
	x.childPunct[n] = tag
	if tag == "" {
		return nil
	}
	return []string{tag}
}

func lemmaOf(g *token.Graph) string {
	if g.Lemma != "" {
		return g.Lemma
	}
	return g.Form
}

// wordDistance implements spec.md §4.5's focus-word distance family.
func wordDistance(top, n0 *token.Graph) int {
	d := n0.ID - top.ID
	if d < 0 {
		d = -d
	}
	d--
	if d < 0 {
		d = 0
	}
	if d > 4 {
		d = 4
	}
	return d
}

// secondOrderPairs implements spec.md §4.5's second-order family: every
// unordered pair drawn from the predicates already emitted this call,
// rendered "min#max" so the pair reads the same regardless of emission
// order.
func secondOrderPairs(emitted []string) []string {
	var pairs []string
	for i := 0; i < len(emitted); i++ {
		for j := i + 1; j < len(emitted); j++ {
			a, b := emitted[i], emitted[j]
			if a > b {
				a, b = b, a
			}
			pairs = append(pairs, a+"#"+b)
		}
	}
	sort.Strings(pairs)
	return pairs
}

// renderChain walks one compiled FeatureSpec chain against the current
// configuration, concatenating every linked element's resolved predicate
// substring. It returns ok=false the moment any element's anchor, path,
// or attribute lookup fails — a broken chain contributes nothing rather
// than a partial predicate (spec.md §4.5 "Broken chains ... abort the
// chain silently").
func (x *Extractor) renderChain(s *state.State, spec *featconf.FeatureSpec, resolve func(int) (*token.Graph, bool)) (string, bool) {
	var b strings.Builder
	for cur := spec; cur != nil; cur = cur.Next {
		g, ok := anchor(s, cur.Path.Root)
		if !ok {
			return "", false
		}
		target := g
		if cur.Path.Length() > 0 {
			walked := cur.Path.Follow(anchorNode{g, resolve})
			if walked == nil {
				return "", false
			}
			target = walked.(anchorNode).g
		}
		val, ok := target.Attr(cur.Attribute)
		if !ok {
			return "", false
		}
		letter := x.letterFor(cur.Attribute)
		n := cur.Path.Root
		if n < 0 {
			n = -n
		}
		path := cur.Path.Code()
		if x.Config.UnambiguousFeatures {
			fmt.Fprintf(&b, "%s%d%c%s", path, n, letter, val)
		} else {
			fmt.Fprintf(&b, "%d%c%s%s", n, letter, path, val)
		}
	}
	return b.String(), true
}

func (x *Extractor) letterFor(attr string) byte {
	if x.Attrs == nil {
		x.Attrs = featconf.NewAttrRegistry()
	}
	return x.Attrs.Letter(attr)
}
