package feature

import (
	"strings"
	"testing"

	"github.com/desr-go/depparse/action"
	"github.com/desr-go/depparse/featconf"
	"github.com/desr-go/depparse/state"
	"github.com/desr-go/depparse/token"
)

func TestExtractRendersUnambiguousTemplate(t *testing.T) {
	cfg := featconf.Default()
	spec, err := featconf.CompileChain("S0:pos+N0:pos")
	if err != nil {
		t.Fatalf("CompileChain: %v", err)
	}
	cfg.Feature = []*featconf.FeatureSpec{spec}
	cfg.MorphoAgreement = false
	cfg.VerbCount = false
	cfg.WordDistance = false

	sentence := token.NewSentence(nil, []string{"the", "dog"})
	sentence.Tokens[0].POS = "DT"
	sentence.Tokens[1].POS = "NN"

	s := state.New(cfg, sentence)
	s.Apply(action.Intern("S"))

	x := NewExtractor(cfg, nil)
	ctx := x.Extract(s)

	found := false
	for _, pred := range ctx {
		if strings.Contains(pred, "DT") && strings.Contains(pred, "NN") {
			found = true
		}
	}
	if !found {
		t.Errorf("Extract() = %v, want a predicate combining DT and NN", ctx)
	}
}

func TestExtractBrokenChainContributesNothing(t *testing.T) {
	cfg := featconf.Default()
	spec, err := featconf.CompileChain("S1:pos")
	if err != nil {
		t.Fatalf("CompileChain: %v", err)
	}
	cfg.Feature = []*featconf.FeatureSpec{spec}
	cfg.MorphoAgreement = false
	cfg.VerbCount = false
	cfg.WordDistance = false
	// Composite mode returns right after "(" on a root-only stack, before
	// any template is walked.
	cfg.CompositeActions = false

	sentence := token.NewSentence(nil, []string{"only"})
	s := state.New(cfg, sentence)

	x := NewExtractor(cfg, nil)
	ctx := x.Extract(s)
	for _, pred := range ctx {
		// S1:pos would render as "2B<value>" in the unambiguous layout.
		if strings.HasPrefix(pred, "2B") {
			t.Errorf("Extract() produced a predicate from an anchor that doesn't exist: %v", pred)
		}
	}
}

func TestExtractWordDistanceClamped(t *testing.T) {
	cfg := featconf.Default()
	cfg.Feature = nil
	cfg.MorphoAgreement = false
	cfg.VerbCount = false

	sentence := token.NewSentence(nil, []string{"a", "b", "c", "d", "e", "f", "g"})
	s := state.New(cfg, sentence)
	// Force a wide gap between the stack top and the input front directly,
	// rather than walking transitions there, to exercise the clamp itself.
	s.Stack = append(s.Stack, sentence.Tokens[0])
	s.Input = sentence.Tokens[6:]

	x := NewExtractor(cfg, nil)
	ctx := x.Extract(s)
	if !contains(ctx, "WD4") {
		t.Errorf("Extract() = %v, want WD4 (distance clamped to 4)", ctx)
	}
}

func contains(ctx []string, want string) bool {
	for _, c := range ctx {
		if c == want {
			return true
		}
	}
	return false
}
