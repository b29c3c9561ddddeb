package feature

import (
	"testing"

	"github.com/desr-go/depparse/action"
	"github.com/desr-go/depparse/classifier"
	"github.com/desr-go/depparse/featconf"
	"github.com/desr-go/depparse/state"
	"github.com/desr-go/depparse/token"
)

func TestUnknownVariantUnambiguousLayout(t *testing.T) {
	got, ok := UnknownVariant("l1BDT", true)
	if !ok {
		t.Fatal("UnknownVariant() reported no path+type prefix")
	}
	if want := "l1B#UNKNOWN"; got != want {
		t.Errorf("UnknownVariant(%q, true) = %q, want %q", "l1BDT", got, want)
	}
}

func TestUnknownVariantNonUnambiguousLayout(t *testing.T) {
	got, ok := UnknownVariant("1BlDT", false)
	if !ok {
		t.Fatal("UnknownVariant() reported no path+type prefix")
	}
	if want := "1Bl#UNKNOWN"; got != want {
		t.Errorf("UnknownVariant(%q, false) = %q, want %q", "1BlDT", got, want)
	}
}

func TestUnknownVariantNonTemplatedPredicate(t *testing.T) {
	if _, ok := UnknownVariant("(", true); ok {
		t.Error("UnknownVariant() found a path+type prefix in a boundary sentinel")
	}
	if _, ok := UnknownVariant("WD4", true); ok {
		t.Error("UnknownVariant() found a path+type prefix in a word-distance predicate")
	}
}

func TestExtractorNextResolvesFallsBackAndDrops(t *testing.T) {
	cfg := featconf.Default()
	spec, err := featconf.CompileChain("S0:pos")
	if err != nil {
		t.Fatalf("CompileChain: %v", err)
	}
	cfg.Feature = []*featconf.FeatureSpec{spec}
	cfg.MorphoAgreement = false
	cfg.VerbCount = false
	cfg.WordDistance = false
	cfg.InputSize = false
	cfg.StackSize = false

	sentence := token.NewSentence(nil, []string{"dog"})
	sentence.Tokens[0].POS = "NN"
	s := state.New(cfg, sentence)
	s.Apply(action.Intern("S"))

	x := NewExtractor(cfg, nil)
	preds := x.Extract(s)

	var templated string
	for _, p := range preds {
		if p != "(" && p != ")" {
			templated = p
		}
	}
	if templated == "" {
		t.Fatal("Extract() produced no templated predicate to test against")
	}
	fallback, ok := UnknownVariant(templated, cfg.UnambiguousFeatures)
	if !ok {
		t.Fatalf("UnknownVariant(%q) found no path+type prefix", templated)
	}

	vocab := classifier.NewVocab()
	fallbackID := vocab.Intern(fallback)
	vocab.Freeze()

	ctx := x.Next(s, vocab)

	var sawFallback bool
	for _, id := range ctx {
		if id == fallbackID {
			sawFallback = true
		}
	}
	if !sawFallback {
		t.Errorf("Next() = %v, want the #UNKNOWN fallback id %d for the unseen predicate %q", ctx, fallbackID, templated)
	}
	if len(ctx) != 1 {
		t.Errorf("Next() = %v, want only the fallback id; every other predicate has no vocab entry at all and should be dropped", ctx)
	}
}

func TestExtractorNextDropsUnresolvableMiss(t *testing.T) {
	cfg := featconf.Default()
	cfg.Feature = nil
	cfg.MorphoAgreement = false
	cfg.VerbCount = false
	cfg.WordDistance = false
	cfg.InputSize = false
	cfg.StackSize = false

	sentence := token.NewSentence(nil, []string{"dog"})
	s := state.New(cfg, sentence)

	x := NewExtractor(cfg, nil)
	vocab := classifier.NewVocab()
	vocab.Freeze()

	ctx := x.Next(s, vocab)
	if len(ctx) != 0 {
		t.Errorf("Next() = %v, want every predicate silently dropped against an empty frozen vocabulary", ctx)
	}
}
