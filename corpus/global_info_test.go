package corpus

import (
	"testing"

	"github.com/desr-go/depparse/token"
)

func TestGlobalInfoExtractAndClassify(t *testing.T) {
	g := NewGlobalInfo()

	morning := token.NewGraph(1, "morning")
	morning.Lemma = "morning"
	morning.LinkLabel("time")

	paris := token.NewGraph(1, "Paris")
	paris.Lemma = "paris"
	paris.LinkLabel("loc")

	for i := 0; i < 5; i++ {
		g.Extract(&token.Sentence{Tokens: []*token.Graph{morning}})
	}
	g.Extract(&token.Sentence{Tokens: []*token.Graph{paris}})

	if got := g.EntityType("morning"); got != "TIME" {
		t.Errorf("EntityType(morning) = %q, want TIME", got)
	}
	if got := g.EntityType("paris"); got != "LOC" {
		t.Errorf("EntityType(paris) = %q, want LOC", got)
	}
	if got := g.EntityType("unseen"); got != "" {
		t.Errorf("EntityType(unseen) = %q, want \"\"", got)
	}
}

func TestGlobalInfoRequiresDominance(t *testing.T) {
	g := NewGlobalInfo()
	morning := token.NewGraph(1, "dual")
	morning.Lemma = "dual"
	morning.LinkLabel("time")
	loc := token.NewGraph(1, "dual")
	loc.Lemma = "dual"
	loc.LinkLabel("loc")

	g.Extract(&token.Sentence{Tokens: []*token.Graph{morning}})
	g.Extract(&token.Sentence{Tokens: []*token.Graph{loc}})

	if got := g.EntityType("dual"); got != "" {
		t.Errorf("EntityType(dual) = %q, want \"\" when counts are balanced", got)
	}
}
