package featconf

import (
	"strings"
	"testing"
)

func TestDefaultMatchesOriginalConstructor(t *testing.T) {
	c := Default()
	if c.ArcEager {
		t.Error("ArcEager default should be false")
	}
	if c.ClosestChildren {
		t.Error("ClosestChildren default should be false")
	}
	if !c.StackSize || c.InputSize {
		t.Errorf("StackSize/InputSize = %v/%v, want true/false", c.StackSize, c.InputSize)
	}
	if c.PastActions != 1 {
		t.Errorf("PastActions = %d, want 1", c.PastActions)
	}
	if !c.SingleRoot {
		t.Error("SingleRoot default should be true")
	}
	if !c.CompositeActions {
		t.Error("CompositeActions default should be true")
	}
	if c.Version != currentFileVersion {
		t.Errorf("Version = %q, want %q", c.Version, currentFileVersion)
	}
	if c.Legacy() {
		t.Error("default Version should not select the legacy history spelling")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	input := `
# comment line
ArcEager=true
StackSize=false
Feature=S0:pos+N0:pos
Features=form lemma
`
	c, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.ArcEager {
		t.Error("ArcEager not overridden to true")
	}
	if c.StackSize {
		t.Error("StackSize not overridden to false")
	}
	if len(c.Feature) != 3 {
		t.Fatalf("Feature count = %d, want 3", len(c.Feature))
	}
	if c.Feature[1].Attribute != "form" || c.Feature[2].Attribute != "lemma" {
		t.Errorf("Features shorthand not expanded correctly: %+v", c.Feature[1:])
	}
}

func TestLoadRejectsUnknownOption(t *testing.T) {
	_, err := Load(strings.NewReader("Bogus=1\n"))
	if err == nil {
		t.Error("Load should reject an unknown option key")
	}
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	_, err := Load(strings.NewReader("no equals sign here\n"))
	if err == nil {
		t.Error("Load should reject a line without '='")
	}
}
