package featconf

import (
	"strings"
	"testing"
)

func TestLoadYAMLGroupsAndOptions(t *testing.T) {
	doc := `
options:
  ArcEager: "true"
  StackSize: "false"
groups:
  - name: lexical
    templates:
      - "S0:form"
      - "N0:form"
  - name: pair
    templates:
      - "S0:pos+N0:pos"
`
	c, err := LoadYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if !c.ArcEager {
		t.Error("ArcEager option not applied")
	}
	if c.StackSize {
		t.Error("StackSize option not applied")
	}
	if len(c.Feature) != 3 {
		t.Fatalf("Feature count = %d, want 3", len(c.Feature))
	}
	if c.Feature[2].Next == nil {
		t.Error("pair group template did not compile as a two-element chain")
	}
}

func TestLoadYAMLRejectsBadTemplate(t *testing.T) {
	doc := `
groups:
  - name: bad
    templates:
      - "nopath"
`
	if _, err := LoadYAML(strings.NewReader(doc)); err == nil {
		t.Error("LoadYAML should reject a template missing ':attribute'")
	}
}
