package action

import "testing"

func TestMakeComposite(t *testing.T) {
	table := NewTable()
	tests := []struct {
		composite bool
		base      string
		label     string
		want      Action
	}{
		{true, "L", "det", "Ldet"},
		{true, "R", "nsubj", "Rnsubj"},
		{false, "L", "det", "L"},
		{false, "D", "nsubj", "Dnsubj"},
		{true, "r2", "amod", "r2amod"},
	}
	for _, tt := range tests {
		got := Make(table, tt.composite, tt.base, tt.label)
		if got != tt.want {
			t.Errorf("Make(%v, %q, %q) = %q, want %q", tt.composite, tt.base, tt.label, got, tt.want)
		}
	}
}

func TestHeadAndDepth(t *testing.T) {
	tests := []struct {
		a         Action
		head      byte
		depth     int
		wantLabel string
	}{
		{"S", 'S', 0, ""},
		{"l3amod", 'l', 3, "amod"},
		{"r2", 'r', 2, ""},
		{"Ldet", 'L', 0, "det"},
		{"Dnsubj", 'D', 0, "nsubj"},
	}
	for _, tt := range tests {
		if got := tt.a.Head(); got != tt.head {
			t.Errorf("%q.Head() = %q, want %q", tt.a, got, tt.head)
		}
		if got := tt.a.Depth(); got != tt.depth {
			t.Errorf("%q.Depth() = %d, want %d", tt.a, got, tt.depth)
		}
		if got := tt.a.Label(); got != tt.wantLabel {
			t.Errorf("%q.Label() = %q, want %q", tt.a, got, tt.wantLabel)
		}
	}
}

func TestTableFreezePanics(t *testing.T) {
	table := NewTable()
	table.Intern("S")
	table.Freeze()

	table.Intern("S") // already present, must not panic

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic interning a new action into a frozen table")
		}
	}()
	table.Intern("U")
}
