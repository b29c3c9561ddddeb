package token

import "testing"

func TestNewSentenceAssignsOneBasedIDs(t *testing.T) {
	s := NewSentence(nil, []string{"the", "dog", "barks"})
	for i, tok := range s.Tokens {
		if tok.ID != i+1 {
			t.Errorf("Tokens[%d].ID = %d, want %d", i, tok.ID, i+1)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestReverse(t *testing.T) {
	s := NewSentence(nil, []string{"a", "b", "c"})
	s.Reverse()
	got := []string{s.Tokens[0].Form, s.Tokens[1].Form, s.Tokens[2].Form}
	want := []string{"c", "b", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Reverse()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCopyIsShallowPerNode(t *testing.T) {
	s := NewSentence(nil, []string{"a", "b"})
	clone := s.Copy()
	clone.Tokens[0].HeadID = 5

	if s.Tokens[0].HeadID != 0 {
		t.Errorf("Copy() aliased underlying node: original HeadID = %d, want 0", s.Tokens[0].HeadID)
	}
	if clone.Tokens[0] == s.Tokens[0] {
		t.Error("Copy() must allocate new node pointers")
	}
}
