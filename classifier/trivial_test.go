package classifier

import (
	"testing"

	"github.com/desr-go/depparse/action"
)

func TestTrivialLearnsSeparableEvents(t *testing.T) {
	m := NewTrivial()
	shift := action.Action("S")
	left := action.Action("L")

	for i := 0; i < 5; i++ {
		m.Train(Event{Action: shift, Features: Context{1, 2}})
		m.Train(Event{Action: left, Features: Context{3, 4}})
	}

	if got, ok := m.Best(Context{1, 2}); !ok || got != shift {
		t.Errorf("Best(1,2) = (%v, %v), want (%v, true)", got, ok, shift)
	}
	if got, ok := m.Best(Context{3, 4}); !ok || got != left {
		t.Errorf("Best(3,4) = (%v, %v), want (%v, true)", got, ok, left)
	}
}

func TestTrivialBestEmptyModel(t *testing.T) {
	m := NewTrivial()
	if _, ok := m.Best(Context{9}); ok {
		t.Error("Best() on an untrained model should report false")
	}
}

func TestTrivialCopyIsIndependent(t *testing.T) {
	m := NewTrivial()
	m.Train(Event{Action: action.Action("S"), Features: Context{1}})

	clone := m.Copy()
	clone.Train(Event{Action: action.Action("S"), Features: Context{7, 7, 7}})

	origScores := m.Score(Context{7})
	if origScores[action.Action("S")] != 0 {
		t.Error("Copy() aliased underlying weight map")
	}
}
