package classifier

import (
	"fmt"
	"sync"
)

// Vocab is a concurrent, append-only predicate-string-to-feature-id table —
// the classifier-facing half of the predicate→id pipeline spec.md §4.4
// describes for ParseState.next(). It plays exactly the role for feature
// predicates that action.Table plays for transition names: filled while
// training walks the corpus, then frozen so decode-time lookups are safe
// to share read-only across parser instances (spec.md §5).
type Vocab struct {
	mu     sync.RWMutex
	index  map[string]int
	frozen bool
}

// NewVocab returns an empty, unfrozen vocabulary.
func NewVocab() *Vocab {
	return &Vocab{index: make(map[string]int, 1024)}
}

// Intern records predicate and returns its feature id, assigning the next
// free id on first use. Intern panics if the vocabulary has been frozen
// and predicate is not already present, mirroring action.Table.Intern.
func (v *Vocab) Intern(predicate string) int {
	v.mu.RLock()
	id, ok := v.index[predicate]
	v.mu.RUnlock()
	if ok {
		return id
	}
	if v.frozen {
		panic(fmt.Sprintf("classifier: cannot intern %q into a frozen vocabulary", predicate))
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if id, ok := v.index[predicate]; ok {
		return id
	}
	id = len(v.index)
	v.index[predicate] = id
	return id
}

// Lookup reports predicate's feature id without inserting it.
func (v *Vocab) Lookup(predicate string) (int, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	id, ok := v.index[predicate]
	return id, ok
}

// Freeze marks the vocabulary read-only.
func (v *Vocab) Freeze() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.frozen = true
}

// Len reports how many distinct predicates have been interned.
func (v *Vocab) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.index)
}
