// Package featconf compiles and loads the feature-template and
// configuration-flag surface of spec.md §2 item 3-4 ("FeatureConfig",
// "FeatureSpec / TokenPath") and §6 ("FeatureConfig options"), grounded on
// the teacher's template compiler (alg/transition/genericextractor.go,
// nlp/parser/dependency/transition/simple_features.go) and on the
// original's TokenPath/FeatureSpec machinery (State.cpp tokenFeatures).
package featconf

import (
	"fmt"
	"strconv"
)

// DirCodeAlphabet lists every byte a path code can be built from — used by
// the classifier-facing #UNKNOWN fallback (spec.md §4.4) to find where a
// predicate's path prefix ends.
const DirCodeAlphabet = "lrh2"

// Direction is one hop of a TokenPath: follow the left or right child list,
// or the head link. Second selects the *next* child/head-of-head instead
// of the first (mirrors the teacher's "l"/"l2"/"h"/"h2" addressing).
type Direction struct {
	Side   byte // 'l', 'r', or 'h'
	Second bool
}

func (d Direction) code() string {
	if d.Second {
		return string(d.Side) + "2"
	}
	return string(d.Side)
}

// TokenPath anchors a feature template to a stack or input position and
// then walks a fixed sequence of Directions from it (spec.md §2 item 4).
//
// Root < 0 addresses the stack counting from the top (-1 = top, -2 =
// second from top, ...); Root >= 0 addresses the input counting from next
// (0 = next, 1 = the token after next, ...) — same convention the
// original's tokenFeatures uses for tp.root.
type TokenPath struct {
	Root int
	Dirs []Direction
}

// Length reports how many hops the path walks past its anchor.
func (p *TokenPath) Length() int {
	if p == nil {
		return 0
	}
	return len(p.Dirs)
}

// Code returns the path's direction-code string, e.g. "l" or "l2h", used
// as the path prefix in the unambiguous predicate layout (spec.md §4.5).
func (p *TokenPath) Code() string {
	if p == nil {
		return ""
	}
	var b []byte
	for _, d := range p.Dirs {
		b = append(b, d.code()...)
	}
	return string(b)
}

// Node is anything a path can be anchored on and walked across: a tree
// node plus a way to resolve another node by sentence id, needed for the
// 'h' (head) hop.
type Node interface {
	ID() int
	LeftChild(n int) (Node, bool)
	RightChild(n int) (Node, bool)
	Head() (Node, bool)
}

// Follow walks p.Dirs starting from anchor, returning nil if any hop runs
// off the edge of the tree (spec.md §4.5 "Broken chains ... abort the
// chain silently").
func (p *TokenPath) Follow(anchor Node) Node {
	cur := anchor
	for _, d := range p.Dirs {
		var ok bool
		switch d.Side {
		case 'l':
			idx := 0
			if d.Second {
				idx = 1
			}
			cur, ok = cur.LeftChild(idx)
		case 'r':
			idx := 0
			if d.Second {
				idx = 1
			}
			cur, ok = cur.RightChild(idx)
		case 'h':
			cur, ok = cur.Head()
			if ok && d.Second {
				cur, ok = cur.Head()
			}
		default:
			ok = false
		}
		if !ok || cur == nil {
			return nil
		}
	}
	return cur
}

// FeatureSpec is a compiled feature template: an attribute name plus a
// TokenPath, optionally chained to Next so that multiple token references
// concatenate into one compound predicate (spec.md §2 item 4, §4.5).
type FeatureSpec struct {
	Attribute string
	Path      *TokenPath
	Next      *FeatureSpec
}

// AttrRegistry assigns a stable letter identifier to each attribute name a
// feature template can reference, mirroring the original's
// conf_features::featureIndex table. Built-ins are seeded in a fixed order
// so "A"+index matches across runs; unknown names are assigned the next
// free letter on first use.
type AttrRegistry struct {
	index map[string]int
	names []string
}

// NewAttrRegistry seeds a registry with the three builtin attributes every
// TokenGraph exposes directly, in the order the original source does.
func NewAttrRegistry() *AttrRegistry {
	r := &AttrRegistry{index: make(map[string]int, 8)}
	for _, name := range []string{"form", "pos", "lemma"} {
		r.Index(name)
	}
	return r
}

// Index returns the stable position of name, assigning one if name hasn't
// been seen before.
func (r *AttrRegistry) Index(name string) int {
	if i, ok := r.index[name]; ok {
		return i
	}
	i := len(r.names)
	r.index[name] = i
	r.names = append(r.names, name)
	return i
}

// Letter returns the single-character feature-type identifier for name
// ('A' + index), matching the original's "char featId = 'A' + attrIndex".
func (r *AttrRegistry) Letter(name string) byte {
	return byte('A' + r.Index(name))
}

// ParsePath parses the compact anchor+path syntax the teacher's templates
// use: "S<k>" or "N<k>" (single-digit k — the classifier-side #UNKNOWN
// fallback assumes this, spec.md §4.4) optionally followed by one or more
// direction hops ("l", "l2", "r", "r2", "h", "h2"). Examples: "S0",
// "N1", "S0l", "S0l2h".
func ParsePath(spec string) (*TokenPath, error) {
	if len(spec) < 2 {
		return nil, fmt.Errorf("featconf: path %q too short", spec)
	}
	var root int
	switch spec[0] {
	case 'S':
		k, err := strconv.Atoi(string(spec[1]))
		if err != nil {
			return nil, fmt.Errorf("featconf: bad stack offset in %q: %w", spec, err)
		}
		root = -(k + 1)
	case 'N':
		k, err := strconv.Atoi(string(spec[1]))
		if err != nil {
			return nil, fmt.Errorf("featconf: bad input offset in %q: %w", spec, err)
		}
		root = k
	default:
		return nil, fmt.Errorf("featconf: path %q must start with S or N", spec)
	}

	var dirs []Direction
	for i := 2; i < len(spec); i++ {
		switch spec[i] {
		case 'l', 'r', 'h':
			d := Direction{Side: spec[i]}
			if i+1 < len(spec) && spec[i+1] == '2' {
				d.Second = true
				i++
			}
			dirs = append(dirs, d)
		default:
			return nil, fmt.Errorf("featconf: unknown direction byte %q in %q", spec[i], spec)
		}
	}
	return &TokenPath{Root: root, Dirs: dirs}, nil
}

// CompileChain compiles a "+"-joined sequence of "<path>:<attribute>"
// template elements into a linked FeatureSpec chain, e.g.
// "S0:pos+N0:pos" anchors on stack-top POS concatenated with next's POS.
func CompileChain(template string) (*FeatureSpec, error) {
	var head, tail *FeatureSpec
	start := 0
	for i := 0; i <= len(template); i++ {
		if i < len(template) && template[i] != '+' {
			continue
		}
		elem := template[start:i]
		start = i + 1
		spec, err := compileElement(elem)
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = spec
		} else {
			tail.Next = spec
		}
		tail = spec
	}
	return head, nil
}

func compileElement(elem string) (*FeatureSpec, error) {
	colon := -1
	for i := 0; i < len(elem); i++ {
		if elem[i] == ':' {
			colon = i
			break
		}
	}
	if colon < 0 {
		return nil, fmt.Errorf("featconf: template element %q missing ':attribute'", elem)
	}
	path, err := ParsePath(elem[:colon])
	if err != nil {
		return nil, err
	}
	return &FeatureSpec{Attribute: elem[colon+1:], Path: path}, nil
}
