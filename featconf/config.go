package featconf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Config is the parser's tunable flag surface (spec.md §6) plus the
// compiled feature templates that drive extraction. Field names follow
// the original's FeatureConfig member names; the defaults below
// reproduce its constructor exactly, including the options whose
// behavior is a plain on/off switch rather than a window size —
// StackSize and InputSize only ever gate the "((" / "))" global
// structure sentinels, they are not counts.
type Config struct {
	Feature             []*FeatureSpec
	Features            []string
	ArcEager            bool
	SplitFeature        *FeatureSpec
	ClosestChildren     bool
	PrepChildEntityType bool
	StackSize           bool
	InputSize           bool
	InPunct             bool
	InQuotes            bool
	VerbCount           bool
	UseChildPunct       bool
	PastActions         int
	WordDistance        bool
	PunctCount          bool
	MorphoAgreement     bool
	LexChildNonWord     bool
	SingleRoot          bool
	CompositeActions    bool
	SecondOrder         bool
	RightToLeft         bool
	UnambiguousFeatures bool
	Version             string
	LexCutoff           int

	Attrs *AttrRegistry
}

// currentFileVersion is the value Version compares against to decide
// whether history features use the legacy "A<i>" spelling or the
// current "a<i>" one (spec.md §4.5 "History").
const currentFileVersion = "1.1.2"

// Legacy reports whether c.Version selects the legacy history-feature
// spelling.
func (c *Config) Legacy() bool {
	return c.Version != currentFileVersion
}

// Default returns a Config with every option at the value the original's
// FeatureConfig constructor assigns it.
func Default() *Config {
	return &Config{
		ArcEager:            false,
		ClosestChildren:     false,
		PrepChildEntityType: false,
		StackSize:           true,
		InputSize:           false,
		InPunct:             false,
		InQuotes:            false,
		VerbCount:           true,
		UseChildPunct:       true,
		PastActions:         1,
		WordDistance:        true,
		PunctCount:          true,
		MorphoAgreement:     false,
		LexChildNonWord:     true,
		SingleRoot:          true,
		CompositeActions:    true,
		SecondOrder:         false,
		RightToLeft:         false,
		UnambiguousFeatures: true,
		Version:             currentFileVersion,
		LexCutoff:           0,
		Attrs:               NewAttrRegistry(),
	}
}

// Load reads key=value pairs (one per line, "#" starts a comment, blank
// lines ignored) and applies them to a Default Config — the same shape as
// the teacher's util/conf/conf.go reader, generalized from string-only
// values to the typed fields FeatureConfig actually needs.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, fmt.Errorf("featconf: line %d: missing '=' in %q", lineNo, line)
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		if err := c.set(key, val); err != nil {
			return nil, fmt.Errorf("featconf: line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) set(key, val string) error {
	switch key {
	case "ArcEager":
		return setBool(&c.ArcEager, val)
	case "SplitFeature":
		spec, err := CompileChain(val)
		if err != nil {
			return err
		}
		c.SplitFeature = spec
	case "ClosestChildren":
		return setBool(&c.ClosestChildren, val)
	case "PrepChildEntityType":
		return setBool(&c.PrepChildEntityType, val)
	case "StackSize":
		return setBool(&c.StackSize, val)
	case "InputSize":
		return setBool(&c.InputSize, val)
	case "InPunct":
		return setBool(&c.InPunct, val)
	case "InQuotes":
		return setBool(&c.InQuotes, val)
	case "VerbCount":
		return setBool(&c.VerbCount, val)
	case "UseChildPunct":
		return setBool(&c.UseChildPunct, val)
	case "PastActions":
		return setInt(&c.PastActions, val)
	case "WordDistance":
		return setBool(&c.WordDistance, val)
	case "PunctCount":
		return setBool(&c.PunctCount, val)
	case "MorphoAgreement":
		return setBool(&c.MorphoAgreement, val)
	case "LexChildNonWord":
		return setBool(&c.LexChildNonWord, val)
	case "SingleRoot":
		return setBool(&c.SingleRoot, val)
	case "CompositeActions":
		return setBool(&c.CompositeActions, val)
	case "SecondOrder":
		return setBool(&c.SecondOrder, val)
	case "RightToLeft":
		return setBool(&c.RightToLeft, val)
	case "UnambiguousFeatures":
		return setBool(&c.UnambiguousFeatures, val)
	case "Version":
		c.Version = val
	case "LexCutoff":
		return setInt(&c.LexCutoff, val)
	case "Feature":
		spec, err := CompileChain(val)
		if err != nil {
			return err
		}
		c.Feature = append(c.Feature, spec)
	case "Features":
		// shorthand: one bare attribute name per template, no path chain.
		c.Features = append(c.Features, strings.Fields(val)...)
		for _, attr := range strings.Fields(val) {
			c.Feature = append(c.Feature, &FeatureSpec{Attribute: attr})
		}
	default:
		return fmt.Errorf("unknown option %q", key)
	}
	return nil
}

func setBool(dst *bool, val string) error {
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fmt.Errorf("bad bool %q: %w", val, err)
	}
	*dst = b
	return nil
}

func setInt(dst *int, val string) error {
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("bad int %q: %w", val, err)
	}
	*dst = n
	return nil
}
