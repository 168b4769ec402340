package translate

import (
	"fmt"
	"sort"
	"strings"
)

// Pair identifies a source/target language combination.
type Pair struct {
	Source string
	Target string
}

// ParsePair parses "en-es" style package codes.
func ParsePair(s string) (Pair, error) {
	source, target, ok := strings.Cut(s, "-")
	if !ok || source == "" || target == "" {
		return Pair{}, fmt.Errorf("invalid language pair %q, want \"source-target\"", s)
	}
	return Pair{Source: source, Target: target}, nil
}

func (p Pair) String() string {
	return p.Source + "-" + p.Target
}

// Catalog is the immutable set of language pairs the service accepts.
// Built once at startup from configuration.
type Catalog struct {
	pairs map[Pair]struct{}
}

// NewCatalog parses the configured package codes into a catalog.
func NewCatalog(packages []string) (*Catalog, error) {
	pairs := make(map[Pair]struct{}, len(packages))
	for _, pkg := range packages {
		pair, err := ParsePair(pkg)
		if err != nil {
			return nil, err
		}
		pairs[pair] = struct{}{}
	}
	return &Catalog{pairs: pairs}, nil
}

// Supports reports whether the pair is configured.
func (c *Catalog) Supports(pair Pair) bool {
	_, ok := c.pairs[pair]
	return ok
}

// List returns the configured package codes, sorted.
func (c *Catalog) List() []string {
	out := make([]string, 0, len(c.pairs))
	for pair := range c.pairs {
		out = append(out, pair.String())
	}
	sort.Strings(out)
	return out
}
