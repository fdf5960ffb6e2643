package industry

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defs/industries.yaml
var defaultIndustryDefs []byte

// Default labels for symbols not present in the table.
const (
	DefaultIndustry = "综合"
	DefaultTheme    = "综合板块"
)

// Resolver is the immutable symbol → peer-group lookup table. Symbol
// matching is exact and case-sensitive, market suffix included
// (e.g. "AAPL.US").
type Resolver struct {
	bySymbol   map[string]Mapping
	benchmarks []string // broad-market peers for the default mapping
}

// NewResolver builds a resolver from explicit mappings plus the
// benchmark symbols appended to every default mapping.
func NewResolver(mappings []Mapping, benchmarks []string) (*Resolver, error) {
	r := &Resolver{
		bySymbol:   make(map[string]Mapping, len(mappings)),
		benchmarks: append([]string(nil), benchmarks...),
	}

	for _, m := range mappings {
		if m.Symbol == "" {
			return nil, fmt.Errorf("industry mapping with empty symbol")
		}
		if _, exists := r.bySymbol[m.Symbol]; exists {
			return nil, fmt.Errorf("industry mapping %q: duplicate symbol", m.Symbol)
		}
		r.bySymbol[m.Symbol] = m
	}

	return r, nil
}

// DefaultResolver builds a resolver from the embedded default table.
func DefaultResolver() (*Resolver, error) {
	mappings, benchmarks, err := LoadDefaultMappings()
	if err != nil {
		return nil, err
	}
	return NewResolver(mappings, benchmarks)
}

// LoadDefaultMappings parses the embedded industry table.
func LoadDefaultMappings() ([]Mapping, []string, error) {
	var doc struct {
		Benchmarks []string  `yaml:"benchmarks"`
		Mappings   []Mapping `yaml:"mappings"`
	}
	if err := yaml.Unmarshal(defaultIndustryDefs, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse embedded industry mappings: %w", err)
	}
	return doc.Mappings, doc.Benchmarks, nil
}

// Resolve returns the mapping for a symbol. Misses return the default
// mapping: generic industry/theme labels and a peer list of the queried
// symbol followed by the configured broad-market benchmarks. The
// returned peer slice is always a fresh copy, so callers may truncate
// or reorder it freely.
func (r *Resolver) Resolve(symbol string) Mapping {
	if m, ok := r.bySymbol[symbol]; ok {
		m.Peers = append([]string(nil), m.Peers...)
		return m
	}

	peers := make([]string, 0, len(r.benchmarks)+1)
	peers = append(peers, symbol)
	for _, b := range r.benchmarks {
		if b != symbol {
			peers = append(peers, b)
		}
	}

	return Mapping{
		Symbol:   symbol,
		Industry: DefaultIndustry,
		Theme:    DefaultTheme,
		Peers:    peers,
	}
}

// Known reports whether a symbol has an explicit mapping.
func (r *Resolver) Known(symbol string) bool {
	_, ok := r.bySymbol[symbol]
	return ok
}

// Symbols returns every explicitly mapped symbol.
func (r *Resolver) Symbols() []string {
	out := make([]string, 0, len(r.bySymbol))
	for s := range r.bySymbol {
		out = append(out, s)
	}
	return out
}
