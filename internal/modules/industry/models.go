// Package industry maps traded instrument identifiers to thematic peer
// groups used for comparative analysis. The lookup table is immutable
// after startup; unknown symbols resolve to a default broad-market
// mapping rather than an error.
package industry

// Mapping describes the industry context for one symbol. Peers are
// ordered by relevance; by convention the first element is the symbol
// itself.
type Mapping struct {
	Symbol   string   `json:"symbol" yaml:"symbol"`
	Industry string   `json:"industry" yaml:"industry"`
	Theme    string   `json:"theme" yaml:"theme"`
	Peers    []string `json:"peers" yaml:"peers"`
}
