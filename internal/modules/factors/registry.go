package factors

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defs/factors.yaml
var defaultFactorDefs []byte

// Registry is the immutable, process-wide table of factor metadata.
// It is built once at startup and exposes read-only lookups only; there
// is no insert/update/delete path, so it is safe for unbounded
// concurrent use.
type Registry struct {
	byKey map[string]FactorDefinition
	keys  []string // insertion order, for stable listing
}

// NewRegistry builds a registry from a slice of definitions, validating
// each one. Later entries with a duplicate key are rejected rather than
// silently replacing earlier ones.
func NewRegistry(defs []FactorDefinition) (*Registry, error) {
	r := &Registry{
		byKey: make(map[string]FactorDefinition, len(defs)),
		keys:  make([]string, 0, len(defs)),
	}

	for _, def := range defs {
		if err := validateDefinition(def); err != nil {
			return nil, fmt.Errorf("factor %q: %w", def.Key, err)
		}
		if _, exists := r.byKey[def.Key]; exists {
			return nil, fmt.Errorf("factor %q: duplicate key", def.Key)
		}
		r.byKey[def.Key] = def
		r.keys = append(r.keys, def.Key)
	}

	return r, nil
}

// DefaultRegistry builds a registry from the embedded default table.
func DefaultRegistry() (*Registry, error) {
	defs, err := LoadDefaultDefinitions()
	if err != nil {
		return nil, err
	}
	return NewRegistry(defs)
}

// LoadDefaultDefinitions parses the embedded factor definition table.
func LoadDefaultDefinitions() ([]FactorDefinition, error) {
	var doc struct {
		Factors []FactorDefinition `yaml:"factors"`
	}
	if err := yaml.Unmarshal(defaultFactorDefs, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse embedded factor definitions: %w", err)
	}
	return doc.Factors, nil
}

// validateDefinition checks a definition's internal consistency. Absent
// bounds are fine (they change evaluation behavior, not validity), but
// whichever of min/normalLow/normalHigh/max are present must be ordered.
func validateDefinition(def FactorDefinition) error {
	if def.Key == "" {
		return fmt.Errorf("empty key")
	}
	if !knownCategories[def.Category] {
		return fmt.Errorf("unknown category %q", def.Category)
	}

	// Verify ordering across every configured adjacent pair:
	// min <= normalLow <= normalHigh <= max.
	ordered := make([]*float64, 0, 4)
	for _, bound := range []*float64{def.Min, def.NormalLow, def.NormalHigh, def.Max} {
		if bound != nil {
			ordered = append(ordered, bound)
		}
	}
	for i := 1; i < len(ordered); i++ {
		if *ordered[i-1] > *ordered[i] {
			return fmt.Errorf("bounds out of order: min/normal_low/normal_high/max must be non-decreasing")
		}
	}

	return nil
}

// Lookup returns the definition for a key. Unknown keys return (nil,
// false), never an error.
func (r *Registry) Lookup(key string) (*FactorDefinition, bool) {
	def, ok := r.byKey[key]
	if !ok {
		return nil, false
	}
	return &def, true
}

// Keys returns all registered factor keys in registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Definitions returns all registered definitions in registration order.
func (r *Registry) Definitions() []FactorDefinition {
	out := make([]FactorDefinition, 0, len(r.keys))
	for _, key := range r.keys {
		out = append(out, r.byKey[key])
	}
	return out
}

// Describe returns the human-readable name and description for a key.
// Unknown keys fall back to the raw key with an empty description.
func (r *Registry) Describe(key string) (displayName, description string) {
	if def, ok := r.Lookup(key); ok {
		return def.DisplayName, def.Description
	}
	return key, ""
}

// Evaluate runs the full evaluation pipeline for a single reading:
// position, classification, display formatting and description. Total
// over any (key, value) combination.
func (r *Registry) Evaluate(key string, value *float64) Evaluation {
	def, _ := r.Lookup(key)

	eval := Evaluation{
		Key:            key,
		Value:          value,
		Formatted:      FormatValue(def, value),
		Position:       NormalizePosition(def, value),
		Classification: ClassifyBand(def, value),
	}
	eval.DisplayName, eval.Description = r.Describe(key)
	if def != nil {
		eval.Category = def.Category
	}

	return eval
}

// EvaluateAll evaluates a batch of readings in one pass. Output order
// is stable regardless of input order: registered keys first in
// registration order, then unknown keys sorted. Duplicate keys keep the
// last reading supplied.
func (r *Registry) EvaluateAll(readings []FactorReading) []Evaluation {
	byKey := make(map[string]*float64, len(readings))
	for _, reading := range readings {
		byKey[reading.Key] = reading.Value
	}

	out := make([]Evaluation, 0, len(byKey))
	seen := make(map[string]bool, len(byKey))
	for _, key := range r.keys {
		if value, ok := byKey[key]; ok {
			out = append(out, r.Evaluate(key, value))
			seen[key] = true
		}
	}

	unknown := make([]string, 0)
	for key := range byKey {
		if !seen[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		out = append(out, r.Evaluate(key, byKey[key]))
	}

	return out
}
