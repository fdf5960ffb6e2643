package factors

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// factorOverridesSchema backs server-supplied definition overrides. The
// table is read exactly once at startup and merged into the immutable
// registry snapshot; nothing writes to it at runtime.
const factorOverridesSchema = `
CREATE TABLE IF NOT EXISTS factor_overrides (
	key         TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL,
	min         REAL,
	max         REAL,
	normal_low  REAL,
	normal_high REAL,
	unit        TEXT NOT NULL DEFAULT '',
	is_percent  INTEGER NOT NULL DEFAULT 0,
	inverse     INTEGER NOT NULL DEFAULT 0
)`

// OverrideRepository reads factor definition overrides from the
// analysis database.
type OverrideRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewOverrideRepository creates the repository and ensures the schema
// exists.
func NewOverrideRepository(db *sql.DB, log zerolog.Logger) (*OverrideRepository, error) {
	if _, err := db.Exec(factorOverridesSchema); err != nil {
		return nil, fmt.Errorf("failed to create factor_overrides schema: %w", err)
	}
	return &OverrideRepository{
		db:  db,
		log: log.With().Str("repository", "factor_overrides").Logger(),
	}, nil
}

// LoadAll returns every configured override as a full definition.
func (r *OverrideRepository) LoadAll() ([]FactorDefinition, error) {
	rows, err := r.db.Query(`
		SELECT key, display_name, description, category,
		       min, max, normal_low, normal_high,
		       unit, is_percent, inverse
		FROM factor_overrides
		ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query factor overrides: %w", err)
	}
	defer rows.Close()

	var defs []FactorDefinition
	for rows.Next() {
		var (
			def                         FactorDefinition
			category                    string
			min, max, normLow, normHigh sql.NullFloat64
			isPercent, inverse          int
		)
		if err := rows.Scan(
			&def.Key, &def.DisplayName, &def.Description, &category,
			&min, &max, &normLow, &normHigh,
			&def.Unit, &isPercent, &inverse,
		); err != nil {
			return nil, fmt.Errorf("failed to scan factor override: %w", err)
		}

		def.Category = Category(category)
		def.Min = nullableFloat(min)
		def.Max = nullableFloat(max)
		def.NormalLow = nullableFloat(normLow)
		def.NormalHigh = nullableFloat(normHigh)
		def.IsPercent = isPercent != 0
		def.Inverse = inverse != 0

		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate factor overrides: %w", err)
	}

	r.log.Debug().Int("count", len(defs)).Msg("Loaded factor definition overrides")
	return defs, nil
}

// MergeOverrides layers overrides on top of the default definitions.
// An override with a known key replaces the default wholesale; an
// override with a new key is appended after the defaults.
func MergeOverrides(defaults, overrides []FactorDefinition) []FactorDefinition {
	if len(overrides) == 0 {
		return defaults
	}

	byKey := make(map[string]FactorDefinition, len(overrides))
	for _, o := range overrides {
		byKey[o.Key] = o
	}

	merged := make([]FactorDefinition, 0, len(defaults)+len(overrides))
	for _, def := range defaults {
		if o, ok := byKey[def.Key]; ok {
			merged = append(merged, o)
			delete(byKey, def.Key)
		} else {
			merged = append(merged, def)
		}
	}
	for _, o := range overrides {
		if _, pending := byKey[o.Key]; pending {
			merged = append(merged, o)
		}
	}

	return merged
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
