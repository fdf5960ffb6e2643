package industry

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quantdash/quantdash/internal/utils"
)

// industryOverridesSchema backs server-supplied mapping overrides,
// read once at startup. Peers are stored comma-separated in relevance
// order.
const industryOverridesSchema = `
CREATE TABLE IF NOT EXISTS industry_overrides (
	symbol   TEXT PRIMARY KEY,
	industry TEXT NOT NULL,
	theme    TEXT NOT NULL,
	peers    TEXT NOT NULL DEFAULT ''
)`

// OverrideRepository reads industry mapping overrides from the analysis
// database.
type OverrideRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewOverrideRepository creates the repository and ensures the schema
// exists.
func NewOverrideRepository(db *sql.DB, log zerolog.Logger) (*OverrideRepository, error) {
	if _, err := db.Exec(industryOverridesSchema); err != nil {
		return nil, fmt.Errorf("failed to create industry_overrides schema: %w", err)
	}
	return &OverrideRepository{
		db:  db,
		log: log.With().Str("repository", "industry_overrides").Logger(),
	}, nil
}

// LoadAll returns every configured mapping override. A mapping whose
// peer list does not start with its own symbol gets the symbol
// prepended, preserving the first-peer-is-self convention.
func (r *OverrideRepository) LoadAll() ([]Mapping, error) {
	rows, err := r.db.Query(`
		SELECT symbol, industry, theme, peers
		FROM industry_overrides
		ORDER BY symbol
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query industry overrides: %w", err)
	}
	defer rows.Close()

	var mappings []Mapping
	for rows.Next() {
		var (
			m     Mapping
			peers string
		)
		if err := rows.Scan(&m.Symbol, &m.Industry, &m.Theme, &peers); err != nil {
			return nil, fmt.Errorf("failed to scan industry override: %w", err)
		}

		m.Peers = utils.ParseCSV(peers)
		if len(m.Peers) == 0 || m.Peers[0] != m.Symbol {
			m.Peers = append([]string{m.Symbol}, m.Peers...)
		}

		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate industry overrides: %w", err)
	}

	r.log.Debug().Int("count", len(mappings)).Msg("Loaded industry mapping overrides")
	return mappings, nil
}

// MergeOverrides layers overrides on top of the default mappings.
func MergeOverrides(defaults, overrides []Mapping) []Mapping {
	if len(overrides) == 0 {
		return defaults
	}

	bySymbol := make(map[string]Mapping, len(overrides))
	for _, o := range overrides {
		bySymbol[o.Symbol] = o
	}

	merged := make([]Mapping, 0, len(defaults)+len(overrides))
	for _, m := range defaults {
		if o, ok := bySymbol[m.Symbol]; ok {
			merged = append(merged, o)
			delete(bySymbol, m.Symbol)
		} else {
			merged = append(merged, m)
		}
	}
	for _, o := range overrides {
		if _, pending := bySymbol[o.Symbol]; pending {
			merged = append(merged, o)
		}
	}

	return merged
}
