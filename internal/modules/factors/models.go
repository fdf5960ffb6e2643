// Package factors provides the factor evaluation and classification engine.
// It turns raw numeric factor readings produced by the upstream analytics
// service into a normalized visual position, a qualitative classification
// and a display-formatted string. All operations are pure functions over
// immutable configuration built once at startup.
package factors

// Category is the display grouping a factor belongs to. Each definition
// carries exactly one category, resolved at registry construction time.
type Category string

const (
	CategoryMomentum    Category = "momentum"
	CategoryVolatility  Category = "volatility"
	CategoryTechnical   Category = "technical"
	CategoryFundamental Category = "fundamental"
	CategoryMoneyFlow   Category = "money_flow"
	CategoryChip        Category = "chip"
)

// knownCategories is used to validate definitions at registry construction.
var knownCategories = map[Category]bool{
	CategoryMomentum:    true,
	CategoryVolatility:  true,
	CategoryTechnical:   true,
	CategoryFundamental: true,
	CategoryMoneyFlow:   true,
	CategoryChip:        true,
}

// CategoryLabel returns the Chinese display label for a category.
func CategoryLabel(c Category) string {
	switch c {
	case CategoryMomentum:
		return "动量因子"
	case CategoryVolatility:
		return "波动率因子"
	case CategoryTechnical:
		return "技术指标"
	case CategoryFundamental:
		return "基本面因子"
	case CategoryMoneyFlow:
		return "资金流因子"
	case CategoryChip:
		return "筹码因子"
	default:
		return string(c)
	}
}

// FactorDefinition holds the immutable metadata for one factor key.
// Range and band fields are optional: a nil pointer means the bound is
// not configured, which changes evaluation behavior (neutral fallbacks)
// but is never an error.
type FactorDefinition struct {
	Key         string   `json:"key" yaml:"key"`
	DisplayName string   `json:"display_name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`

	// Plausible absolute value range, used for visual positioning.
	Min *float64 `json:"min,omitempty" yaml:"min"`
	Max *float64 `json:"max,omitempty" yaml:"max"`

	// Expected/typical band within the absolute range.
	NormalLow  *float64 `json:"normal_low,omitempty" yaml:"normal_low"`
	NormalHigh *float64 `json:"normal_high,omitempty" yaml:"normal_high"`

	// Formatting hints.
	Unit      string `json:"unit,omitempty" yaml:"unit"`
	IsPercent bool   `json:"is_percent" yaml:"percent"`

	// Inverse indicators are favorable when low and risk signals when
	// high (e.g. drawdown, high-churn factors).
	Inverse bool `json:"inverse" yaml:"inverse"`
}

// FactorReading is a single (key, value) pair supplied per call.
// A nil Value is an explicit "missing" marker.
type FactorReading struct {
	Key   string   `json:"key"`
	Value *float64 `json:"value"`
}

// Evaluation is the full per-factor output consumed by rendering and
// report generation.
type Evaluation struct {
	Key            string         `json:"key"`
	DisplayName    string         `json:"name"`
	Description    string         `json:"description"`
	Category       Category       `json:"category"`
	Value          *float64       `json:"value"`
	Formatted      string         `json:"formatted"`
	Position       float64        `json:"position"`
	Classification Classification `json:"classification"`
}
