package factors

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fptr is a shorthand for optional float fields in tests.
func fptr(v float64) *float64 {
	return &v
}

func mustDefaultRegistry(t *testing.T) *Registry {
	t.Helper()
	registry, err := DefaultRegistry()
	require.NoError(t, err)
	return registry
}

func TestNormalizePosition_Momentum5d(t *testing.T) {
	registry := mustDefaultRegistry(t)
	def, ok := registry.Lookup("momentum_5d")
	require.True(t, ok)

	assert.Equal(t, 0.0, NormalizePosition(def, fptr(-0.2)))
	assert.Equal(t, 1.0, NormalizePosition(def, fptr(0.2)))
	assert.Equal(t, 0.5, NormalizePosition(def, fptr(0.0)))
}

func TestNormalizePosition_ClampsOutOfRange(t *testing.T) {
	def := &FactorDefinition{
		Key:      "test",
		Category: CategoryMomentum,
		Min:      fptr(-0.2),
		Max:      fptr(0.2),
	}

	assert.Equal(t, 0.0, NormalizePosition(def, fptr(-5.0)))
	assert.Equal(t, 1.0, NormalizePosition(def, fptr(5.0)))
}

func TestNormalizePosition_MonotonicNonDecreasing(t *testing.T) {
	def := &FactorDefinition{
		Key:      "test",
		Category: CategoryTechnical,
		Min:      fptr(0),
		Max:      fptr(100),
	}

	prev := math.Inf(-1)
	for v := -20.0; v <= 120.0; v += 0.5 {
		pos := NormalizePosition(def, fptr(v))
		assert.GreaterOrEqual(t, pos, 0.0)
		assert.LessOrEqual(t, pos, 1.0)
		assert.GreaterOrEqual(t, pos, prev, "position must be monotonic in value")
		prev = pos
	}
}

func TestNormalizePosition_NeutralFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		def   *FactorDefinition
		value *float64
	}{
		{"absent definition", nil, fptr(1.0)},
		{"no min", &FactorDefinition{Key: "x", Max: fptr(1)}, fptr(0.5)},
		{"no max", &FactorDefinition{Key: "x", Min: fptr(0)}, fptr(0.5)},
		{"degenerate range", &FactorDefinition{Key: "x", Min: fptr(3), Max: fptr(3)}, fptr(3)},
		{"missing value", &FactorDefinition{Key: "x", Min: fptr(0), Max: fptr(1)}, nil},
		{"NaN value", &FactorDefinition{Key: "x", Min: fptr(0), Max: fptr(1)}, fptr(math.NaN())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.5, NormalizePosition(tt.def, tt.value))
		})
	}
}

func TestFormatValue_PlainFourDecimals(t *testing.T) {
	registry := mustDefaultRegistry(t)
	def, ok := registry.Lookup("rsi_14")
	require.True(t, ok)

	assert.Equal(t, "55.1234", FormatValue(def, fptr(55.1234)))
}

func TestFormatValue_Percent(t *testing.T) {
	registry := mustDefaultRegistry(t)
	def, ok := registry.Lookup("momentum_5d")
	require.True(t, ok)

	assert.Equal(t, "2.34%", FormatValue(def, fptr(0.0234)))
	assert.Equal(t, "-12.50%", FormatValue(def, fptr(-0.125)))
}

func TestFormatValue_Unit(t *testing.T) {
	registry := mustDefaultRegistry(t)
	def, ok := registry.Lookup("turnover")
	require.True(t, ok)

	assert.Equal(t, "1.5000倍", FormatValue(def, fptr(1.5)))
}

func TestFormatValue_Missing(t *testing.T) {
	registry := mustDefaultRegistry(t)
	def, _ := registry.Lookup("momentum_5d")

	assert.Equal(t, "--", FormatValue(def, nil))
	assert.Equal(t, "--", FormatValue(nil, nil))
	assert.Equal(t, "--", FormatValue(def, fptr(math.NaN())))
	assert.Equal(t, "--", FormatValue(def, fptr(math.Inf(1))))
}

func TestFormatValue_AbsentDefinition(t *testing.T) {
	assert.Equal(t, "1.4100", FormatValue(nil, fptr(1.41)))
}

func TestEvaluate_UnknownKeyDegradesGracefully(t *testing.T) {
	registry := mustDefaultRegistry(t)

	eval := registry.Evaluate("no_such_factor", fptr(0.42))

	assert.Equal(t, 0.5, eval.Position)
	assert.Equal(t, "neutral", eval.Classification.Label)
	assert.Equal(t, "0.4200", eval.Formatted)
	assert.Equal(t, "no_such_factor", eval.DisplayName)
	assert.Empty(t, eval.Description)
}

func TestEvaluate_Idempotent(t *testing.T) {
	registry := mustDefaultRegistry(t)

	first := registry.Evaluate("rsi_14", fptr(75.5))
	second := registry.Evaluate("rsi_14", fptr(75.5))

	assert.Equal(t, first, second)
}

func TestEvaluate_DeterministicUnderConcurrency(t *testing.T) {
	registry := mustDefaultRegistry(t)
	expected := registry.Evaluate("volatility_20d", fptr(0.61))

	const goroutines = 32
	results := make([]Evaluation, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				results[i] = registry.Evaluate("volatility_20d", fptr(0.61))
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		assert.Equal(t, expected, results[i])
	}
}
