package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty string", "", nil},
		{"single value", "AAPL.US", []string{"AAPL.US"}},
		{"multiple values", "AAPL.US,MSFT.US,GOOGL.US", []string{"AAPL.US", "MSFT.US", "GOOGL.US"}},
		{"whitespace around values", " AAPL.US , MSFT.US ", []string{"AAPL.US", "MSFT.US"}},
		{"empty segments dropped", "AAPL.US,,MSFT.US,", []string{"AAPL.US", "MSFT.US"}},
		{"only separators", ", ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCSV(tt.input))
		})
	}
}

func TestJoinCSV(t *testing.T) {
	assert.Equal(t, "", JoinCSV(nil))
	assert.Equal(t, "AAPL.US,MSFT.US", JoinCSV([]string{"AAPL.US", "", " MSFT.US "}))
}

func TestParseCSVJoinCSVRoundTrip(t *testing.T) {
	peers := []string{"700.HK", "9988.HK", "3690.HK"}
	assert.Equal(t, peers, ParseCSV(JoinCSV(peers)))
}
