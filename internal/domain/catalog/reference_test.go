package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRef(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		category string
		count    int64
		want     string
	}{
		{"long category truncated", "reptiles", 7, "REPT20240301100000007"},
		{"exactly four characters", "fish", 12, "FISH20240301100000012"},
		{"short category padded", "cat", 999, "CATX20240301100000999"},
		{"count wraps to last three digits", "reptiles", 12007, "REPT20240301100000007"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateRef(tt.category, now, tt.count))
		})
	}
}

func TestGenerateRefDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)
	a := GenerateRef("rodents", now, 41)
	b := GenerateRef("rodents", now, 41)
	assert.Equal(t, a, b)
	assert.Len(t, a, 4+14+3)
}
