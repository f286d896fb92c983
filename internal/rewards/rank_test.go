package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRank(t *testing.T) {
	tests := []struct {
		name      string
		ecoPoints int
		want      int
	}{
		{"zero points is rank one", 0, 1},
		{"negative degrades to rank one", -5, 1},
		{"below one tier", 99, 1},
		{"exactly one tier", 100, 1},
		{"two and a half tiers", 250, 2},
		{"five tiers", 550, 5},
		{"upper clamp", 999999999, 10000},
		{"at the point ceiling", 1_000_000, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeRank(tt.ecoPoints))
		})
	}
}
