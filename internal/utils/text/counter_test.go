package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"ascii description", "navy wool blazer", 16},
		{"accented", "crème scarf", 11},
		{"cjk", "黒のジャケット", 7},
		{"emoji", "red dress 👗", 11},
		{"mixed scripts", "kimono着物", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountRunes(tt.input))
		})
	}
}
