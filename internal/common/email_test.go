package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlausibleEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ann@x.io", true},
		{"ann@", true},
		{"Ann <ann@x.io>", true},
		{"nope", false},
		{"", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, PlausibleEmail(tt.in), tt.in)
	}
}
