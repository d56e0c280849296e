package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []bool
		wantErr bool
	}{
		{name: "mixed", pattern: "TTF", want: []bool{true, true, false}},
		{name: "lowercase and spaces", pattern: " tf ", want: []bool{true, false}},
		{name: "empty", pattern: "", wantErr: true},
		{name: "invalid character", pattern: "TXF", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePattern(tt.pattern)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
