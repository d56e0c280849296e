package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	prev := global
	t.Cleanup(func() { global = prev })

	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "json info", level: "info", format: "json"},
		{name: "console debug", level: "DEBUG", format: "console"},
		{name: "bad level", level: "loud", format: "json", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Init(tt.level, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Same(t, l, L())
		})
	}
}

func TestL_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, L())
}
