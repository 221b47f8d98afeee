package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	defer Replace(nil)()

	tests := []struct {
		name    string
		level   string
		format  string
		wantErr string
	}{
		{name: "json", level: "info", format: "json"},
		{name: "default format", level: "debug", format: ""},
		{name: "console", level: "warn", format: "console"},
		{name: "bad level", level: "loud", format: "json", wantErr: "invalid log level"},
		{name: "bad format", level: "info", format: "xml", wantErr: "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.level, tt.format)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, Get())
		})
	}
}

func TestReplaceAndNamed(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))

	Named("catalog").Info("Catalog loaded", zap.Int("items", 3))
	Debug("dropped below level")
	restore()

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "catalog", entries[0].LoggerName)
	assert.Equal(t, "Catalog loaded", entries[0].Message)
}
