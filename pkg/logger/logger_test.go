package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestResolveLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want zapcore.Level
	}{
		{name: "development defaults to debug", cfg: Config{Environment: "development"}, want: zapcore.DebugLevel},
		{name: "production defaults to info", cfg: Config{Environment: "production"}, want: zapcore.InfoLevel},
		{name: "explicit level wins", cfg: Config{Environment: "development", Level: "warn"}, want: zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lvl, err := resolveLevel(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lvl.Level())
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Environment: "production", Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid level")
}

func TestNewBuildsLogger(t *testing.T) {
	t.Parallel()

	log, err := New(Config{Environment: "production"})
	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestTerminalProfile(t *testing.T) {
	t.Parallel()

	for _, env := range []string{"development", "production"} {
		assert.Equal(t, []string{"stderr"}, buildConfig(env).OutputPaths, env)
	}

	log, err := New(Config{Environment: "development", Level: "warn"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
}
