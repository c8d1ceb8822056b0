package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/artem-pershin/checkers/internal/model"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero port", func(c *Config) { c.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"board too small", func(c *Config) { c.BoardSize = 3 }, true},
		{"board too large", func(c *Config) { c.BoardSize = 27 }, true},
		{"ten by ten", func(c *Config) { c.BoardSize = 10 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestOrigins(t *testing.T) {
	cfg := Config{AllowOrigins: " http://a.test, ,http://b.test "}
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
	require.Equal(t, ":3000", Default().Addr())
}

func TestSettings(t *testing.T) {
	cfg := Default()
	settings, err := cfg.Settings()
	require.NoError(t, err)
	require.Equal(t, model.DefaultPlacement(8), settings.Placement)
	require.False(t, settings.RobotWhite)

	path := filepath.Join(t.TempDir(), "initial.txt")
	require.NoError(t, os.WriteFile(path, []byte("5,0 5,2\n2,1\n"), 0o644))
	cfg.PlacementFile = path
	cfg.RobotWhite = true
	settings, err = cfg.Settings()
	require.NoError(t, err)
	require.Len(t, settings.Placement.White, 2)
	require.Len(t, settings.Placement.Black, 1)
	require.True(t, settings.RobotWhite)

	cfg.PlacementFile = filepath.Join(t.TempDir(), "missing.txt")
	_, err = cfg.Settings()
	require.ErrorIs(t, err, model.ErrMalformedPlacement)
}
