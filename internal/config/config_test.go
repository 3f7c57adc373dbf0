package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/robot-goalie/internal/colors"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 640, cfg.Frame.Width)
	assert.Equal(t, 480, cfg.Frame.Height)
	assert.Equal(t, colors.White, cfg.Colors.Robot)
	assert.Equal(t, colors.Blue, cfg.Colors.Markers)
	assert.Equal(t, colors.Green, cfg.Colors.Rails)
	assert.Equal(t, []colors.Profile{colors.Red}, cfg.Colors.Track)
	assert.Equal(t, 13.0, cfg.Detection.MinRadius)
	assert.Equal(t, 4, cfg.Trajectory.Frames)
	assert.Equal(t, 5500*time.Microsecond, cfg.Actuator.StepDelay.Duration)
	assert.Empty(t, cfg.Warnings())
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "goalie.json", `{
		"colors": {"track": ["red", "yellow"]},
		"trajectory": {"frames": 6},
		"control": {"packet_delay": 3, "solenoid_duration": "250ms"}
	}`)

	_, err := Load(path)
	require.Error(t, err, "yellow has no detection range")
	assert.ErrorIs(t, err, ErrColorConflict)

	path = writeConfig(t, "goalie.json", `{
		"trajectory": {"frames": 6},
		"control": {"packet_delay": 3, "solenoid_duration": "250ms"}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Trajectory.Frames)
	assert.Equal(t, 3, cfg.Control.PacketDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.Control.SolenoidDuration.Duration)
	assert.Equal(t, 640, cfg.Frame.Width, "omitted fields keep defaults")
	assert.Equal(t, "localhost:10000", cfg.Control.ActuatorAddr)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"extension", "goalie.yaml", `{}`, ".json extension"},
		{"syntax", "goalie.json", `{"frame":`, "failed to parse"},
		{"unknown color", "goalie.json", `{"colors":{"robot":"purple"}}`, "unknown color"},
		{"bad duration", "goalie.json", `{"actuator":{"step_delay":"fast"}}`, "failed to parse"},
		{"frames", "goalie.json", `{"trajectory":{"frames":1}}`, "frames must be at least 2"},
		{"source", "goalie.json", `{"capture":{"source":"dir"}}`, "capture.dir"},
		{"misses", "goalie.json", `{"control":{"max_misses":0}}`, "max_misses"},
		{"policy", "goalie.json", `{"capture":{"on_failure":"retry"}}`, "on_failure"},
		{"driver", "goalie.json", `{"actuator":{"driver":"serial"}}`, "serial.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat")
}

func TestLoad_TooLarge(t *testing.T) {
	body := `{"pad":"` + strings.Repeat("x", maxFileSize) + `"}`
	_, err := Load(writeConfig(t, "big.json", body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestValidate_ColorConflicts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"robot tracked", func(c *Config) { c.Colors.Track = []colors.Profile{colors.White} }},
		{"markers tracked", func(c *Config) { c.Colors.Track = []colors.Profile{colors.Red, colors.Blue} }},
		{"robot equals markers", func(c *Config) { c.Colors.Robot = colors.Blue }},
		{"rails equal markers", func(c *Config) { c.Colors.Rails = colors.Blue }},
		{"role without range", func(c *Config) { c.Colors.Rails = colors.None }},
		{"track without range", func(c *Config) { c.Colors.Track = []colors.Profile{colors.None} }},
		{"no track colors", func(c *Config) { c.Colors.Track = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrColorConflict)
		})
	}
}

func TestWarnings_Bounces(t *testing.T) {
	cfg := Default()
	cfg.Trajectory.Bounces = 3
	require.NoError(t, cfg.Validate())

	w := cfg.Warnings()
	require.Len(t, w, 1)
	assert.Contains(t, w[0], "only one reflection")
}
