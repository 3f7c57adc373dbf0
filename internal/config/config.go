// Package config loads the JSON configuration shared by the goalie control
// loop and the actuator.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ironsheep/robot-goalie/internal/colors"
)

// ErrColorConflict is returned when two scene roles share a colour.
var ErrColorConflict = errors.New("color conflict")

// maxFileSize caps the size of a configuration file.
const maxFileSize = 1 * 1024 * 1024

// Duration is a time.Duration written as a string like "5.5ms" in JSON.
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// FrameConfig controls frame setup.
type FrameConfig struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Scale      float64 `json:"scale"`
	BlurWindow int     `json:"blur_window"`
	Flip       bool    `json:"flip"`
}

// ColorsConfig assigns a colour to each scene role.
type ColorsConfig struct {
	Robot   colors.Profile   `json:"robot"`
	Markers colors.Profile   `json:"markers"`
	Rails   colors.Profile   `json:"rails"`
	Track   []colors.Profile `json:"track"`
}

// DetectionConfig bounds blob detection.
type DetectionConfig struct {
	MinRadius  float64 `json:"min_radius"`
	NumObjects int     `json:"num_objects"`
}

// TrajectoryConfig controls the planner.
type TrajectoryConfig struct {
	Frames    int    `json:"frames"`
	Bounces   int    `json:"bounces"`
	Smoothing string `json:"smoothing"` // "none" or "kalman"
}

// ControlConfig controls the per-frame loop and its interlocks.
type ControlConfig struct {
	PacketDelay       int      `json:"packet_delay"`
	SafetyMarginPct   float64  `json:"safety_margin_pct"`
	SolenoidThreshold float64  `json:"solenoid_threshold_px"`
	StopThreshold     float64  `json:"stop_threshold_px"`
	SolenoidDuration  Duration `json:"solenoid_duration"`
	MaxMisses         int      `json:"max_misses"`
	ActuatorAddr      string   `json:"actuator_addr"`
	DialTimeout       Duration `json:"dial_timeout"`
}

// CaptureConfig selects the frame source.
type CaptureConfig struct {
	Source    string `json:"source"` // "camera" or "dir"
	Device    int    `json:"device"`
	Dir       string `json:"dir"`
	Loop      bool   `json:"loop"`
	OnFailure string `json:"on_failure"` // "fatal" or "skip"
	Threaded  bool   `json:"threaded"`
}

// SerialConfig describes the motor board's serial link.
type SerialConfig struct {
	Port     string `json:"port"`
	BaudRate int    `json:"baud_rate"`
	DataBits int    `json:"data_bits"`
	Parity   string `json:"parity"` // "none", "odd" or "even"
	StopBits int    `json:"stop_bits"`
}

// ActuatorConfig controls the actuator process.
type ActuatorConfig struct {
	Listen       string       `json:"listen"`
	Driver       string       `json:"driver"` // "sim" or "serial"
	Serial       SerialConfig `json:"serial"`
	StepsPerRev  int          `json:"steps_per_rev"`
	GearRadiusCM float64      `json:"gear_radius_cm"`
	EdgeLengthCM float64      `json:"edge_length_cm"`
	StepDelay    Duration     `json:"step_delay"`
	ReverseDir   bool         `json:"reverse_dir"`
}

// Config aggregates all configuration sections.
type Config struct {
	Frame      FrameConfig      `json:"frame"`
	Colors     ColorsConfig     `json:"colors"`
	Detection  DetectionConfig  `json:"detection"`
	Trajectory TrajectoryConfig `json:"trajectory"`
	Control    ControlConfig    `json:"control"`
	Capture    CaptureConfig    `json:"capture"`
	Actuator   ActuatorConfig   `json:"actuator"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Frame: FrameConfig{
			Width:      640,
			Height:     480,
			Scale:      1,
			BlurWindow: 15,
			Flip:       true,
		},
		Colors: ColorsConfig{
			Robot:   colors.White,
			Markers: colors.Blue,
			Rails:   colors.Green,
			Track:   []colors.Profile{colors.Red},
		},
		Detection: DetectionConfig{
			MinRadius:  13,
			NumObjects: 2,
		},
		Trajectory: TrajectoryConfig{
			Frames:    4,
			Bounces:   0,
			Smoothing: "none",
		},
		Control: ControlConfig{
			PacketDelay:       5,
			SafetyMarginPct:   5,
			SolenoidThreshold: 40,
			StopThreshold:     80,
			SolenoidDuration:  Duration{100 * time.Millisecond},
			MaxMisses:         3,
			ActuatorAddr:      "localhost:10000",
			DialTimeout:       Duration{5 * time.Second},
		},
		Capture: CaptureConfig{
			Source:    "camera",
			OnFailure: "fatal",
			Threaded:  true,
		},
		Actuator: ActuatorConfig{
			Listen: ":10000",
			Driver: "sim",
			Serial: SerialConfig{
				BaudRate: 9600,
				DataBits: 8,
				Parity:   "none",
				StopBits: 1,
			},
			StepsPerRev:  200,
			GearRadiusCM: 0.3,
			EdgeLengthCM: 60,
			StepDelay:    Duration{5500 * time.Microsecond},
		},
	}
}

// Load reads a JSON configuration from path.
//
// The file must have a .json extension and be at most 1 MiB. Fields omitted
// from the file keep their Default values. The result is validated before it
// is returned.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges and colour assignments.
//
// Colour problems wrap ErrColorConflict: the robot, marker and rail colours
// must be trackable and mutually distinct, and none of them may also be a
// track colour.
func (c *Config) Validate() error {
	if err := c.validateColors(); err != nil {
		return err
	}

	if c.Frame.Width < 0 || c.Frame.Height < 0 {
		return fmt.Errorf("frame size must be non-negative, got %dx%d", c.Frame.Width, c.Frame.Height)
	}
	if (c.Frame.Width == 0) != (c.Frame.Height == 0) {
		return fmt.Errorf("frame width and height must be set together")
	}
	if c.Frame.Width == 0 && c.Frame.Scale <= 0 {
		return fmt.Errorf("frame scale must be positive, got %v", c.Frame.Scale)
	}
	if c.Frame.BlurWindow < 0 {
		return fmt.Errorf("blur_window must be non-negative, got %d", c.Frame.BlurWindow)
	}

	if c.Detection.NumObjects < 1 {
		return fmt.Errorf("num_objects must be at least 1, got %d", c.Detection.NumObjects)
	}
	if c.Detection.MinRadius < 0 {
		return fmt.Errorf("min_radius must be non-negative, got %v", c.Detection.MinRadius)
	}

	if c.Trajectory.Frames < 2 {
		return fmt.Errorf("trajectory frames must be at least 2, got %d", c.Trajectory.Frames)
	}
	if c.Trajectory.Bounces < 0 {
		return fmt.Errorf("bounces must be non-negative, got %d", c.Trajectory.Bounces)
	}
	switch c.Trajectory.Smoothing {
	case "", "none", "kalman":
	default:
		return fmt.Errorf("unknown smoothing %q", c.Trajectory.Smoothing)
	}

	if c.Control.PacketDelay < 1 {
		return fmt.Errorf("packet_delay must be at least 1, got %d", c.Control.PacketDelay)
	}
	if c.Control.MaxMisses < 1 {
		return fmt.Errorf("max_misses must be at least 1, got %d", c.Control.MaxMisses)
	}
	if c.Control.SafetyMarginPct < 0 || c.Control.SafetyMarginPct >= 50 {
		return fmt.Errorf("safety_margin_pct must be in [0, 50), got %v", c.Control.SafetyMarginPct)
	}
	if c.Control.SolenoidThreshold < 0 || c.Control.StopThreshold < 0 {
		return fmt.Errorf("thresholds must be non-negative")
	}

	switch c.Capture.Source {
	case "camera":
	case "dir":
		if c.Capture.Dir == "" {
			return fmt.Errorf("capture source dir needs capture.dir")
		}
	default:
		return fmt.Errorf("unknown capture source %q", c.Capture.Source)
	}
	switch c.Capture.OnFailure {
	case "fatal", "skip":
	default:
		return fmt.Errorf("unknown on_failure policy %q", c.Capture.OnFailure)
	}

	switch c.Actuator.Driver {
	case "sim":
	case "serial":
		if c.Actuator.Serial.Port == "" {
			return fmt.Errorf("serial driver needs actuator.serial.port")
		}
	default:
		return fmt.Errorf("unknown actuator driver %q", c.Actuator.Driver)
	}
	if c.Actuator.StepsPerRev < 1 {
		return fmt.Errorf("steps_per_rev must be positive, got %d", c.Actuator.StepsPerRev)
	}
	if c.Actuator.GearRadiusCM <= 0 || c.Actuator.EdgeLengthCM <= 0 {
		return fmt.Errorf("gear_radius_cm and edge_length_cm must be positive")
	}

	return nil
}

func (c *Config) validateColors() error {
	roles := []struct {
		name string
		p    colors.Profile
	}{
		{"robot", c.Colors.Robot},
		{"markers", c.Colors.Markers},
		{"rails", c.Colors.Rails},
	}

	for i, r := range roles {
		if !r.p.Trackable() {
			return fmt.Errorf("%w: %s color %s has no detection range", ErrColorConflict, r.name, r.p)
		}
		for _, other := range roles[i+1:] {
			if r.p == other.p {
				return fmt.Errorf("%w: %s and %s are both %s", ErrColorConflict, r.name, other.name, r.p)
			}
		}
		for _, t := range c.Colors.Track {
			if t == r.p {
				return fmt.Errorf("%w: %s color %s is also tracked", ErrColorConflict, r.name, r.p)
			}
		}
	}

	if len(c.Colors.Track) == 0 {
		return fmt.Errorf("%w: no track colors", ErrColorConflict)
	}
	for _, t := range c.Colors.Track {
		if !t.Trackable() {
			return fmt.Errorf("%w: track color %s has no detection range", ErrColorConflict, t)
		}
	}
	return nil
}

// Warnings lists accepted settings that do not behave as written.
func (c *Config) Warnings() []string {
	var w []string
	if c.Trajectory.Bounces > 1 {
		w = append(w, fmt.Sprintf("trajectory.bounces = %d: only one reflection is modelled", c.Trajectory.Bounces))
	}
	return w
}
