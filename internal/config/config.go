// Package config handles configuration loading and management.
package config

import (
	gomath "math"

	"github.com/Faultbox/wirebox/pkg/math"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Controls ControlsConfig `yaml:"controls"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
	SampleRate   int     `yaml:"sample_rate"`
}

// PhysicsConfig holds simulation settings.
type PhysicsConfig struct {
	Friction  float64 `yaml:"friction"`  // velocity kept per tick
	Bounce    float64 `yaml:"bounce"`    // velocity kept per wall hit
	Precision int     `yaml:"precision"` // relaxation passes per tick
	Gravity   Vec     `yaml:"gravity"`
	Box       Vec     `yaml:"box"`
}

// Vec is a YAML-friendly 3D vector.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec3 converts to the math type.
func (v Vec) Vec3() math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// CameraConfig holds the initial camera pose.
type CameraConfig struct {
	FOV float64 `yaml:"fov"` // degrees
	// Distance in front of the box the camera starts at, centred on X and Y.
	Distance float64 `yaml:"distance"`
}

// FOVRadians returns the field of view in radians.
func (c CameraConfig) FOVRadians() float64 {
	return c.FOV * gomath.Pi / 180
}

// SceneConfig holds scene composer settings.
type SceneConfig struct {
	GridStep   int     `yaml:"grid_step"`
	PickRadius float64 `yaml:"pick_radius"` // pixels
	Outline    bool    `yaml:"outline"`     // draw the box edges
}

// ControlsConfig holds input settings.
type ControlsConfig struct {
	LookSpeed float64 `yaml:"look_speed"` // radians per tick
	MoveSpeed float64 `yaml:"move_speed"` // units per tick
	FaceColor [3]int  `yaml:"face_color,flow"`
}

// DataConfig holds file locations.
type DataConfig struct {
	SavePath      string `yaml:"save_path"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    1.0,
			Muted:        false,
			SampleRate:   44100,
		},
		Physics: PhysicsConfig{
			Friction:  0.99,
			Bounce:    0.9,
			Precision: 4,
			Gravity:   Vec{Y: 0.2},
			Box:       Vec{X: 100, Y: 100, Z: 100},
		},
		Camera: CameraConfig{
			FOV:      60,
			Distance: 80,
		},
		Scene: SceneConfig{
			GridStep:   20,
			PickRadius: 10,
			Outline:    false,
		},
		Controls: ControlsConfig{
			LookSpeed: 0.05,
			MoveSpeed: 1,
			FaceColor: [3]int{255, 255, 255},
		},
		Data: DataConfig{
			SavePath:      "wireframe.yaml",
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
