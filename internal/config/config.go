// Package config holds the settings for the bitstring window and renderer.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// The shaders are written against GLSL 4.10.
const (
	MinGLMajor = 4
	MinGLMinor = 1
)

type WindowConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	Resizable  bool   `toml:"resizable"`
	VSync      bool   `toml:"vsync"`
	Fullscreen bool   `toml:"fullscreen"`
	// Debug requests a debug context so the driver can report messages.
	Debug   bool `toml:"debug"`
	GLMajor int  `toml:"gl_major"`
	GLMinor int  `toml:"gl_minor"`
}

type RenderConfig struct {
	// ShaderDir overrides the embedded shader sources when set.
	ShaderDir   string `toml:"shader_dir"`
	CheckErrors bool   `toml:"check_errors"`
	// SyncDebug delivers debug messages on the thread that caused them.
	SyncDebug bool `toml:"sync_debug"`
}

type LogConfig struct {
	Verbosity string `toml:"verbosity"`
}

type Config struct {
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
	Log    LogConfig    `toml:"log"`
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:      2200,
		Height:     512,
		Title:      "A fantastic window!",
		Resizable:  true,
		VSync:      true,
		Fullscreen: false,
		Debug:      true,
		GLMajor:    MinGLMajor,
		GLMinor:    MinGLMinor,
	}
}

func Default() Config {
	return Config{
		Window: DefaultWindowConfig(),
		Log:    LogConfig{Verbosity: "info"},
	}
}

// Load decodes the TOML file at path over cfg. Keys the file does not set
// keep their current values; unknown keys are rejected.
func Load(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%s: %s", path, strict.String())
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.GLMajor < MinGLMajor || (c.Window.GLMajor == MinGLMajor && c.Window.GLMinor < MinGLMinor) {
		return fmt.Errorf("OpenGL %d.%d is too old, need at least %d.%d",
			c.Window.GLMajor, c.Window.GLMinor, MinGLMajor, MinGLMinor)
	}
	return nil
}
