// Package config loads viewer settings from the environment and an optional
// .env file. Command-line flags override the values returned here.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/iafilius/MultiAxisChart/src/chartview"
	"github.com/iafilius/MultiAxisChart/src/logging"
)

// Config holds the settings shared by the viewer and the headless renderer.
type Config struct {
	LogLevel string
	LogFile  string

	// DataFile is loaded at start-up when set; otherwise demo series are shown.
	DataFile string
	// DemoPoints is the length of the generated demo series.
	DemoPoints int

	Width  int
	Height int
	Area   chartview.Area
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		LogLevel:   "info",
		DemoPoints: 1000,
		Width:      1100,
		Height:     700,
		Area:       chartview.DefaultArea,
	}
}

// Load reads an optional .env file (or the files given) and then the CHART_*
// environment variables on top of Defaults.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		// a missing default .env is normal; explicitly named files must exist
		if len(envFiles) > 0 {
			return Config{}, errors.Wrap(err, "load env file")
		}
		logging.Debugf("no .env file loaded: %v", err)
	}

	cfg := Defaults()
	cfg.LogLevel = getEnvOrDefault("CHART_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnvOrDefault("CHART_LOG_FILE", cfg.LogFile)
	cfg.DataFile = getEnvOrDefault("CHART_DATA_FILE", cfg.DataFile)
	cfg.DemoPoints = getEnvIntOrDefault("CHART_DEMO_POINTS", cfg.DemoPoints)
	cfg.Width = getEnvIntOrDefault("CHART_WIDTH", cfg.Width)
	cfg.Height = getEnvIntOrDefault("CHART_HEIGHT", cfg.Height)
	if v := os.Getenv("CHART_AREA"); v != "" {
		a, err := ParseArea(v)
		if err != nil {
			return Config{}, errors.Wrap(err, "CHART_AREA")
		}
		cfg.Area = a
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings no component can work with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.DemoPoints < 0 {
		return errors.Errorf("invalid demo points %d", c.DemoPoints)
	}
	return validateArea(c.Area)
}

// ParseArea parses "x,y,w,h" fractions, e.g. "0.28,0.06,0.69,0.84".
func ParseArea(s string) (chartview.Area, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return chartview.Area{}, errors.Errorf("area %q: want 4 comma separated fractions", s)
	}
	var f [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return chartview.Area{}, errors.Wrapf(err, "area %q", s)
		}
		f[i] = v
	}
	a := chartview.Area{X: f[0], Y: f[1], W: f[2], H: f[3]}
	return a, validateArea(a)
}

func validateArea(a chartview.Area) error {
	for _, v := range []float64{a.X, a.Y, a.W, a.H} {
		if v < 0 || v > 1 {
			return errors.Errorf("area fraction %v outside [0,1]", v)
		}
	}
	if a.W == 0 || a.H == 0 {
		return errors.New("area has zero width or height")
	}
	if a.X+a.W > 1 || a.Y+a.H > 1 {
		return errors.New("area extends past the control")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
		logging.Warnf("ignoring %s=%q: not an integer", key, val)
	}
	return defaultVal
}
