package config

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	LogLevel string
	Input    string
	Output   string
	Overlay  OverlayConfig
	Geocode  GeocodeConfig
	Run      RunConfig
	S3       S3Config
}

// OverlayConfig represents caption rendering configuration
type OverlayConfig struct {
	FontPath    string
	FontSize    float64
	TextColor   string
	ShadowColor string
	MaxSize     int
}

// GeocodeConfig represents reverse-geocoding configuration
type GeocodeConfig struct {
	URL     string
	Timeout time.Duration
}

// RunConfig represents batch run configuration
type RunConfig struct {
	Resume      bool
	JournalPath string
}

// S3Config represents the optional S3 archive destination
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Prefix    string
}

// Enabled reports whether an archive destination is configured.
func (s S3Config) Enabled() bool {
	return s.Endpoint != ""
}

// New creates a new configuration with default values
func New() *Config {
	return &Config{
		LogLevel: "info",
		Overlay: OverlayConfig{
			FontSize:    40,
			TextColor:   "#ffffff",
			ShadowColor: "#000000",
			MaxSize:     2048,
		},
		Geocode: GeocodeConfig{
			URL:     "https://nominatim.openstreetmap.org",
			Timeout: 10 * time.Second,
		},
		S3: S3Config{
			Region: "us-east-1",
			UseSSL: true,
		},
	}
}

// LoadFile merges values from a config file into the configuration. Options
// present in the file override the current values.
func (c *Config) LoadFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ParseColor decodes a "#RRGGBB" hex color.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #RRGGBB", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
