// Package config loads and saves vdpro-tools settings. Every literal the
// icon renderer and the import view patch use has a field here, and
// DefaultConfig reproduces the built-in values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/kacebover/vdpro-tools/icon"
	"github.com/kacebover/vdpro-tools/patcher"
)

// FileName is the config file name inside the config directory.
const FileName = "tools.toml"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all tool configuration
type Config struct {
	Icon    IconConfig    `toml:"icon"`
	IconSet IconSetConfig `toml:"iconset"`
	Patch   PatchConfig   `toml:"patch"`
}

// IconConfig mirrors icon.Layout plus the output path.
type IconConfig struct {
	Output       string `toml:"output"`
	Size         int    `toml:"size"`
	Margin       int    `toml:"margin"`
	TriangleSize int    `toml:"triangle_size"`
	ArrowOffset  int    `toml:"arrow_offset"`
	ArrowWidth   int    `toml:"arrow_width"`
	ArrowHeight  int    `toml:"arrow_height"`
	ShaftWidth   int    `toml:"shaft_width"`
	ShaftAbove   int    `toml:"shaft_above"`
	ShaftBelow   int    `toml:"shaft_below"`
	RingInset    int    `toml:"ring_inset"`
	RingDepth    int    `toml:"ring_depth"`
	DotRadius    int    `toml:"dot_radius"`
	DotCount     int    `toml:"dot_count"`

	Primary    HexColor `toml:"primary"`
	Secondary  HexColor `toml:"secondary"`
	Accent     HexColor `toml:"accent"`
	Foreground HexColor `toml:"foreground"`
}

// IconSetConfig holds icon set generation settings
type IconSetConfig struct {
	Dir    string `toml:"dir"`
	Proof  bool   `toml:"proof"`
	Bundle string `toml:"bundle"`
}

// PatchConfig describes the anchored edit
type PatchConfig struct {
	Path        string `toml:"path"`
	Anchor      string `toml:"anchor"`
	Replacement string `toml:"replacement"`
	Backup      bool   `toml:"backup"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	l := icon.DefaultLayout()
	p := patcher.ImportViewPatch()

	return &Config{
		Icon: IconConfig{
			Output:       icon.DefaultOutput,
			Size:         l.Size,
			Margin:       l.Margin,
			TriangleSize: l.TriangleSize,
			ArrowOffset:  l.ArrowOffset,
			ArrowWidth:   l.ArrowWidth,
			ArrowHeight:  l.ArrowHeight,
			ShaftWidth:   l.ShaftWidth,
			ShaftAbove:   l.ShaftAbove,
			ShaftBelow:   l.ShaftBelow,
			RingInset:    l.RingInset,
			RingDepth:    l.RingDepth,
			DotRadius:    l.DotRadius,
			DotCount:     l.DotCount,
			Primary:      HexColor(l.Palette.Primary),
			Secondary:    HexColor(l.Palette.Secondary),
			Accent:       HexColor(l.Palette.Accent),
			Foreground:   HexColor(l.Palette.Foreground),
		},
		IconSet: IconSetConfig{
			Dir: filepath.Join("src-tauri", "icons"),
		},
		Patch: PatchConfig{
			Path:        p.Path,
			Anchor:      p.Anchor,
			Replacement: p.Replacement,
		},
	}
}

// Layout converts the icon section into an icon.Layout.
func (c *Config) Layout() icon.Layout {
	ic := c.Icon
	return icon.Layout{
		Size:         ic.Size,
		Margin:       ic.Margin,
		TriangleSize: ic.TriangleSize,
		ArrowOffset:  ic.ArrowOffset,
		ArrowWidth:   ic.ArrowWidth,
		ArrowHeight:  ic.ArrowHeight,
		ShaftWidth:   ic.ShaftWidth,
		ShaftAbove:   ic.ShaftAbove,
		ShaftBelow:   ic.ShaftBelow,
		RingInset:    ic.RingInset,
		RingDepth:    ic.RingDepth,
		DotRadius:    ic.DotRadius,
		DotCount:     ic.DotCount,
		Palette: icon.Palette{
			Primary:    ic.Primary.NRGBA(),
			Secondary:  ic.Secondary.NRGBA(),
			Accent:     ic.Accent.NRGBA(),
			Foreground: ic.Foreground.NRGBA(),
		},
	}
}

// TextPatch converts the patch section into a patcher.Patch.
func (c *Config) TextPatch() patcher.Patch {
	return patcher.Patch{
		Path:        c.Patch.Path,
		Anchor:      c.Patch.Anchor,
		Replacement: c.Patch.Replacement,
	}
}

// Validate reports the first problem found in the configuration.
func (c *Config) Validate() error {
	if c.Icon.Output == "" {
		return fmt.Errorf("%w: icon.output is empty", ErrInvalidConfig)
	}
	if err := c.Layout().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.IconSet.Dir == "" {
		return fmt.Errorf("%w: iconset.dir is empty", ErrInvalidConfig)
	}
	if err := c.TextPatch().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Clone creates a copy of the config
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, "Library", "Application Support")
	default: // linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			homeDir, _ := os.UserHomeDir()
			configDir = filepath.Join(homeDir, ".config")
		}
	}

	return filepath.Join(configDir, "VideoDownloaderPro")
}

// DefaultPath returns the per-user config file path
func DefaultPath() string {
	return filepath.Join(getConfigDir(), FileName)
}

// Load reads a TOML config file. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

// LoadOrDefault loads configuration from disk or returns defaults
func LoadOrDefault(path string) *Config {
	config, err := Load(path)
	if err != nil {
		return DefaultConfig()
	}
	return config
}

// Save writes configuration to disk as TOML
func Save(path string, config *Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
