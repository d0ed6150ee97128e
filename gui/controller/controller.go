// Package controller provides the bridge between the preview window and
// the icon and patch tools
package controller

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/kacebover/vdpro-tools/config"
	"github.com/kacebover/vdpro-tools/icon"
	"github.com/kacebover/vdpro-tools/iconset"
	"github.com/kacebover/vdpro-tools/patcher"
)

// LogLevel represents log message severity
type LogLevel int

const (
	LogInfo LogLevel = iota
	LogWarning
	LogError
)

// AssetController renders the icon and runs the patch for the UI
type AssetController struct {
	config     *config.Config
	configPath string
	workDir    string

	onLogMessage func(LogLevel, string)

	mu       sync.RWMutex
	lastIcon *image.RGBA

	// generation counts config updates so a render started under an
	// older config is never cached
	generation uint64
}

// NewAssetController creates a controller using the config stored at
// configPath (defaults when absent). Relative paths in the config resolve
// against workDir.
func NewAssetController(configPath, workDir string) *AssetController {
	return &AssetController{
		config:     config.LoadOrDefault(configPath),
		configPath: configPath,
		workDir:    workDir,
	}
}

// SetOnLogMessage sets the callback for log messages
func (ac *AssetController) SetOnLogMessage(callback func(LogLevel, string)) {
	ac.onLogMessage = callback
}

func (ac *AssetController) log(level LogLevel, format string, a ...any) {
	if ac.onLogMessage != nil {
		ac.onLogMessage(level, fmt.Sprintf(format, a...))
	}
}

// GetConfig returns a copy of the current configuration
func (ac *AssetController) GetConfig() *config.Config {
	ac.mu.RLock()
	defer ac.mu.RUnlock()
	return ac.config.Clone()
}

// UpdateConfig validates, applies and saves configuration. The cached
// icon is dropped so the next render uses the new layout.
func (ac *AssetController) UpdateConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ac.mu.Lock()
	ac.config = cfg.Clone()
	ac.lastIcon = nil
	ac.generation++
	ac.mu.Unlock()

	return config.Save(ac.configPath, cfg)
}

// WorkDir returns the directory relative paths resolve against
func (ac *AssetController) WorkDir() string {
	ac.mu.RLock()
	defer ac.mu.RUnlock()
	return ac.workDir
}

// SetWorkDir changes the app root directory
func (ac *AssetController) SetWorkDir(dir string) {
	ac.mu.Lock()
	ac.workDir = dir
	ac.mu.Unlock()
}

// resolve makes path absolute against the work directory
func (ac *AssetController) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(ac.WorkDir(), path)
}

// Layers returns the shapes of the configured icon in drawing order
func (ac *AssetController) Layers() []icon.Layer {
	return ac.GetConfig().Layout().Layers()
}

// RenderIcon draws the configured icon, reusing the last render when the
// configuration has not changed.
func (ac *AssetController) RenderIcon() (*image.RGBA, error) {
	ac.mu.RLock()
	cached := ac.lastIcon
	layout := ac.config.Layout()
	gen := ac.generation
	ac.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}

	img, err := icon.Render(layout)
	if err != nil {
		ac.log(LogError, "Render failed: %v", err)
		return nil, err
	}

	ac.mu.Lock()
	if ac.generation == gen {
		ac.lastIcon = img
	}
	ac.mu.Unlock()

	ac.log(LogInfo, "Rendered %dx%d icon with %d layers", layout.Size, layout.Size, len(layout.Layers()))
	return img, nil
}

// SaveIcon renders the icon and writes it to the configured output path
func (ac *AssetController) SaveIcon() (string, error) {
	img, err := ac.RenderIcon()
	if err != nil {
		return "", err
	}

	path := ac.resolve(ac.GetConfig().Icon.Output)
	if err := icon.Save(path, img); err != nil {
		ac.log(LogError, "Save failed: %v", err)
		return "", err
	}
	ac.log(LogInfo, "Icon saved as %s", path)
	return path, nil
}

// GenerateIconSet writes the Tauri icon set from the rendered icon
func (ac *AssetController) GenerateIconSet() (*iconset.Result, error) {
	img, err := ac.RenderIcon()
	if err != nil {
		return nil, err
	}

	cfg := ac.GetConfig()
	opts := iconset.Options{
		Dir:   ac.resolve(cfg.IconSet.Dir),
		Proof: cfg.IconSet.Proof,
	}
	if cfg.IconSet.Bundle != "" {
		opts.BundlePath = ac.resolve(cfg.IconSet.Bundle)
	}

	res, err := iconset.Generate(img, opts)
	if err != nil {
		ac.log(LogError, "Icon set failed: %v", err)
		return nil, err
	}
	ac.log(LogInfo, "Wrote %d icon files to %s", len(res.Files), res.Dir)
	return res, nil
}

// patch returns the configured patch with its path resolved
func (ac *AssetController) patch() patcher.Patch {
	p := ac.GetConfig().TextPatch()
	p.Path = ac.resolve(p.Path)
	return p
}

// PreviewPatch checks whether the patch applies without writing anything
func (ac *AssetController) PreviewPatch() (*patcher.Result, error) {
	res, err := ac.patch().Apply(patcher.Options{DryRun: true})
	if err != nil {
		ac.log(LogWarning, "Patch preview: %v", err)
		return nil, err
	}
	ac.log(LogInfo, "Anchor found at line %d (%d occurrence(s))", res.Line, res.Occurrences)
	return res, nil
}

// ApplyPatch applies the configured patch, backing the file up first when
// the config asks for it
func (ac *AssetController) ApplyPatch() (*patcher.Result, error) {
	p := ac.patch()
	var opts patcher.Options
	if ac.GetConfig().Patch.Backup {
		opts.BackupPath = patcher.BackupName(p.Path)
	}

	res, err := p.Apply(opts)
	if err != nil {
		ac.log(LogError, "Patch failed: %v", err)
		return nil, err
	}
	ac.log(LogInfo, "Patched %s at line %d", res.Path, res.Line)
	return res, nil
}
