package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-resumefit/internal/assets"
	"github.com/alnah/go-resumefit/internal/fileutil"
	"github.com/alnah/go-resumefit/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrOutOfRange      = errors.New("value out of range")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxFilenameLength = 255
)

// Timeout bounds in milliseconds.
const (
	MinTimeoutMs = 1
	MaxTimeoutMs = 10 * 60 * 1000
)

// Default values, mirrored by the library constants.
const (
	DefaultRenderTimeoutMs  = 15000
	DefaultReadyTimeoutMs   = 5000
	DefaultAutoFitGraceMs   = 500
	DefaultAutoFitTimeoutMs = 15000
	DefaultHintUnderfill    = 0.85
	DefaultSparseSuccess    = 0.80
	DefaultDocumentSparse   = 0.85
	DefaultFilename         = "output_resume.pdf"
	DefaultDocumentName     = assets.DefaultDocumentName
	DefaultStyleName        = assets.DefaultStyleName
)

// Config holds all configuration for the renderer and its front-ends.
type Config struct {
	Document   DocumentConfig   `yaml:"document"`
	Browser    BrowserConfig    `yaml:"browser"`
	Render     RenderConfig     `yaml:"render"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Output     OutputConfig     `yaml:"output"`
}

// DocumentConfig selects the rendering document and its style.
type DocumentConfig struct {
	Path     string `yaml:"path"`     // Standalone HTML document; overrides name and assetDir
	AssetDir string `yaml:"assetDir"` // Directory with documents/ and styles/ overriding built-ins
	Name     string `yaml:"name"`     // Document name (default: resume)
	Style    string `yaml:"style"`    // Style name (default: resume)
}

// BrowserConfig controls how Chrome is launched.
type BrowserConfig struct {
	Bin       string `yaml:"bin"`       // Empty = ROD_BROWSER_BIN or rod-managed Chromium
	NoSandbox bool   `yaml:"noSandbox"` // Also enabled by CI=true or ROD_NO_SANDBOX=1
}

// RenderConfig holds the wait budgets of the render loop.
type RenderConfig struct {
	TimeoutMs        int `yaml:"timeoutMs"`        // render-complete wait
	ReadyTimeoutMs   int `yaml:"readyTimeoutMs"`   // readiness signal wait
	AutoFitGraceMs   int `yaml:"autoFitGraceMs"`   // delay before polling isAutoFitting
	AutoFitTimeoutMs int `yaml:"autoFitTimeoutMs"` // auto-fit completion wait
}

// ThresholdsConfig gathers the fill-ratio thresholds in one place.
type ThresholdsConfig struct {
	HintUnderfill  float64 `yaml:"hintUnderfill"`  // hint switches to expansion advice below this
	SparseSuccess  float64 `yaml:"sparseSuccess"`  // success message mentions sparse content below this
	DocumentSparse float64 `yaml:"documentSparse"` // pushed into the document's sparsity check
}

// OutputConfig defines where PDFs land when the caller gives no path.
type OutputConfig struct {
	DefaultDir   string `yaml:"defaultDir"`   // Empty = ./generated_resume, ~/Downloads, temp dir
	Filename     string `yaml:"filename"`     // Default file name
	DebugSidecar *bool  `yaml:"debugSidecar"` // nil = enabled
}

// SidecarEnabled reports whether the debug sidecar should be written.
func (o OutputConfig) SidecarEnabled() bool {
	return o.DebugSidecar == nil || *o.DebugSidecar
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{
			Name:  DefaultDocumentName,
			Style: DefaultStyleName,
		},
		Render: RenderConfig{
			TimeoutMs:        DefaultRenderTimeoutMs,
			ReadyTimeoutMs:   DefaultReadyTimeoutMs,
			AutoFitGraceMs:   DefaultAutoFitGraceMs,
			AutoFitTimeoutMs: DefaultAutoFitTimeoutMs,
		},
		Thresholds: ThresholdsConfig{
			HintUnderfill:  DefaultHintUnderfill,
			SparseSuccess:  DefaultSparseSuccess,
			DocumentSparse: DefaultDocumentSparse,
		},
		Output: OutputConfig{
			Filename: DefaultFilename,
		},
	}
}

// applyDefaults fills zero values left by a partial YAML file.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Document.Name == "" {
		c.Document.Name = d.Document.Name
	}
	if c.Document.Style == "" {
		c.Document.Style = d.Document.Style
	}
	if c.Render.TimeoutMs == 0 {
		c.Render.TimeoutMs = d.Render.TimeoutMs
	}
	if c.Render.ReadyTimeoutMs == 0 {
		c.Render.ReadyTimeoutMs = d.Render.ReadyTimeoutMs
	}
	if c.Render.AutoFitGraceMs == 0 {
		c.Render.AutoFitGraceMs = d.Render.AutoFitGraceMs
	}
	if c.Render.AutoFitTimeoutMs == 0 {
		c.Render.AutoFitTimeoutMs = d.Render.AutoFitTimeoutMs
	}
	if c.Thresholds.HintUnderfill == 0 {
		c.Thresholds.HintUnderfill = d.Thresholds.HintUnderfill
	}
	if c.Thresholds.SparseSuccess == 0 {
		c.Thresholds.SparseSuccess = d.Thresholds.SparseSuccess
	}
	if c.Thresholds.DocumentSparse == 0 {
		c.Thresholds.DocumentSparse = d.Thresholds.DocumentSparse
	}
	if c.Output.Filename == "" {
		c.Output.Filename = d.Output.Filename
	}
}

// Validate checks ranges and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("document.path", c.Document.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.assetDir", c.Document.AssetDir, MaxPathLength); err != nil {
		return err
	}
	if err := assets.ValidateAssetName(c.Document.Name); err != nil {
		return fmt.Errorf("document.name: %w", err)
	}
	if err := assets.ValidateAssetName(c.Document.Style); err != nil {
		return fmt.Errorf("document.style: %w", err)
	}
	if err := validateFieldLength("browser.bin", c.Browser.Bin, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.filename", c.Output.Filename, MaxFilenameLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Output.Filename, "/\\\x00") {
		return fmt.Errorf("output.filename: must be a bare file name, got %q", c.Output.Filename)
	}

	timeouts := []struct {
		field string
		value int
	}{
		{"render.timeoutMs", c.Render.TimeoutMs},
		{"render.readyTimeoutMs", c.Render.ReadyTimeoutMs},
		{"render.autoFitTimeoutMs", c.Render.AutoFitTimeoutMs},
	}
	for _, tm := range timeouts {
		if tm.value < MinTimeoutMs || tm.value > MaxTimeoutMs {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d",
				ErrOutOfRange, tm.field, MinTimeoutMs, MaxTimeoutMs, tm.value)
		}
	}
	// Grace may be zero (poll immediately).
	if c.Render.AutoFitGraceMs < 0 || c.Render.AutoFitGraceMs > MaxTimeoutMs {
		return fmt.Errorf("%w: render.autoFitGraceMs must be between 0 and %d, got %d",
			ErrOutOfRange, MaxTimeoutMs, c.Render.AutoFitGraceMs)
	}

	thresholds := []struct {
		field string
		value float64
	}{
		{"thresholds.hintUnderfill", c.Thresholds.HintUnderfill},
		{"thresholds.sparseSuccess", c.Thresholds.SparseSuccess},
		{"thresholds.documentSparse", c.Thresholds.DocumentSparse},
	}
	for _, th := range thresholds {
		if th.value <= 0 || th.value > 1 {
			return fmt.Errorf("%w: %s must be in (0, 1], got %.2f", ErrOutOfRange, th.field, th.value)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-resumefit/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-resumefit", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
