package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	EnvPrefix        = "IMAGE_RESIZER"
	DefaultOutputDir = "image_resizer"
	DefaultEngine    = "imaging"
	DefaultFilter    = "lanczos"
	DefaultQuality   = 95
	DefaultCacheSize = 64
	configName       = "config"
	configType       = "toml"
	configSubdirName = "image-resizer"
)

type Mode string

const (
	ModeProduction  Mode = "production"
	ModeDevelopment Mode = "development"
)

type Config struct {
	Mode          Mode
	LogLevel      string
	OutputDirName string
	Engine        string
	Filter        string
	JPEGQuality   int
	CacheSize     int
	WindowWidth   float32
	WindowHeight  float32
}

// Default is the configuration used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		Mode:          ModeProduction,
		LogLevel:      "info",
		OutputDirName: DefaultOutputDir,
		Engine:        DefaultEngine,
		Filter:        DefaultFilter,
		JPEGQuality:   DefaultQuality,
		CacheSize:     DefaultCacheSize,
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Mode == ModeDevelopment
}

// Destination is the fixed output directory, always a direct child of home.
func (c *Config) Destination(home string) string {
	return filepath.Join(home, c.OutputDirName)
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeProduction, ModeDevelopment:
	default:
		return fmt.Errorf("invalid mode %q", c.Mode)
	}

	if c.OutputDirName == "" || c.OutputDirName == "." || c.OutputDirName == ".." ||
		strings.ContainsAny(c.OutputDirName, `/\`) {
		return fmt.Errorf("output.dir_name must be a single directory name, got %q", c.OutputDirName)
	}

	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("resize.jpeg_quality must be within 1..100, got %d", c.JPEGQuality)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("cache.size must not be negative, got %d", c.CacheSize)
	}

	return nil
}

// Loader reads configuration from an optional TOML file and IMAGE_RESIZER_* environment variables.
type Loader struct {
	v *viper.Viper
}

// NewLoader searches the given directories for config.toml. With no directories it looks in
// the working directory and the user config directory.
func NewLoader(searchPaths ...string) *Loader {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)

	if len(searchPaths) == 0 {
		searchPaths = append(searchPaths, ".")
		if dir, err := os.UserConfigDir(); err == nil {
			searchPaths = append(searchPaths, filepath.Join(dir, configSubdirName))
		}
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", string(ModeProduction))
	v.SetDefault("log.level", "info")
	v.SetDefault("output.dir_name", DefaultOutputDir)
	v.SetDefault("resize.engine", DefaultEngine)
	v.SetDefault("resize.filter", DefaultFilter)
	v.SetDefault("resize.jpeg_quality", DefaultQuality)
	v.SetDefault("cache.size", DefaultCacheSize)
	v.SetDefault("window.width", 0)
	v.SetDefault("window.height", 0)

	return &Loader{v: v}
}

func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	return l.decode()
}

// ConfigFile returns the file in use, or "" when running on defaults and environment only.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Watch calls onChange with the re-read configuration whenever the config file changes.
// It is a no-op when no config file was found.
func (l *Loader) Watch(onChange func(*Config, error)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}

	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(l.decode())
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (*Config, error) {
	cfg := &Config{
		Mode:          Mode(strings.ToLower(l.v.GetString("mode"))),
		LogLevel:      l.v.GetString("log.level"),
		OutputDirName: l.v.GetString("output.dir_name"),
		Engine:        strings.ToLower(l.v.GetString("resize.engine")),
		Filter:        strings.ToLower(l.v.GetString("resize.filter")),
		JPEGQuality:   l.v.GetInt("resize.jpeg_quality"),
		CacheSize:     l.v.GetInt("cache.size"),
		WindowWidth:   float32(l.v.GetFloat64("window.width")),
		WindowHeight:  float32(l.v.GetFloat64("window.height")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
