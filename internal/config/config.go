package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file base name searched for in the config paths.
const FileName = "roomdemo"

// EnvPrefix prefixes environment overrides, e.g. ROOMDEMO_RENDER_HDR=true.
const EnvPrefix = "ROOMDEMO"

type WindowConfig struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Title      string `mapstructure:"title"`
	VSync      bool   `mapstructure:"vsync"`
	Fullscreen bool   `mapstructure:"fullscreen"`
}

type AssetsConfig struct {
	Root string `mapstructure:"root"`
}

type StateConfig struct {
	Path   string `mapstructure:"path"`
	Layout string `mapstructure:"layout"`
}

type RenderConfig struct {
	HDR      bool   `mapstructure:"hdr"`
	Skybox   bool   `mapstructure:"skybox"`
	Lighting string `mapstructure:"lighting"`
}

type ShadersConfig struct {
	HotReload bool `mapstructure:"hotReload"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the full demo configuration.
type Config struct {
	Window  WindowConfig  `mapstructure:"window"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	State   StateConfig   `mapstructure:"state"`
	Render  RenderConfig  `mapstructure:"render"`
	Shaders ShadersConfig `mapstructure:"shaders"`
	Log     LogConfig     `mapstructure:"log"`

	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-"`
}

// SetDefaults registers every key with its compiled-in default.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1600)
	v.SetDefault("window.height", 1200)
	v.SetDefault("window.title", "LearnOpenGL")
	v.SetDefault("window.vsync", true)
	v.SetDefault("window.fullscreen", false)

	v.SetDefault("assets.root", "resources")

	v.SetDefault("state.path", "resources/program_state.txt")
	v.SetDefault("state.layout", "clearcolor")

	v.SetDefault("render.hdr", false)
	v.SetDefault("render.skybox", true)
	v.SetDefault("render.lighting", "two-light")

	v.SetDefault("shaders.hotReload", false)

	v.SetDefault("log.level", "info")
}

// Flags returns the command line flags understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("roomdemo", pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (yaml, json or toml)")
	fs.Bool("hdr", false, "start with HDR tonemapping enabled")
	fs.String("log-level", "", "log level (trace, debug, info, warn, error)")
	fs.String("state", "", "path of the persisted scene state file")
	return fs
}

// Load resolves the configuration from defaults, an optional config file,
// ROOMDEMO_* environment variables and the parsed flags, in increasing
// precedence. A missing config file is not an error.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := ""
	if flags != nil {
		explicit, _ = flags.GetString("config")
		bindFlag(v, flags, "render.hdr", "hdr")
		bindFlag(v, flags, "log.level", "log-level")
		bindFlag(v, flags, "state.path", "state")
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindFlag binds a flag only when the user actually set it, so an unset flag
// does not shadow the config file.
func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, name string) {
	f := flags.Lookup(name)
	if f == nil || !f.Changed {
		return
	}
	_ = v.BindPFlag(key, f)
}

// Validate rejects values the demo cannot start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.State.Path == "" {
		return errors.New("state.path must not be empty")
	}
	return nil
}

// AssetPath joins rel onto the assets root.
func (c *Config) AssetPath(rel string) string {
	return filepath.Join(c.Assets.Root, rel)
}
