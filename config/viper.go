package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Workers    int    `toml:"workers" mapstructure:"workers" json:"workers"`
	Lang       string `toml:"lang" mapstructure:"lang" json:"lang"`
	Output     string `toml:"output" mapstructure:"output" json:"output"`
	RenderHTML bool   `toml:"render_html" mapstructure:"render_html" json:"render_html"`
	Comments   bool   `toml:"comments" mapstructure:"comments" json:"comments"`
	NoProgress bool   `toml:"no_progress" mapstructure:"no_progress" json:"no_progress"`

	Log      logConfig      `toml:"log" mapstructure:"log" json:"log"`
	Download downloadConfig `toml:"download" mapstructure:"download" json:"download"`
}

type logConfig struct {
	Level string `toml:"level" mapstructure:"level" json:"level"`
	File  string `toml:"file" mapstructure:"file" json:"file"`
}

type downloadConfig struct {
	ConnectTimeout time.Duration `toml:"connect_timeout" mapstructure:"connect_timeout" json:"connect_timeout"`
	// Proxy URL (http, https, socks5, socks5h)
	Proxy string `toml:"proxy" mapstructure:"proxy" json:"proxy"`
}

var (
	cfg   *Config
	cfgMu sync.RWMutex
)

// C returns the loaded configuration, or the defaults before Init.
func C() Config {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	if cfg == nil {
		return defaultConfig()
	}
	return *cfg
}

func defaultConfig() Config {
	return Config{
		Workers:  1,
		Lang:     "en",
		Output:   ".",
		Comments: true,
		Log:      logConfig{Level: "INFO"},
		Download: downloadConfig{ConnectTimeout: 10 * time.Second},
	}
}

func setDefaults() {
	def := defaultConfig()
	viper.SetDefault("workers", def.Workers)
	viper.SetDefault("lang", def.Lang)
	viper.SetDefault("output", def.Output)
	viper.SetDefault("render_html", def.RenderHTML)
	viper.SetDefault("comments", def.Comments)
	viper.SetDefault("no_progress", def.NoProgress)

	viper.SetDefault("log.level", def.Log.Level)
	viper.SetDefault("log.file", def.Log.File)

	viper.SetDefault("download.connect_timeout", def.Download.ConnectTimeout)
	viper.SetDefault("download.proxy", def.Download.Proxy)
}

// Init loads configuration from configFile, or config.toml in the working
// directory or /etc/postsaver/, then from POSTSAVER_* variables, a .env file
// and bound command line flags. A missing config file is not an error.
func Init(ctx context.Context, configFile string) error {
	logger := log.FromContext(ctx)
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Failed to load .env file", "error", err)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/postsaver/")
	}
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("POSTSAVER")
	viper.AutomaticEnv()
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		logger.Debug("Loaded config file", "path", viper.ConfigFileUsed())
	}

	loaded := &Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := loaded.validate(); err != nil {
		return err
	}

	cfgMu.Lock()
	cfg = loaded
	cfgMu.Unlock()
	return nil
}

func (c *Config) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be greater than 0, got %d", c.Workers)
	}
	if c.Output == "" {
		return errors.New("output folder must not be empty")
	}
	if _, err := log.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.Download.ConnectTimeout <= 0 {
		return fmt.Errorf("download.connect_timeout must be positive, got %s", c.Download.ConnectTimeout)
	}
	return nil
}
