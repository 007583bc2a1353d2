package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/andrei-cloud/go_segop/pkg/payload"
)

var (
	configData Config
	v          = viper.New()
)

// Config holds all configuration settings.
type Config struct {
	// Server configuration
	Server struct {
		Host string
		Port int
	}
	// Payload policy
	Payload struct {
		MaxSize int `mapstructure:"max_size"`
	}
	// Logging configuration
	Log struct {
		Level  string
		Format string
	}
}

// Initialize sets up the configuration system. An empty cfgFile searches the default locations.
func Initialize(cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")          // name of config file (without extension)
		v.SetConfigType("yaml")            // config file type
		v.AddConfigPath(".")               // optionally look for config in working directory
		v.AddConfigPath("$HOME/.go_segop") // look for config in .go_segop directory in home
		v.AddConfigPath("/etc/go_segop/")  // path to look for the config file in

		// Create config file if it doesn't exist
		if err := ensureConfig(); err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
	}

	// Set default values
	setDefaults()

	// Environment variables
	v.SetEnvPrefix("GOSEGOP") // prefix for env vars
	v.AutomaticEnv()          // read in environment variables that match
	v.SetEnvKeyReplacer(      // replace dots with underscores in env vars
		strings.NewReplacer(".", "_"),
	)

	// Read in config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if we can't find a config file, we'll use defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal config into struct
	if err := v.Unmarshal(&configData); err != nil {
		return fmt.Errorf("unable to decode into config struct: %w", err)
	}

	return nil
}

// setDefaults sets default values for all configuration options.
func setDefaults() {
	// Server defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 1600)

	// Payload defaults
	v.SetDefault("payload.max_size", payload.MaxPayloadSize)

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "human")
}

// ensureConfig creates a default config file if none exists.
func ensureConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		// no home directory, defaults only
		return nil
	}

	dir := filepath.Join(home, ".go_segop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		// Create default config file
		defaultConfig := `# GO segOP Configuration File
server:
  host: localhost
  port: 1600

payload:
  max_size: 64000

log:
  level: info
  format: human
`
		if err := os.WriteFile(configFile, []byte(defaultConfig), 0o644); err != nil {
			return err
		}
	}

	return nil
}

// BindPFlag binds a command-line flag to a configuration key so the flag overrides file and env values.
func BindPFlag(key string, flag *pflag.Flag) error {
	return v.BindPFlag(key, flag)
}

// Get returns the current configuration.
func Get() *Config {
	return &configData
}

// GetViper returns the viper instance.
func GetViper() *viper.Viper {
	return v
}

// Reset discards loaded settings and bindings.
func Reset() {
	v = viper.New()
	configData = Config{}
}
