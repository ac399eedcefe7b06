// Package config loads the catalog service configuration from defaults, an
// optional config.yaml, an optional .env file and CATALOG_* environment
// variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix = "CATALOG_"

	defaultConfigFile = "config.yaml"
	defaultEnvFile    = ".env"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Service string `koanf:"service"`

	Server struct {
		Port           int `koanf:"port"`
		MaxHeaderBytes int `koanf:"maxHeaderBytes"`
		Timeout        struct {
			Read       time.Duration `koanf:"read"`
			Write      time.Duration `koanf:"write"`
			Idle       time.Duration `koanf:"idle"`
			ReadHeader time.Duration `koanf:"readHeader"`
			Shutdown   time.Duration `koanf:"shutdown"`
		} `koanf:"timeout"`
	} `koanf:"server"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`

	Metrics struct {
		Enabled bool   `koanf:"enabled"`
		Token   string `koanf:"token"`
	} `koanf:"metrics"`

	Catalog struct {
		Seed bool `koanf:"seed"`
	} `koanf:"catalog"`
}

func defaults() map[string]any {
	return map[string]any{
		"service":                   "catalog",
		"server.port":               8082,
		"server.maxHeaderBytes":     1 << 20,
		"server.timeout.read":       "5s",
		"server.timeout.write":      "10s",
		"server.timeout.idle":       "60s",
		"server.timeout.readHeader": "5s",
		"server.timeout.shutdown":   "10s",
		"log.level":                 "info",
		"metrics.enabled":           true,
		"metrics.token":             "",
		"catalog.seed":              true,
	}
}

// Sources names the optional files Load reads. Empty paths are skipped.
type Sources struct {
	ConfigFile string
	EnvFile    string
}

func DefaultSources() Sources {
	return Sources{ConfigFile: defaultConfigFile, EnvFile: defaultEnvFile}
}

func Load() (*Config, error) {
	return LoadFrom(DefaultSources())
}

func LoadFrom(src Sources) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if src.ConfigFile != "" {
		if err := k.Load(file.Provider(src.ConfigFile), yaml.Parser()); err != nil && !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config %q: %v", src.ConfigFile, err)
		}
	}

	if src.EnvFile != "" {
		if envFileMap, err := godotenv.Read(src.EnvFile); err == nil {
			envMap := make(map[string]any, len(envFileMap))
			for key, value := range envFileMap {
				if !strings.HasPrefix(strings.ToUpper(key), EnvPrefix) {
					continue
				}
				envMap[keyTransformer(key)] = value
			}
			if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
				log.Printf("WARN: error loading .env config: %v", err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("WARN: error reading .env file: %v", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", keyTransformer), nil); err != nil {
		log.Printf("WARN: error loading env vars: %v", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Service == "" {
		return fmt.Errorf("%w: service name is empty", ErrInvalid)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: HTTP server port: %d", ErrInvalid, c.Server.Port)
	}
	if c.Server.MaxHeaderBytes <= 0 {
		return fmt.Errorf("%w: HTTP server max header bytes: %d", ErrInvalid, c.Server.MaxHeaderBytes)
	}

	t := c.Server.Timeout
	for name, d := range map[string]time.Duration{
		"read":       t.Read,
		"write":      t.Write,
		"idle":       t.Idle,
		"readHeader": t.ReadHeader,
		"shutdown":   t.Shutdown,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: HTTP server %s timeout: %v", ErrInvalid, name, d)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c Config) String() string {
	return fmt.Sprintf("service=%s, server.port=%d, server.maxHeaderBytes=%d, server.timeout.read=%v, server.timeout.write=%v, server.timeout.idle=%v, server.timeout.readHeader=%v, server.timeout.shutdown=%v, log.level=%s, metrics.enabled=%t, metrics.token=%s, catalog.seed=%t",
		c.Service,
		c.Server.Port,
		c.Server.MaxHeaderBytes,
		c.Server.Timeout.Read,
		c.Server.Timeout.Write,
		c.Server.Timeout.Idle,
		c.Server.Timeout.ReadHeader,
		c.Server.Timeout.Shutdown,
		c.Log.Level,
		c.Metrics.Enabled,
		maskSecret(c.Metrics.Token),
		c.Catalog.Seed,
	)
}

func maskSecret(s string) string {
	if s == "" {
		return "<not configured>"
	}
	return "****"
}

// camelSegments restores the camelCase key segments that environment
// variable names cannot carry.
var camelSegments = map[string]string{
	"maxheaderbytes": "maxHeaderBytes",
	"readheader":     "readHeader",
}

// keyTransformer maps CATALOG_SERVER_TIMEOUT_READHEADER to
// server.timeout.readHeader.
func keyTransformer(key string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, strings.ToLower(EnvPrefix))

	parts := strings.Split(key, "_")
	for i, p := range parts {
		if c, ok := camelSegments[p]; ok {
			parts[i] = c
		}
	}
	return strings.Join(parts, ".")
}
