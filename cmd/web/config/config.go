package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "CLINIC"

type HTTP struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type Storage struct {
	Driver     string `mapstructure:"driver"`
	BoltPath   string `mapstructure:"bolt_path"`
	MemoryPath string `mapstructure:"memory_path"`
}

type Breaker struct {
	FailureThreshold int           `mapstructure:"failure_threshold"`
	SuccessThreshold int           `mapstructure:"success_threshold"`
	OpenTimeout      time.Duration `mapstructure:"open_timeout"`
}

type Gateway struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Latency time.Duration `mapstructure:"latency"`
	Breaker Breaker       `mapstructure:"breaker"`
}

type Health struct {
	TTL          time.Duration `mapstructure:"ttl"`
	CheckTimeout time.Duration `mapstructure:"check_timeout"`
}

type ServiceSeed struct {
	ID          string `mapstructure:"id"`
	Title       string `mapstructure:"title"`
	Price       string `mapstructure:"price"`
	Currency    string `mapstructure:"currency"`
	Description string `mapstructure:"description"`
}

type UserSeed struct {
	ID    string `mapstructure:"id"`
	Email string `mapstructure:"email"`
	Name  string `mapstructure:"name"`
	Role  string `mapstructure:"role"`
}

type Config struct {
	HTTP    HTTP    `mapstructure:"http"`
	Storage Storage `mapstructure:"storage"`
	Journal struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"journal"`
	Audit struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"audit"`
	Gateway Gateway `mapstructure:"gateway"`
	Health  Health  `mapstructure:"health"`
	Catalog struct {
		Services []ServiceSeed `mapstructure:"services"`
	} `mapstructure:"catalog"`
	Users []UserSeed `mapstructure:"users"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_header_timeout", 2*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("storage.driver", "bolt")
	v.SetDefault("storage.bolt_path", "./out/clinic.db")
	v.SetDefault("storage.memory_path", "")
	v.SetDefault("journal.path", "./out/journal.jsonl")
	v.SetDefault("audit.path", "./out/audit.jsonl")
	v.SetDefault("gateway.timeout", 5*time.Second)
	v.SetDefault("gateway.latency", 20*time.Millisecond)
	v.SetDefault("gateway.breaker.failure_threshold", 3)
	v.SetDefault("gateway.breaker.success_threshold", 1)
	v.SetDefault("gateway.breaker.open_timeout", 2*time.Second)
	v.SetDefault("health.ttl", 2*time.Second)
	v.SetDefault("health.check_timeout", 500*time.Millisecond)
}

// Load reads defaults, then the YAML file at path (or $CLINIC_CONFIG), then
// CLINIC_* environment overrides such as CLINIC_STORAGE_DRIVER.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "bolt":
		if c.Storage.BoltPath == "" {
			return errors.New("config: storage.bolt_path is required for the bolt driver")
		}
	case "memory":
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Gateway.Timeout <= 0 {
		return errors.New("config: gateway.timeout must be positive")
	}
	return nil
}
