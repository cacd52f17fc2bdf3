package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DBConfig Database config
type DBConfig struct {
	Type     string `yaml:"type" validate:"oneof=sqlite postgres"` // sqlite or postgres
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" validate:"gte=0,lte=65535"`
	Name     string `yaml:"name" validate:"required"` // database name, or file path for sqlite
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn" validate:"gte=0"`
	IdleConn int    `yaml:"idle_conn" validate:"gte=0"`
	Debug    bool   `yaml:"debug"`
}

// SysConfig System config
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir" validate:"required"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig Web config
type WebConfig struct {
	Host          string   `yaml:"host"`
	Port          int      `yaml:"port" validate:"gt=0,lte=65535"`
	StaticDir     string   `yaml:"static_dir"`
	CorsOrigins   []string `yaml:"cors_origins"`
	BodyLimit     string   `yaml:"body_limit"`
	RateLimit     float64  `yaml:"rate_limit" validate:"gte=0"` // requests per second per client, 0 disables
	RateBurst     int      `yaml:"rate_burst" validate:"gte=0"`
	MetricsEnable bool     `yaml:"metrics_enable"`
}

// LogConfig Log config
type LogConfig struct {
	Mode       string `yaml:"mode" validate:"oneof=development production"`
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system"`
	Web      WebConfig `yaml:"web"`
	Database DBConfig  `yaml:"database"`
	Logger   LogConfig `yaml:"logger"`
}

// GetLogDir returns the log directory under the workdir
func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

// GetDataDir returns the data directory under the workdir
func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

// ListenAddr returns host:port for the HTTP server
func (c *AppConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}

// Validate checks field constraints on the loaded config
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if c.Logger.FileEnable && strings.TrimSpace(c.Logger.Filename) == "" {
		return errors.New("invalid config: logger.filename is required when file_enable is set")
	}
	return nil
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Inventory",
		Location: "Local",
		Workdir:  "./var/inventory",
		Debug:    false,
	},
	Web: WebConfig{
		Host:          "0.0.0.0",
		Port:          3000,
		StaticDir:     "public",
		CorsOrigins:   []string{"*"},
		BodyLimit:     "1M",
		RateLimit:     20,
		RateBurst:     40,
		MetricsEnable: true,
	},
	Database: DBConfig{
		Type:     "sqlite",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "inventory.db",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  20,
		IdleConn: 5,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		Level:      "info",
		FileEnable: false,
		Filename:   "./var/inventory/logs/inventory.log",
	},
}

// LoadConfig reads the YAML config file (optional), then .env, then
// INVENTORY_* environment overrides, and validates the result.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	cfg.Web.CorsOrigins = append([]string(nil), DefaultAppConfig.Web.CorsOrigins...)

	if cfile == "" {
		for _, candidate := range []string{"inventory.yml", "/etc/inventory.yml"} {
			if fileExists(candidate) {
				cfile = candidate
				break
			}
		}
	}

	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", cfile)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", cfile)
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setEnvValue("INVENTORY_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvValue("INVENTORY_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("INVENTORY_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("INVENTORY_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("INVENTORY_WEB_PORT", &cfg.Web.Port)
	setEnvValue("INVENTORY_WEB_STATIC_DIR", &cfg.Web.StaticDir)
	setEnvValue("INVENTORY_WEB_BODY_LIMIT", &cfg.Web.BodyLimit)
	setEnvFloatValue("INVENTORY_WEB_RATE_LIMIT", &cfg.Web.RateLimit)
	setEnvIntValue("INVENTORY_WEB_RATE_BURST", &cfg.Web.RateBurst)
	setEnvBoolValue("INVENTORY_WEB_METRICS_ENABLE", &cfg.Web.MetricsEnable)
	if v := os.Getenv("INVENTORY_WEB_CORS_ORIGINS"); v != "" {
		cfg.Web.CorsOrigins = splitList(v)
	}

	setEnvValue("INVENTORY_DB_TYPE", &cfg.Database.Type)
	setEnvValue("INVENTORY_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("INVENTORY_DB_PORT", &cfg.Database.Port)
	setEnvValue("INVENTORY_DB_NAME", &cfg.Database.Name)
	setEnvValue("INVENTORY_DB_USER", &cfg.Database.User)
	setEnvValue("INVENTORY_DB_PWD", &cfg.Database.Passwd)
	setEnvIntValue("INVENTORY_DB_MAX_CONN", &cfg.Database.MaxConn)
	setEnvIntValue("INVENTORY_DB_IDLE_CONN", &cfg.Database.IdleConn)
	setEnvBoolValue("INVENTORY_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("INVENTORY_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvValue("INVENTORY_LOGGER_LEVEL", &cfg.Logger.Level)
	setEnvBoolValue("INVENTORY_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("INVENTORY_LOGGER_FILENAME", &cfg.Logger.Filename)
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

// Unparseable values are ignored and the previous value kept.
func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			*val = b
		}
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		if i, err := cast.ToIntE(strings.TrimSpace(v)); err == nil {
			*val = i
		}
	}
}

func setEnvFloatValue(name string, val *float64) {
	if v := os.Getenv(name); v != "" {
		if f, err := cast.ToFloat64E(strings.TrimSpace(v)); err == nil {
			*val = f
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func fileExists(file string) bool {
	info, err := os.Stat(file)
	return err == nil && !info.IsDir()
}
