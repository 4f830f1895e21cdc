package config

import (
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "/config/bookswap.yaml"

	EnvironmentProduction = "production"
	EnvironmentTest       = "test"
)

// Config is loaded from an optional YAML file and then from the environment.
// Every key is the snake_case form of the field name, and its environment
// variable is the upper-cased key (e.g. database_file_path and
// DATABASE_FILE_PATH). Environment variables win over the file.
type Config struct {
	AllowRerequestAfterRejection bool          `koanf:"allow_rerequest_after_rejection"`
	CORSAllowedOrigins           []string      `koanf:"cors_allowed_origins"`
	DatabaseBusyTimeout          time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount    int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay    time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug                bool          `koanf:"database_debug"`
	DatabaseFilePath             string        `koanf:"database_file_path" required:"true"`
	Environment                  string        `koanf:"environment"`
	JWTLifetime                  time.Duration `koanf:"jwt_lifetime"`
	JWTSecret                    string        `koanf:"jwt_secret" required:"true"`
	RedisURL                     string        `koanf:"redis_url"`
	ResetTokenLifetime           time.Duration `koanf:"reset_token_lifetime"`
	ServerHost                   string        `koanf:"server_host"`
	ServerPort                   int           `koanf:"server_port"`
	VerifyTokenLifetime          time.Duration `koanf:"verify_token_lifetime"`
}

func defaults() *Config {
	return &Config{
		CORSAllowedOrigins:        []string{"http://localhost:3000"},
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		Environment:               EnvironmentProduction,
		JWTLifetime:               time.Hour,
		ResetTokenLifetime:        time.Hour,
		ServerHost:                "0.0.0.0",
		ServerPort:                8000,
		VerifyTokenLifetime:       24 * time.Hour,
	}
}

func New() (*Config, error) {
	cfg := defaults()
	k := koanf.New(".")

	path := os.Getenv(configFileENV)
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "loading config file %s", path)
		}
	}

	known := knownKeys()
	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := known[key]; !ok {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := validateRequired(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a config backed by an in-memory database.
func NewForTest() *Config {
	cfg := defaults()
	cfg.DatabaseFilePath = ":memory:"
	cfg.Environment = EnvironmentTest
	cfg.JWTSecret = "test-secret"
	cfg.ServerHost = "127.0.0.1"
	return cfg
}

func knownKeys() map[string]struct{} {
	keys := map[string]struct{}{}
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		keys[t.Field(i).Tag.Get("koanf")] = struct{}{}
	}
	return keys
}

func validateRequired(cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("required") != "true" {
			continue
		}
		if v.Field(i).IsZero() {
			key := field.Tag.Get("koanf")
			return errors.Errorf("missing required config: %s (%s)", strings.ToUpper(key), key)
		}
	}
	return nil
}

func toSnakeCase(s string) string {
	return strcase.ToSnake(s)
}
