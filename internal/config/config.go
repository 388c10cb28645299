// Package config contains utilities for loading configs
package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/matt-dz/foodgram/internal/password"
)

const (
	defaultConfigFilePath = "/data/foodgram.yaml"
	configPathEnv         = "FOODGRAM_CONFIG"
	appSecretBytes        = 32
	appSecretFilePerms    = 0o600
)

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

const (
	defaultHostOrigin = "http://localhost:8080"
	defaultHTTPPort   = 8080
	defaultVolume     = "/data/media"
	defaultURLPrefix  = "/media"
	defaultRateLimit  = 100
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	}
	return fmt.Errorf("unknown log level: %q", l)
}

// Level maps the configured level to slog. Unknown values mean info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type StorageBackend string

const (
	StorageLocal StorageBackend = "local"
	StorageS3    StorageBackend = "s3"
)

func (s StorageBackend) Validate() error {
	switch s {
	case StorageLocal, StorageS3:
		return nil
	}
	return fmt.Errorf("unknown storage backend: %q", s)
}

type AdminPassword string

func (a AdminPassword) Validate() error {
	return password.ValidatePassword(string(a))
}

type AppSecretValue string

func (a *AppSecretValue) Validate() error {
	if a == nil {
		return errors.New("secret should not be nil")
	}
	if len([]byte(*a)) < appSecretBytes {
		return errors.New("secret should be at least 32 bytes")
	}
	return nil
}

func splitFieldList(param string) []string {
	// "A,B,C" or "A B C"
	param = strings.ReplaceAll(param, " ", ",")
	parts := strings.Split(param, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// allOrNothing implements a cross-field validator for go-playground/validator.
//
// It succeeds only if every field listed in the tag parameter is zero, or
// every one of them is non-zero. Nil pointers and interfaces count as zero;
// non-nil ones are dereferenced first. The validator must be attached to a
// placeholder field and inspects the parent struct. A missing parent, an
// unknown field name or an empty list fails validation to signal
// misconfiguration.
func allOrNothing(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Pointer {
		if parent.IsNil() {
			return true // nothing to validate
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}

	names := splitFieldList(fl.Param())
	if len(names) == 0 {
		return false
	}

	hasZero := false
	hasNonZero := false

	for _, name := range names {
		f := parent.FieldByName(name)
		if !f.IsValid() {
			return false // field name typo / not found
		}

		for (f.Kind() == reflect.Pointer || f.Kind() == reflect.Interface) && !f.IsNil() {
			f = f.Elem()
		}

		if f.IsZero() {
			hasZero = true
		} else {
			hasNonZero = true
		}

		if hasZero && hasNonZero {
			return false
		}
	}

	return true
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("allOrNothing", allOrNothing)
	return v
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors) //nolint:errorlint
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		if e.Tag() == "allOrNothing" {
			// "Config.Storage.S3.Validate" -> "S3"
			parts := strings.Split(e.Namespace(), ".")
			var structName string
			//nolint:mnd
			if len(parts) >= 2 {
				structName = parts[len(parts)-2]
			}

			var fields string
			switch structName {
			case "Database":
				fields = "Port, Host, Database, User, and Password"
			case "Admin":
				fields = "Email, Username, FirstName, LastName, and Password"
			case "S3":
				fields = "Endpoint, Bucket, AccessKey, and SecretKey"
			default:
				fields = "all related fields"
			}

			return fmt.Errorf(
				"%s configuration is incomplete: either all fields must be set (%s) or all must be empty",
				structName, fields)
		}
	}

	return err
}

type AppSecret struct {
	Value   *AppSecretValue `yaml:"value" validate:"omitempty,validateFn"`
	Path    string          `yaml:"path" validate:"omitempty,filepath"`
	Version string          `yaml:"version"`
}

type Database struct {
	Port     uint16 `yaml:"port"`
	Host     string `yaml:"host" validate:"omitempty,hostname_rfc1123"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Port Host Database User Password"`
}

// DSN renders the connection string pgx expects.
func (d Database) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.FormatUint(uint64(d.Port), 10)),
		Path:   "/" + d.Database,
	}
	return u.String()
}

type HTTP struct {
	Port           uint16   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" validate:"dive,url"`
	// RateLimit is requests per minute per client IP. Zero disables it.
	RateLimit int `yaml:"rate_limit" validate:"gte=0"`
}

type S3 struct {
	Endpoint  string `yaml:"endpoint" validate:"omitempty,hostname_port|hostname_rfc1123"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	PublicURL string `yaml:"public_url" validate:"omitempty,url"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Endpoint Bucket AccessKey SecretKey"`
}

type Storage struct {
	Backend   StorageBackend `yaml:"backend" validate:"validateFn"`
	Volume    string         `yaml:"volume"`
	URLPrefix string         `yaml:"url_prefix"`
	S3        S3             `yaml:"s3"`
}

type Admin struct {
	Email     string        `yaml:"email" validate:"omitempty,email"`
	Username  string        `yaml:"username"`
	FirstName string        `yaml:"first_name"`
	LastName  string        `yaml:"last_name"`
	Password  AdminPassword `yaml:"password" validate:"omitempty,validateFn"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Email Username FirstName LastName Password"`
}

// Enabled reports whether an admin account should be bootstrapped.
func (a Admin) Enabled() bool {
	return a.Email != ""
}

type Config struct {
	AppSecret  AppSecret `yaml:"app_secret"`
	Admin      Admin     `yaml:"admin"`
	Storage    Storage   `yaml:"storage"`
	Database   Database  `yaml:"database"`
	HTTP       HTTP      `yaml:"http"`
	HostOrigin string    `yaml:"host_origin" validate:"url"`
	LogLevel   LogLevel  `yaml:"log_level" validate:"validateFn"`
	Env        string    `yaml:"env" validate:"omitempty,oneof=DEV PROD"`
}

func (c *Config) setDefaults() {
	if c.AppSecret.Path == "" {
		c.AppSecret.Path = "/data/secret"
	}
	if c.AppSecret.Version == "" {
		c.AppSecret.Version = "1"
	}
	if c.Env == "" {
		c.Env = EnvDev
	}
	if c.LogLevel == "" {
		c.LogLevel = LogLevelInfo
		if c.Env == EnvDev {
			c.LogLevel = LogLevelDebug
		}
	}
	if c.HostOrigin == "" {
		c.HostOrigin = defaultHostOrigin
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = defaultHTTPPort
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{c.HostOrigin}
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageLocal
	}
	if c.Storage.Volume == "" {
		c.Storage.Volume = defaultVolume
	}
	if c.Storage.URLPrefix == "" {
		c.Storage.URLPrefix = defaultURLPrefix
	}
}

func (c *Config) validate() error {
	if err := newValidator().Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Storage.Backend == StorageS3 && c.Storage.S3.Endpoint == "" {
		return errors.New("storage backend s3 requires the s3 section")
	}
	return nil
}

func newAppSecret() (string, error) {
	token := make([]byte, appSecretBytes)
	if _, err := rand.Reader.Read(token); err != nil {
		return "", fmt.Errorf("creating app secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(token), nil
}

func loadAppSecret(config *Config) error {
	if config.AppSecret.Value != nil {
		return nil
	}

	var secret string
	if f1, err := os.Lstat(config.AppSecret.Path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking secret path: %w", err)
		}

		file, err := os.OpenFile(config.AppSecret.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, appSecretFilePerms)
		if err != nil {
			return fmt.Errorf("creating secret file: %w", err)
		}
		defer func() { _ = file.Close() }()

		secret, err = newAppSecret()
		if err != nil {
			return fmt.Errorf("generating new app secret: %w", err)
		}

		if _, err := file.WriteString(secret); err != nil {
			return fmt.Errorf("writing secret file: %w", err)
		}
	} else {
		if f1.IsDir() {
			return fmt.Errorf("expected file, got directory at %q", config.AppSecret.Path)
		}
		data, err := os.ReadFile(config.AppSecret.Path)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		secret = strings.TrimSpace(string(data))
	}
	val := AppSecretValue(secret)
	config.AppSecret.Value = &val
	return nil
}

func loadWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parsePort(key, value string) (uint16, error) {
	if value == "" {
		return 0, nil
	}
	port, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s (%q): %w", key, value, err)
	}
	return uint16(port), nil
}

func loadConfigFromEnv() (Config, error) {
	conf := Config{
		Env:        loadWithDefault("ENV", ""),
		HostOrigin: loadWithDefault("HOST_ORIGIN", ""),
		LogLevel:   LogLevel(loadWithDefault("LOG_LEVEL", "")),
		AppSecret: AppSecret{
			Path:    loadWithDefault("APP_SECRET_PATH", ""),
			Version: loadWithDefault("APP_SECRET_VERSION", ""),
		},
		Database: Database{
			Host:     loadWithDefault("DATABASE_HOST", ""),
			Database: loadWithDefault("DATABASE", ""),
			User:     loadWithDefault("DATABASE_USER", ""),
			Password: loadWithDefault("DATABASE_PASSWORD", ""),
		},
		HTTP: HTTP{
			AllowedOrigins: splitFieldList(loadWithDefault("HTTP_ALLOWED_ORIGINS", "")),
			RateLimit:      defaultRateLimit,
		},
		Storage: Storage{
			Backend:   StorageBackend(loadWithDefault("STORAGE_BACKEND", "")),
			Volume:    loadWithDefault("STORAGE_VOLUME", ""),
			URLPrefix: loadWithDefault("STORAGE_URL_PREFIX", ""),
			S3: S3{
				Endpoint:  loadWithDefault("S3_ENDPOINT", ""),
				Bucket:    loadWithDefault("S3_BUCKET", ""),
				Region:    loadWithDefault("S3_REGION", ""),
				AccessKey: loadWithDefault("S3_ACCESS_KEY", ""),
				SecretKey: loadWithDefault("S3_SECRET_KEY", ""),
				PublicURL: loadWithDefault("S3_PUBLIC_URL", ""),
			},
		},
		Admin: Admin{
			Email:     loadWithDefault("ADMIN_EMAIL", ""),
			Username:  loadWithDefault("ADMIN_USERNAME", ""),
			FirstName: loadWithDefault("ADMIN_FIRST_NAME", ""),
			LastName:  loadWithDefault("ADMIN_LAST_NAME", ""),
			Password:  AdminPassword(loadWithDefault("ADMIN_PASSWORD", "")),
		},
	}

	if secret := loadWithDefault("APP_SECRET", ""); secret != "" {
		val := AppSecretValue(secret)
		conf.AppSecret.Value = &val
	}

	var err error
	if conf.Database.Port, err = parsePort("DATABASE_PORT", loadWithDefault("DATABASE_PORT", "")); err != nil {
		return conf, err
	}
	if conf.HTTP.Port, err = parsePort("HTTP_PORT", loadWithDefault("HTTP_PORT", "")); err != nil {
		return conf, err
	}
	if v := loadWithDefault("HTTP_RATE_LIMIT", ""); v != "" {
		if conf.HTTP.RateLimit, err = strconv.Atoi(v); err != nil {
			return conf, fmt.Errorf("invalid HTTP_RATE_LIMIT (%q): %w", v, err)
		}
	}
	if v := loadWithDefault("S3_USE_SSL", "false"); v != "" {
		if conf.Storage.S3.UseSSL, err = strconv.ParseBool(v); err != nil {
			return conf, fmt.Errorf("invalid S3_USE_SSL (%q): %w", v, err)
		}
	}

	conf.setDefaults()
	if err := conf.validate(); err != nil {
		return conf, err
	}

	if err := loadAppSecret(&conf); err != nil {
		return conf, fmt.Errorf("loading app secret: %w", err)
	}

	return conf, nil
}

func loadConfigFromFile(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	config := Config{HTTP: HTTP{RateLimit: defaultRateLimit}}
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	config.setDefaults()
	if err := config.validate(); err != nil {
		return Config{}, err
	}

	if err := loadAppSecret(&config); err != nil {
		return Config{}, fmt.Errorf("loading app secret: %w", err)
	}

	return config, nil
}

func configFileExists(path string) bool {
	f, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return !f.IsDir()
}

// LoadConfig reads the YAML file named by FOODGRAM_CONFIG (default
// /data/foodgram.yaml) and falls back to environment variables when the
// file does not exist.
func LoadConfig() (Config, error) {
	path := loadWithDefault(configPathEnv, defaultConfigFilePath)
	if configFileExists(path) {
		return loadConfigFromFile(path)
	}

	return loadConfigFromEnv()
}
