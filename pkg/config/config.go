package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danilupion/turbo/pkg/db"
)

// DefaultTokenExpiration applies when the config file omits
// auth.jwt.expiration.
const DefaultTokenExpiration = 24 * time.Hour

var (
	// ErrReadFailed is returned when the config file cannot be read.
	ErrReadFailed = errors.New("config: failed to read file")

	// ErrParseFailed is returned when the config file is not valid YAML.
	ErrParseFailed = errors.New("config: failed to parse file")

	// ErrMissingSecret is returned when no token signing secret is
	// configured.
	ErrMissingSecret = errors.New("config: auth.jwt.secret is required")
)

// Config is the process-wide configuration. It is constructed once at
// startup, passed into constructors explicitly, and read-only afterwards.
type Config struct {
	Env      string     `yaml:"env" env:"APP_ENV"`
	Auth     AuthConfig `yaml:"auth"`
	Database db.Config  `yaml:"database"`
}

// AuthConfig groups authentication settings.
type AuthConfig struct {
	JWT      JWTConfig      `yaml:"jwt"`
	Google   ProviderConfig `yaml:"google"`
	Facebook ProviderConfig `yaml:"facebook"`
	GitHub   ProviderConfig `yaml:"github"`
}

// JWTConfig holds bearer-token settings.
type JWTConfig struct {
	Secret     string        `yaml:"secret" env:"AUTH_JWT_SECRET"`
	Expiration time.Duration `yaml:"expiration" env:"AUTH_JWT_EXPIRATION"`
}

// ProviderConfig holds delegated-login credentials for one provider.
// Environment overrides use the provider's prefix, e.g.
// GOOGLE_OAUTH_CLIENT_ID.
type ProviderConfig struct {
	ClientID     string   `yaml:"clientId"`
	ClientSecret string   `yaml:"clientSecret"`
	RedirectURL  string   `yaml:"redirectUrl"`
	Scopes       []string `yaml:"scopes"`
}

// IsProduction reports whether the environment is production. Unknown or
// empty environments are treated as production so diagnostics stay off by
// default.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "development", "dev", "test":
		return false
	default:
		return true
	}
}

// Load reads a YAML config file, applies environment overrides, fills
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}
	return Parse(raw)
}

// Parse builds a Config from raw YAML. Exposed separately so callers can
// source the document from somewhere other than the filesystem.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Join(ErrParseFailed, err)
	}

	cfg.applyEnv()

	if cfg.Auth.JWT.Expiration <= 0 {
		cfg.Auth.JWT.Expiration = DefaultTokenExpiration
	}
	if cfg.Auth.JWT.Secret == "" {
		return nil, ErrMissingSecret
	}
	return &cfg, nil
}

// applyEnv overlays environment variables onto file values. Environment
// always wins.
func (c *Config) applyEnv() {
	setString(&c.Env, "APP_ENV")
	setString(&c.Auth.JWT.Secret, "AUTH_JWT_SECRET")
	setDuration(&c.Auth.JWT.Expiration, "AUTH_JWT_EXPIRATION")
	setString(&c.Database.URL, "DATABASE_URL")

	c.Auth.Google.applyEnv("GOOGLE_OAUTH")
	c.Auth.Facebook.applyEnv("FACEBOOK_OAUTH")
	c.Auth.GitHub.applyEnv("GITHUB_OAUTH")
}

func (p *ProviderConfig) applyEnv(prefix string) {
	setString(&p.ClientID, prefix+"_CLIENT_ID")
	setString(&p.ClientSecret, prefix+"_CLIENT_SECRET")
	setString(&p.RedirectURL, prefix+"_REDIRECT_URL")
	if v := os.Getenv(prefix + "_SCOPES"); v != "" {
		p.Scopes = strings.Split(v, ",")
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	// Malformed overrides fall back to the file value.
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}
