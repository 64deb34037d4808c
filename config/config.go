package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config is the configuration for the buysimply server.
type Config struct {
	// Environment is "production" or "development". It controls failure
	// logging verbosity and stack-trace exposure in error envelopes.
	Environment string `hcl:"environment,optional"`

	LogLevel  string `hcl:"log_level,optional"`
	LogFormat string `hcl:"log_format,optional"`
	LogFile   string `hcl:"log_file,optional"`

	Listener *ListenerBlock `hcl:"listener,block"`
	Auth     *AuthBlock     `hcl:"auth,block"`
	Throttle *ThrottleBlock `hcl:"throttle,block"`
	Data     *DataBlock     `hcl:"data,block"`
}

type ListenerBlock struct {
	Name    string `hcl:"name,label"`
	Address string `hcl:"address"`
}

type AuthBlock struct {
	// JWTSecret signs issued tokens. Can also come from BUYSIMPLY_JWT_SECRET.
	JWTSecret string `hcl:"jwt_secret,optional"`

	// TokenTTL is a duration string, e.g. "10m".
	TokenTTL string `hcl:"token_ttl,optional"`
}

type ThrottleBlock struct {
	Limit  int    `hcl:"limit,optional"`
	Window string `hcl:"window,optional"`
}

type DataBlock struct {
	LoansFile  string `hcl:"loans_file,optional"`
	StaffsFile string `hcl:"staffs_file,optional"`
}

// LoadConfig reads and validates an HCL configuration file.
func LoadConfig(configFile string) (*Config, error) {
	var config Config

	err := hclsimple.DecodeFile(configFile, nil, &config)
	if err != nil {
		return nil, err
	}

	config.applyEnvironment()

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyEnvironment fills settings that may come from the process
// environment instead of the file.
func (c *Config) applyEnvironment() {
	if env := os.Getenv("BUYSIMPLY_ENV"); env != "" {
		c.Environment = env
	}
	if c.Auth == nil {
		c.Auth = &AuthBlock{}
	}
	if secret := os.Getenv("BUYSIMPLY_JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}
}

func (c *Config) validate() error {
	switch c.Environment {
	case "", "development", "production":
	default:
		return fmt.Errorf("invalid environment %q, must be \"development\" or \"production\"", c.Environment)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret (or BUYSIMPLY_JWT_SECRET) is required")
	}
	if _, err := c.TokenTTL(); err != nil {
		return err
	}
	if _, err := c.ThrottleWindow(); err != nil {
		return err
	}
	return nil
}

// IsProduction reports whether the production configuration is active.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// TokenTTL returns the configured token lifetime, zero when unset.
func (c *Config) TokenTTL() (time.Duration, error) {
	if c.Auth == nil || c.Auth.TokenTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Auth.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid auth.token_ttl: %w", err)
	}
	return d, nil
}

// ThrottleWindow returns the configured throttle window, zero when unset.
func (c *Config) ThrottleWindow() (time.Duration, error) {
	if c.Throttle == nil || c.Throttle.Window == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Throttle.Window)
	if err != nil {
		return 0, fmt.Errorf("invalid throttle.window: %w", err)
	}
	return d, nil
}

// ListenAddress returns the listener address, with a sensible default.
func (c *Config) ListenAddress() string {
	if c.Listener == nil || c.Listener.Address == "" {
		return "0.0.0.0:3000"
	}
	return c.Listener.Address
}
