package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	// DefaultLoginURL is the production login host; sandboxes use test.salesforce.com.
	DefaultLoginURL = "https://login.salesforce.com"

	// DefaultAPIVersion is the API version used when SF_API_VERSION is unset.
	DefaultAPIVersion = "62.0"
)

type Config struct {
	LoginURL      string
	ClientID      string
	ClientSecret  string
	Username      string
	Password      string
	SecurityToken string
	APIVersion    string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		LoginURL:      os.Getenv("SF_LOGIN_URL"),
		ClientID:      os.Getenv("SF_CLIENT_ID"),
		ClientSecret:  os.Getenv("SF_CLIENT_SECRET"),
		Username:      os.Getenv("SF_USERNAME"),
		Password:      os.Getenv("SF_PASSWORD"),
		SecurityToken: os.Getenv("SF_SECURITY_TOKEN"),
		APIVersion:    os.Getenv("SF_API_VERSION"),
	}

	if cfg.LoginURL == "" {
		cfg.LoginURL = DefaultLoginURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.LoginURL == "" {
		return fmt.Errorf("SF_LOGIN_URL is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("SF_CLIENT_ID is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("SF_CLIENT_SECRET is required")
	}
	if c.Username == "" {
		return fmt.Errorf("SF_USERNAME is required")
	}
	if c.Password == "" {
		return fmt.Errorf("SF_PASSWORD is required")
	}
	if c.APIVersion == "" {
		return fmt.Errorf("SF_API_VERSION is required")
	}
	// SecurityToken is optional: orgs with trusted IP ranges don't issue one.
	return nil
}
