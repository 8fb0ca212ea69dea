package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("SF_CLIENT_ID", "client-id")
	t.Setenv("SF_CLIENT_SECRET", "client-secret")
	t.Setenv("SF_USERNAME", "user@example.com")
	t.Setenv("SF_PASSWORD", "hunter2")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SF_LOGIN_URL", "")
	t.Setenv("SF_API_VERSION", "")
	t.Setenv("SF_SECURITY_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultLoginURL, cfg.LoginURL)
	assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
	assert.Empty(t, cfg.SecurityToken)
}

func TestLoadReadsEnvironment(t *testing.T) {
	setRequired(t)
	t.Setenv("SF_LOGIN_URL", "https://test.salesforce.com")
	t.Setenv("SF_SECURITY_TOKEN", "tok123")
	t.Setenv("SF_API_VERSION", "60.0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://test.salesforce.com", cfg.LoginURL)
	assert.Equal(t, "tok123", cfg.SecurityToken)
	assert.Equal(t, "60.0", cfg.APIVersion)
}

func TestValidateRequiresCredentials(t *testing.T) {
	cfg := &Config{
		LoginURL:   DefaultLoginURL,
		APIVersion: DefaultAPIVersion,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SF_CLIENT_ID")

	cfg.ClientID = "id"
	cfg.ClientSecret = "secret"
	cfg.Username = "user@example.com"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SF_PASSWORD")

	cfg.Password = "pw"
	assert.NoError(t, cfg.Validate())
}
