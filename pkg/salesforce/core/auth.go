package sfcore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/perchlabs/sforce/pkg/config"
	httpclient "github.com/perchlabs/sforce/pkg/http"
	"go.uber.org/zap"
)

// AuthResponse represents the OAuth token response
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
	ID          string `json:"id"`
	TokenType   string `json:"token_type"`
	IssuedAt    string `json:"issued_at"`
	Signature   string `json:"signature"`
}

// Login performs the resource-owner-password grant against the login host
// and returns a fully populated Session. The security token, when present,
// is appended to the password per the platform's password-grant convention.
func Login(ctx context.Context, transport *httpclient.Client, cfg *config.Config, logger *zap.Logger) (*Session, error) {
	endpoint := fmt.Sprintf("%s/services/oauth2/token", strings.TrimSuffix(cfg.LoginURL, "/"))
	logger.Info("Authenticating with Salesforce", zap.String("url", endpoint), zap.String("username", cfg.Username))

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", cfg.ClientID)
	form.Set("client_secret", cfg.ClientSecret)
	form.Set("username", cfg.Username)
	form.Set("password", cfg.Password+cfg.SecurityToken)

	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	resp, err := transport.Post(ctx, endpoint, headers, form)
	if err != nil {
		logger.Error("Authentication request failed", zap.Error(err), zap.String("url", endpoint))
		return nil, fmt.Errorf("authentication request failed: %w", err)
	}

	if resp.StatusCode != 200 {
		logger.Error("Authentication failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(resp.Body)))
		return nil, &AuthError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
			Body:       resp.Body,
		}
	}

	var authResp AuthResponse
	if err := json.Unmarshal(resp.Body, &authResp); err != nil {
		logger.Error("Failed to parse authentication response", zap.Error(err))
		return nil, fmt.Errorf("failed to parse authentication response: %w", err)
	}

	if authResp.AccessToken == "" || authResp.InstanceURL == "" {
		logger.Error("Authentication response missing token or instance URL")
		return nil, &AuthError{
			StatusCode: resp.StatusCode,
			Message:    "token response missing access_token or instance_url",
			Body:       resp.Body,
		}
	}

	session := &Session{
		AccessToken: authResp.AccessToken,
		InstanceURL: authResp.InstanceURL,
		APIVersion:  cfg.APIVersion,
	}
	session.derive()

	logger.Info("Successfully authenticated",
		zap.String("token_type", authResp.TokenType),
		zap.String("instance_url", authResp.InstanceURL))

	return session, nil
}
