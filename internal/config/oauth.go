package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
)

// OAuthClientConfig represents the Google OAuth client configuration used for publishing
type OAuthClientConfig struct {
	Installed OAuthInstalled `json:"installed" validate:"required"`
}

// OAuthInstalled represents the installed section of OAuth config
type OAuthInstalled struct {
	ClientID                string   `json:"client_id" validate:"required"`
	ProjectID               string   `json:"project_id" validate:"required"`
	AuthURI                 string   `json:"auth_uri" validate:"required,url"`
	TokenURI                string   `json:"token_uri" validate:"required,url"`
	AuthProviderX509CertURL string   `json:"auth_provider_x509_cert_url" validate:"required,url"`
	ClientSecret            string   `json:"client_secret" validate:"required"`
	RedirectURIs            []string `json:"redirect_uris" validate:"required,min=1,dive,uri"`
}

// LoadOAuthClientWithEnv loads oauthClient.<env>.json from the current or home directory
func LoadOAuthClientWithEnv(env string) (*OAuthClientConfig, error) {
	path, err := findFile(fileNameForEnv("oauthClient", env, "json"))
	if err != nil {
		return nil, fmt.Errorf("failed to find oauth client file: %w", err)
	}

	return LoadOAuthClientFromPath(path)
}

// LoadOAuthClientFromPath loads and validates the OAuth client configuration from a specific path
func LoadOAuthClientFromPath(path string) (*OAuthClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth client file: %w", err)
	}

	var oauthCfg OAuthClientConfig
	if err := json.Unmarshal(data, &oauthCfg); err != nil {
		return nil, fmt.Errorf("failed to parse oauth client file: %w", err)
	}

	if err := validate.Struct(&oauthCfg); err != nil {
		return nil, fmt.Errorf("oauth client validation failed: %w", err)
	}

	if !oauthCfg.Installed.HasLoopbackRedirect() {
		return nil, fmt.Errorf("oauth client validation failed: no localhost redirect URI (the publish flow listens on localhost)")
	}

	return &oauthCfg, nil
}

// HasLoopbackRedirect reports whether the client allows redirects to localhost
func (o OAuthInstalled) HasLoopbackRedirect() bool {
	for _, raw := range o.RedirectURIs {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		switch u.Hostname() {
		case "localhost", "127.0.0.1", "::1":
			return true
		}
	}
	return false
}
