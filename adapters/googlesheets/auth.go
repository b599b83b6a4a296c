package googlesheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ServiceAccountKey represents the structure of a service account JSON key file
type ServiceAccountKey struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
	TokenURI    string `json:"token_uri"`
}

func (c Config) scope() string {
	if c.Scope != "" {
		return c.Scope
	}
	return sheets.SpreadsheetsScope
}

// NewWithJSONKeyFile creates a Provider using a JSON key file. An empty path
// falls back to GOOGLE_APPLICATION_CREDENTIALS.
func NewWithJSONKeyFile(ctx context.Context, config Config, jsonPath string) (*Provider, error) {
	if jsonPath == "" {
		jsonPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if jsonPath == "" {
			return nil, fmt.Errorf("no JSON key file path provided and GOOGLE_APPLICATION_CREDENTIALS not set")
		}
	}

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON key file: %w", err)
	}

	return NewWithJSONKeyData(ctx, config, jsonData)
}

// NewWithJSONKeyData creates a Provider using JSON key data.
func NewWithJSONKeyData(ctx context.Context, config Config, jsonData []byte) (*Provider, error) {
	creds, err := google.CredentialsFromJSON(ctx, jsonData, config.scope())
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return NewProvider(ctx, option.WithCredentials(creds))
}

// NewWithServiceAccountKey creates a Provider using email and private key.
func NewWithServiceAccountKey(ctx context.Context, config Config, email, privateKey string) (*Provider, error) {
	jwtConfig := &jwt.Config{
		Email:      email,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{config.scope()},
		TokenURL:   google.JWTTokenURL,
	}

	return NewProvider(ctx, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
}

// NewWithDefaultCredentials creates a Provider using Application Default
// Credentials (GOOGLE_APPLICATION_CREDENTIALS, gcloud auth, or the GCE
// metadata service).
func NewWithDefaultCredentials(ctx context.Context, config Config) (*Provider, error) {
	tokenSource, err := google.DefaultTokenSource(ctx, config.scope())
	if err != nil {
		return nil, fmt.Errorf("failed to get default token source: %w", err)
	}

	return NewProvider(ctx, option.WithTokenSource(tokenSource))
}

// ParseServiceAccountKey parses and validates a service account JSON key.
func ParseServiceAccountKey(jsonData []byte) (*ServiceAccountKey, error) {
	var key ServiceAccountKey
	if err := json.Unmarshal(jsonData, &key); err != nil {
		return nil, fmt.Errorf("failed to parse service account JSON: %w", err)
	}

	if key.Type != "service_account" {
		return nil, fmt.Errorf("invalid key type: %s (expected: service_account)", key.Type)
	}

	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, fmt.Errorf("missing required fields in service account key")
	}

	return &key, nil
}
