package config

import "fmt"

// ServerConfig is the configuration view for the development remote backend.
type ServerConfig struct {
	// HTTPAddress is the listen address in host:port form.
	HTTPAddress string
	// TokenSignKey verifies inbound session tokens at the token endpoint.
	TokenSignKey string
	// TokenIssuer is the expected "iss" claim of inbound session tokens.
	TokenIssuer string
}

// GetServerConfig builds and validates the dev server config view from the
// merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		HTTPAddress:  cfg.Server.HTTPAddress,
		TokenSignKey: cfg.Server.TokenSignKey,
		TokenIssuer:  cfg.Server.TokenIssuer,
	}
	if serverCfg.HTTPAddress == "" {
		serverCfg.HTTPAddress = "localhost:8080"
	}

	return serverCfg, serverCfg.validate()
}
