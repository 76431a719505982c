package config

import (
	"fmt"
	"time"

	"github.com/cidgate/cidgate/pkg/auth"
)

// AuthConfig encodes §6's `auth: {none} | {jwt, jwks_url}` option.
type AuthConfig struct {
	Type     string `mapstructure:"type" validate:"required,oneof=none jwt" toml:"type"`
	JWKSURL  string `mapstructure:"jwks_url" validate:"required_if=Type jwt" toml:"jwks_url,omitempty"`
	CacheTTL string `mapstructure:"cache_ttl" toml:"cache_ttl,omitempty"`
}

func (a AuthConfig) Validate() error {
	return validateConfig(a)
}

// defaultJWKSCacheTTL matches §4.7's "default 1 hour".
const defaultJWKSCacheTTL = time.Hour

// ToService builds the auth.Service this config describes.
func (a AuthConfig) ToService() (auth.Service, error) {
	switch a.Type {
	case "", "none":
		return auth.None(), nil
	case "jwt":
		ttl := defaultJWKSCacheTTL
		if a.CacheTTL != "" {
			parsed, err := time.ParseDuration(a.CacheTTL)
			if err != nil {
				return nil, fmt.Errorf("auth: invalid cache_ttl %q: %w", a.CacheTTL, err)
			}
			ttl = parsed
		}
		return auth.NewJWT(a.JWKSURL, ttl), nil
	default:
		return nil, fmt.Errorf("auth: unknown type %q", a.Type)
	}
}
