package config

import "fmt"

// ServerConfig is the HTTP bind configuration of §6's `port` option,
// generalized with a host since a bare port is rarely enough to bind
// correctly outside loopback.
type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required" toml:"host"`
	Port uint16 `mapstructure:"port" validate:"required" toml:"port"`
}

func (s ServerConfig) Validate() error {
	return validateConfig(s)
}

// Addr renders the net.Listen-compatible bind address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
