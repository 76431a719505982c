// Package config implements TOML-backed gateway configuration, grounded
// on the teacher's pkg/config layering: small, struct-tag-validated
// structs loaded via spf13/viper, each with a Validate() method and
// (where the shape differs from its wire form) a ToXxx() conversion into
// the type a constructor actually wants. Unlike the teacher, this
// gateway is a single bounded process with no separate "app config"
// package layer — the structs below are used directly by cmd/cidgate to
// build the live Context, so ToAppConfig() is collapsed into the structs
// themselves rather than split into a parallel pkg/config/app tree.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validatable is implemented by the config structs in this package that
// carry a Validate method; it runs struct-tag validation via
// go-playground/validator, matching the teacher's validateConfig helper.
type Validatable interface {
	Validate() error
}

// validateConfig runs struct-tag validation against cfg, matching the
// teacher's pkg/config.validateConfig.
func validateConfig(cfg any) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
