package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load unmarshals and validates whatever configuration viper has
// accumulated (file, env, flags) into T, matching the teacher's generic
// pkg/config.Load[T Validatable] — minus its debug testing.toml dump,
// which has no place in a library function.
func Load[T Validatable]() (T, error) {
	var out T
	if err := viper.Unmarshal(&out); err != nil {
		return out, fmt.Errorf("config: unmarshaling: %w", err)
	}
	if err := out.Validate(); err != nil {
		return out, err
	}
	return out, nil
}
