package config

import (
	"fmt"

	"github.com/cidgate/cidgate/pkg/cidx/filter"
)

// CodeFilterConfig encodes §4.1's CodeFilter leaf predicates: Eq, Gt, Lt,
// and the And/Or/Not combinators over a single uint64 code (a multihash
// function code or multicodec tag, depending on where it is plugged in).
type CodeFilterConfig struct {
	Kind string             `mapstructure:"kind" validate:"required,oneof=eq gt lt and or not" toml:"kind"`
	Code uint64             `mapstructure:"code" toml:"code,omitempty"`
	All  []CodeFilterConfig `mapstructure:"all" toml:"all,omitempty"`
	Not  *CodeFilterConfig  `mapstructure:"not" toml:"not,omitempty"`
}

// ToCodeFilter builds the filter.CodeFilter this config describes.
func (c CodeFilterConfig) ToCodeFilter() (filter.CodeFilter, error) {
	switch c.Kind {
	case "eq":
		return filter.Eq(c.Code), nil
	case "gt":
		return filter.Gt(c.Code), nil
	case "lt":
		return filter.Lt(c.Code), nil
	case "and":
		subs, err := toCodeFilters(c.All)
		if err != nil {
			return nil, err
		}
		return filter.CodeAnd(subs...), nil
	case "or":
		subs, err := toCodeFilters(c.All)
		if err != nil {
			return nil, err
		}
		return filter.CodeOr(subs...), nil
	case "not":
		if c.Not == nil {
			return nil, fmt.Errorf("config: code filter %q requires \"not\"", c.Kind)
		}
		inner, err := c.Not.ToCodeFilter()
		if err != nil {
			return nil, err
		}
		return filter.CodeNot(inner), nil
	default:
		return nil, fmt.Errorf("config: unknown code filter kind %q", c.Kind)
	}
}

func toCodeFilters(cfgs []CodeFilterConfig) ([]filter.CodeFilter, error) {
	out := make([]filter.CodeFilter, 0, len(cfgs))
	for _, cfg := range cfgs {
		cf, err := cfg.ToCodeFilter()
		if err != nil {
			return nil, err
		}
		out = append(out, cf)
	}
	return out, nil
}

// CidFilterConfig recursively encodes the CidFilter predicate tree of
// §3/§4.1: None | MultihashCodeFilter | CodecFilter | And | Or | Not.
type CidFilterConfig struct {
	Kind       string             `mapstructure:"kind" validate:"omitempty,oneof=none multihash_code codec and or not" toml:"kind,omitempty"`
	Code       *CodeFilterConfig  `mapstructure:"code" toml:"code,omitempty"`
	All        []CidFilterConfig  `mapstructure:"all" toml:"all,omitempty"`
	Not        *CidFilterConfig   `mapstructure:"not" toml:"not,omitempty"`
}

// ToCidFilter builds the filter.CidFilter this config describes. An
// unset (zero-value) config is treated as "none", matching §4.1's
// "None variant matches all CIDs".
func (c CidFilterConfig) ToCidFilter() (filter.CidFilter, error) {
	switch c.Kind {
	case "", "none":
		return filter.None(), nil
	case "multihash_code":
		if c.Code == nil {
			return nil, fmt.Errorf("config: multihash_code filter requires \"code\"")
		}
		cf, err := c.Code.ToCodeFilter()
		if err != nil {
			return nil, err
		}
		return filter.MultihashCodeFilter(cf), nil
	case "codec":
		if c.Code == nil {
			return nil, fmt.Errorf("config: codec filter requires \"code\"")
		}
		cf, err := c.Code.ToCodeFilter()
		if err != nil {
			return nil, err
		}
		return filter.CodecFilter(cf), nil
	case "and":
		subs, err := toCidFilters(c.All)
		if err != nil {
			return nil, err
		}
		return filter.And(subs...), nil
	case "or":
		subs, err := toCidFilters(c.All)
		if err != nil {
			return nil, err
		}
		return filter.Or(subs...), nil
	case "not":
		if c.Not == nil {
			return nil, fmt.Errorf("config: not filter requires \"not\"")
		}
		inner, err := c.Not.ToCidFilter()
		if err != nil {
			return nil, err
		}
		return filter.Not(inner), nil
	default:
		return nil, fmt.Errorf("config: unknown cid filter kind %q", c.Kind)
	}
}

func toCidFilters(cfgs []CidFilterConfig) ([]filter.CidFilter, error) {
	out := make([]filter.CidFilter, 0, len(cfgs))
	for _, cfg := range cfgs {
		cf, err := cfg.ToCidFilter()
		if err != nil {
			return nil, err
		}
		out = append(out, cf)
	}
	return out, nil
}
