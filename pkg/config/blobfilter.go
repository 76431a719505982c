package config

import (
	"fmt"

	"github.com/cidgate/cidgate/pkg/provider/objectstore"
)

// BlobFilterConfig recursively encodes §4.4.1's `BlobFilter` algebra:
// All | Directory(prefix) | FileExt(ext) | NameContains(sub) |
// Size{min?, max?} | And | Or | Not, exactly as §6 describes the
// `filter` option for an `azure{...}` provider entry.
type BlobFilterConfig struct {
	Kind     string             `mapstructure:"kind" validate:"omitempty,oneof=all directory file_ext name_contains size and or not" toml:"kind,omitempty"`
	Prefix   string             `mapstructure:"prefix" toml:"prefix,omitempty"`
	Ext      string             `mapstructure:"ext" toml:"ext,omitempty"`
	Contains string             `mapstructure:"contains" toml:"contains,omitempty"`
	Min      *uint64            `mapstructure:"min" toml:"min,omitempty"`
	Max      *uint64            `mapstructure:"max" toml:"max,omitempty"`
	All      []BlobFilterConfig `mapstructure:"all" toml:"all,omitempty"`
	Not      *BlobFilterConfig  `mapstructure:"not" toml:"not,omitempty"`
}

// ToBlobFilter builds the objectstore.BlobFilter this config describes.
// An unset config defaults to "all", matching the provider's own
// default in objectstore.New.
func (b BlobFilterConfig) ToBlobFilter() (objectstore.BlobFilter, error) {
	switch b.Kind {
	case "", "all":
		return objectstore.All(), nil
	case "directory":
		return objectstore.Directory(b.Prefix), nil
	case "file_ext":
		return objectstore.FileExt(b.Ext), nil
	case "name_contains":
		return objectstore.NameContains(b.Contains), nil
	case "size":
		return objectstore.Size(b.Min, b.Max), nil
	case "and":
		subs, err := toBlobFilters(b.All)
		if err != nil {
			return nil, err
		}
		return objectstore.And(subs...), nil
	case "or":
		subs, err := toBlobFilters(b.All)
		if err != nil {
			return nil, err
		}
		return objectstore.Or(subs...), nil
	case "not":
		if b.Not == nil {
			return nil, fmt.Errorf("config: not blob filter requires \"not\"")
		}
		inner, err := b.Not.ToBlobFilter()
		if err != nil {
			return nil, err
		}
		return objectstore.Not(inner), nil
	default:
		return nil, fmt.Errorf("config: unknown blob filter kind %q", b.Kind)
	}
}

func toBlobFilters(cfgs []BlobFilterConfig) ([]objectstore.BlobFilter, error) {
	out := make([]objectstore.BlobFilter, 0, len(cfgs))
	for _, cfg := range cfgs {
		bf, err := cfg.ToBlobFilter()
		if err != nil {
			return nil, err
		}
		out = append(out, bf)
	}
	return out, nil
}
