// Package config supplies flag defaults from an optional TOML file.
package config

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
)

// TOML is a kong configuration loader for TOML files. Keys match flag
// names, with dashes and underscores interchangeable. Flags given on the
// command line take precedence over file values.
func TOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if raw, ok := values[flag.Name]; ok {
			return raw, nil
		}
		if raw, ok := values[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
			return raw, nil
		}
		return nil, nil
	}
	return f, nil
}
