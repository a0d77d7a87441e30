// Package preset loads flag defaults for the tiler commands from a YAML
// file. Keys are flat flag names ("min-scale: 1.1"); flags given on the
// command line always win.
package preset

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// Loader adapts a preset file into a kong configuration resolver. It is
// passed to kong.Configuration, which skips paths that do not exist.
func Loader(r io.Reader) (kong.Resolver, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok {
			return nil, nil
		}
		return v, nil
	}), nil
}
