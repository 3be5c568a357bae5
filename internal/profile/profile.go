// Package profile loads the optional site naming profile. A fleet can pin its
// prefix, customer and length policy in a naming.toml so neither the agent
// policy nor the operator has to pass them on every run.
package profile

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Profile holds the site naming overrides. Zero values mean "not set".
type Profile struct {
	Prefix        string `toml:"prefix,omitempty"`
	Customer      string `toml:"customer,omitempty"`
	MaxNameLength int    `toml:"max_name_length,omitempty"`
}

// Load reads the profile at path. A missing file is not an error; it returns
// an empty profile so callers can layer it unconditionally.
func Load(path string) (Profile, error) {
	var p Profile

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, errors.Wrapf(err, "failed to read naming profile %s", path)
	}

	if err := toml.Unmarshal(data, &p); err != nil {
		return p, errors.Wrapf(err, "failed to parse naming profile %s", path)
	}
	return p, nil
}
