package config

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

const redacted = "<redacted>"

// Display renders the configuration as YAML with the key material hidden.
func (c Config) Display() (string, error) {
	if c.Key.String != "" {
		c.Key.String = redacted
	}

	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("rendering configuration: %w", err)
	}

	return string(out), nil
}
