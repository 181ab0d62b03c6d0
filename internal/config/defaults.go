package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dgnsrekt/gchart/internal/chart"
)

// LoadDefaults reads the compile defaults table from a YAML file. Fields
// the file leaves unset take the built-in values; an empty path yields the
// built-in table.
func LoadDefaults(path string) (chart.Defaults, error) {
	builtin := chart.BuiltinDefaults()
	if path == "" {
		return builtin, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return chart.Defaults{}, fmt.Errorf("defaults config: %w", err)
	}
	var d chart.Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return chart.Defaults{}, fmt.Errorf("defaults config: %w", err)
	}
	if d.Width < 0 || d.Height < 0 {
		return chart.Defaults{}, fmt.Errorf("defaults config: width and height must be positive")
	}
	if d.MaxURLLength < 0 {
		return chart.Defaults{}, fmt.Errorf("defaults config: max_url_length must be positive")
	}
	return d.Merge(builtin), nil
}
