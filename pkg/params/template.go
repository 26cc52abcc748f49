package params

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Template renders the defaults of defs as a parameter file that can be
// edited and passed back with --params. Supported formats are toml and yaml.
func Template(defs []Definition, format string) ([]byte, error) {
	values := Defaults(defs)

	switch format {
	case "toml":
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf).ArraysWithOneElementPerLine(true)
		if err := enc.Encode(values); err != nil {
			return nil, fmt.Errorf("error encoding toml: %w", err)
		}
		return buf.Bytes(), nil
	case "yaml", "yml":
		out, err := yaml.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("error encoding yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported format '%s' (valid: toml, yaml)", format)
	}
}
