// Package presetfile loads a YAML preset file -- a flat name->query
// string map -- for internal/query.ResolvePreset to substitute against
// (spec.md §6, §9 "CLI adapter": "YAML map of name->query"). Parsing
// itself is handled by gopkg.in/yaml.v3, already one of the teacher's
// declared (if previously indirect) dependencies.
package presetfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML document at path into a name->query map. A missing
// file is not an error -- callers treat it as "no presets configured"
// and proceed with an empty map, since presets are optional.
func Load(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("presetfile: read %s: %w", path, err)
	}

	var m map[string]string
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("presetfile: parse %s: %w", path, err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}
