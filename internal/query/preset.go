package query

import (
	"fmt"
	"strings"
)

// ResolvePreset resolves preset references of the form "@name" inside raw by
// textual substitution against the given name->query mapping, BEFORE
// parsing (spec.md §6: "the core resolves a preset reference by textual
// substitution before parsing, not at evaluation time"). Presets may
// reference other presets; a cycle or unknown name is an error.
func ResolvePreset(raw string, presets map[string]string) (string, error) {
	return resolvePreset(raw, presets, map[string]bool{})
}

func resolvePreset(raw string, presets map[string]string, seen map[string]bool) (string, error) {
	if !strings.HasPrefix(strings.TrimSpace(raw), "@") {
		return raw, nil
	}
	name := strings.TrimSpace(raw)[1:]
	if seen[name] {
		return "", fmt.Errorf("preset %q: cyclic reference", name)
	}
	body, ok := presets[name]
	if !ok {
		return "", fmt.Errorf("unknown preset %q", name)
	}
	seen[name] = true
	return resolvePreset(body, presets, seen)
}
