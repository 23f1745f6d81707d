package plugin

import (
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// Settings is a flat set of named configuration values. Later merges replace
// earlier values key by key.
type Settings map[string]any

// ParseSettings decodes a YAML settings document. The document must be a
// mapping; an empty document yields empty settings.
func ParseSettings(doc []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(doc, &s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if s == nil {
		s = Settings{}
	}
	return s, nil
}

// Clone returns a shallow copy of s; a nil receiver yields empty settings.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	maps.Copy(out, s)
	return out
}

// Merge copies every key of other into s.
func (s Settings) Merge(other Settings) {
	maps.Copy(s, other)
}

// String returns the value of key if it is a string, otherwise def.
func (s Settings) String(key, def string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return def
}

// Int returns the value of key if it is an integer, otherwise def.
func (s Settings) Int(key string, def int) int {
	switch v := s[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	}
	return def
}
