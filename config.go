package twcfg

import (
	"sort"
)

// Top-level declaration keys.
const (
	KeyContent = "content"
	KeyTheme   = "theme"
	KeyPlugins = "plugins"
	KeyExtend  = "extend"
)

// Config is a validated, normalized declaration.
// Values are deep copies of the input; treat a Config as read-only.
type Config struct {
	Content []string       // Glob patterns in declaration order
	Theme   Theme          // Always present, Extend never nil
	Plugins []Plugin       // Declaration order; later entries take precedence downstream
	Extra   map[string]any // Any other top-level key, preserved verbatim
}

// Theme holds the design-token customization of a declaration.
//
// Values are categories that replace the generator's defaults. Extend
// categories are merged onto the defaults. When a category appears in both,
// Values is applied first and Extend second, so extend entries win.
type Theme struct {
	Values map[string]any
	Extend map[string]any
}

// Plugin is an opaque handle to a unit contributing utilities, variants or
// base styles. Execution belongs to the plugin runtime.
type Plugin struct {
	Name    string         // "@tailwindcss/forms"
	Options map[string]any // nil when the plugin is used without options
}

// ToRaw converts the config back into the untyped declaration shape that
// Load accepts. Load(cfg.ToRaw()) yields a Config equal to cfg.
func (c *Config) ToRaw() map[string]any {
	raw := make(map[string]any, len(c.Extra)+3)
	for k, v := range c.Extra {
		raw[k] = copyValue(v)
	}

	content := make([]any, len(c.Content))
	for i, p := range c.Content {
		content[i] = p
	}
	raw[KeyContent] = content
	raw[KeyTheme] = c.Theme.toRaw()

	plugins := make([]any, len(c.Plugins))
	for i, p := range c.Plugins {
		plugins[i] = p.toRaw()
	}
	raw[KeyPlugins] = plugins

	return raw
}

func (t Theme) toRaw() map[string]any {
	raw := copyMap(t.Values)
	raw[KeyExtend] = copyMap(t.Extend)
	return raw
}

func (p Plugin) toRaw() any {
	if p.Options == nil {
		return p.Name
	}
	return map[string]any{
		"name":    p.Name,
		"options": copyMap(p.Options),
	}
}

// Categories returns the sorted union of replaced and extended category names.
func (t Theme) Categories() []string {
	seen := make(map[string]bool, len(t.Values)+len(t.Extend))
	for k := range t.Values {
		seen[k] = true
	}
	for k := range t.Extend {
		seen[k] = true
	}
	return sortedKeys(seen)
}

// Collisions returns the categories that are both replaced and extended.
func (t Theme) Collisions() []string {
	var out []string
	for k := range t.Extend {
		if _, ok := t.Values[k]; ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Resolve layers the theme over a defaults table: categories in Values
// replace the default table, then Extend entries are merged on top, token by
// token. Category values that are not mappings replace whatever was there.
// defaults is not modified.
func (t Theme) Resolve(defaults map[string]map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any, len(defaults)+len(t.Values)+len(t.Extend))
	for category, tokens := range defaults {
		out[category] = copyMap(tokens)
	}

	for category, v := range t.Values {
		tokens, ok := asMap(v)
		if !ok {
			out[category] = map[string]any{"DEFAULT": copyValue(v)}
			continue
		}
		out[category] = copyMap(tokens)
	}

	for category, v := range t.Extend {
		tokens, ok := asMap(v)
		if !ok {
			out[category] = map[string]any{"DEFAULT": copyValue(v)}
			continue
		}
		merged := out[category]
		if merged == nil {
			merged = make(map[string]any, len(tokens))
			out[category] = merged
		}
		for name, value := range tokens {
			merged[name] = copyValue(value)
		}
	}

	return out
}

// PluginNames returns the plugin names in declaration order.
func (c *Config) PluginNames() []string {
	names := make([]string, len(c.Plugins))
	for i, p := range c.Plugins {
		names[i] = p.Name
	}
	return names
}

// Includes returns the positive content patterns.
func (c *Config) Includes() []string {
	var out []string
	for _, p := range c.Content {
		if _, negated := splitNegation(p); !negated {
			out = append(out, p)
		}
	}
	return out
}

// Excludes returns the exclusion patterns without their "!" prefix.
func (c *Config) Excludes() []string {
	var out []string
	for _, p := range c.Content {
		if body, negated := splitNegation(p); negated {
			out = append(out, body)
		}
	}
	return out
}

// asMap accepts the mapping shapes produced by JSON, YAML and JS decoders.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// asSlice accepts the sequence shapes produced by decoders and Go callers.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, str := range s {
			out[i] = str
		}
		return out, true
	default:
		return nil, false
	}
}

// copyMap deep-copies m; a nil map yields an empty one.
func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	if m, ok := asMap(v); ok {
		return copyMap(m)
	}
	switch s := v.(type) {
	case []any:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = copyValue(e)
		}
		return out
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out
	default:
		return v
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
