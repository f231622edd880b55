package twcfg

// Load validates and normalizes a decoded declaration.
//
// content must be a non-empty sequence of valid glob strings. theme defaults
// to {extend: {}} and plugins to an empty sequence. An explicit null counts
// as absent. Load never touches the filesystem and never runs plugin code;
// on any violation it returns a *ConfigError and no Config.
func Load(raw map[string]any) (*Config, error) {
	content, err := loadContent(raw[KeyContent])
	if err != nil {
		return nil, err
	}

	theme, err := loadTheme(raw[KeyTheme])
	if err != nil {
		return nil, err
	}

	plugins, err := loadPlugins(raw[KeyPlugins])
	if err != nil {
		return nil, err
	}

	extra := make(map[string]any)
	for k, v := range raw {
		switch k {
		case KeyContent, KeyTheme, KeyPlugins:
			continue
		}
		extra[k] = copyValue(v)
	}

	return &Config{
		Content: content,
		Theme:   theme,
		Plugins: plugins,
		Extra:   extra,
	}, nil
}

func loadContent(v any) ([]string, error) {
	if v == nil {
		return nil, missingField(KeyContent)
	}

	items, ok := asSlice(v)
	if !ok {
		return nil, invalidType(KeyContent, "sequence of glob patterns", v)
	}
	if len(items) == 0 {
		return nil, &ConfigError{Kind: EmptyContent, Field: KeyContent}
	}

	patterns := make([]string, 0, len(items))
	includes := 0
	for i, item := range items {
		field := indexField(KeyContent, i)

		pattern, ok := item.(string)
		if !ok {
			return nil, invalidType(field, "string", item)
		}
		if err := ValidatePattern(pattern); err != nil {
			return nil, &ConfigError{Kind: InvalidGlobSyntax, Field: field, Reason: err.Error()}
		}

		if _, negated := splitNegation(pattern); !negated {
			includes++
		}
		patterns = append(patterns, pattern)
	}

	if includes == 0 {
		return nil, &ConfigError{
			Kind:   EmptyContent,
			Field:  KeyContent,
			Reason: "only exclusion patterns given, nothing would be scanned",
		}
	}

	return patterns, nil
}

func loadTheme(v any) (Theme, error) {
	theme := Theme{
		Values: map[string]any{},
		Extend: map[string]any{},
	}
	if v == nil {
		return theme, nil
	}

	m, ok := asMap(v)
	if !ok {
		return Theme{}, invalidType(KeyTheme, "mapping", v)
	}

	for category, value := range m {
		if category != KeyExtend {
			theme.Values[category] = copyValue(value)
			continue
		}
		if value == nil {
			continue
		}
		extend, ok := asMap(value)
		if !ok {
			return Theme{}, invalidType(KeyTheme+"."+KeyExtend, "mapping", value)
		}
		theme.Extend = copyMap(extend)
	}

	return theme, nil
}

func loadPlugins(v any) ([]Plugin, error) {
	if v == nil {
		return []Plugin{}, nil
	}

	items, ok := asSlice(v)
	if !ok {
		return nil, invalidType(KeyPlugins, "sequence", v)
	}

	plugins := make([]Plugin, 0, len(items))
	for i, item := range items {
		p, err := loadPlugin(indexField(KeyPlugins, i), item)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// loadPlugin accepts "name" or {name: "name", options: {...}}.
func loadPlugin(field string, v any) (Plugin, error) {
	if name, ok := v.(string); ok {
		if name == "" {
			return Plugin{}, missingField(field)
		}
		return Plugin{Name: name}, nil
	}

	m, ok := asMap(v)
	if !ok {
		return Plugin{}, invalidType(field, "plugin name or {name, options} mapping", v)
	}

	rawName, present := m["name"]
	if !present || rawName == nil {
		return Plugin{}, missingField(field + ".name")
	}
	name, ok := rawName.(string)
	if !ok {
		return Plugin{}, invalidType(field+".name", "string", rawName)
	}
	if name == "" {
		return Plugin{}, missingField(field + ".name")
	}

	p := Plugin{Name: name}
	if rawOpts, present := m["options"]; present && rawOpts != nil {
		opts, ok := asMap(rawOpts)
		if !ok {
			return Plugin{}, invalidType(field+".options", "mapping", rawOpts)
		}
		p.Options = copyMap(opts)
	}
	return p, nil
}
