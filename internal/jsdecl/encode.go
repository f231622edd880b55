package jsdecl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const header = "/** @type {import('tailwindcss').Config} */\nmodule.exports = "

// leadingKeys are written first, in this order, at the top level.
var leadingKeys = []string{"content", "theme", "plugins"}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// encoder writes a CommonJS declaration with two-space indentation.
type encoder struct {
	buf bytes.Buffer
}

// Encode writes m as a CommonJS module. Top-level plugin entries are written
// as require() calls so that Decode(Encode(m)) returns the same values.
func Encode(m map[string]any) ([]byte, error) {
	e := &encoder{}
	e.buf.WriteString(header)

	if err := e.object(m, 0, true); err != nil {
		return nil, err
	}
	e.buf.WriteString("\n")
	return e.buf.Bytes(), nil
}

func (e *encoder) value(v any, depth int) error {
	switch val := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		e.buf.WriteString(strconv.FormatBool(val))
	case string:
		return e.str(val)
	case int:
		e.buf.WriteString(strconv.Itoa(val))
	case int64:
		e.buf.WriteString(strconv.FormatInt(val, 10))
	case uint64:
		e.buf.WriteString(strconv.FormatUint(val, 10))
	case float64:
		return e.float(val)
	case float32:
		return e.float(float64(val))
	case map[string]any:
		return e.object(val, depth, false)
	case []any:
		return e.array(val, depth, nil)
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return e.array(items, depth, nil)
	default:
		return fmt.Errorf("cannot encode %T as JavaScript", v)
	}
	return nil
}

func (e *encoder) str(s string) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	e.buf.Write(bytes.TrimSuffix(b.Bytes(), []byte("\n")))
	return nil
}

func (e *encoder) float(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("cannot encode %v as JavaScript", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		// Keep 1.0 a float when read back.
		s += ".0"
	}
	e.buf.WriteString(s)
	return nil
}

func (e *encoder) object(m map[string]any, depth int, top bool) error {
	if len(m) == 0 {
		e.buf.WriteString("{}")
		return nil
	}

	e.buf.WriteString("{\n")
	for _, key := range orderedKeys(m, top) {
		e.indent(depth + 1)
		e.key(key)
		e.buf.WriteString(": ")

		var err error
		if top && key == "plugins" {
			err = e.plugins(m[key], depth+1)
		} else {
			err = e.value(m[key], depth+1)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		e.buf.WriteString(",\n")
	}
	e.indent(depth)
	e.buf.WriteString("}")
	return nil
}

func (e *encoder) array(items []any, depth int, each func(any, int) error) error {
	if len(items) == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	if each == nil {
		each = e.value
	}

	e.buf.WriteString("[\n")
	for i, item := range items {
		e.indent(depth + 1)
		if err := each(item, depth+1); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
		e.buf.WriteString(",\n")
	}
	e.indent(depth)
	e.buf.WriteString("]")
	return nil
}

func (e *encoder) plugins(v any, depth int) error {
	items, ok := v.([]any)
	if !ok {
		return e.value(v, depth)
	}
	return e.array(items, depth, e.plugin)
}

// plugin writes "name" as require("name") and {name, options} as
// require("name")(options). Any other shape is written as a plain value.
func (e *encoder) plugin(v any, depth int) error {
	switch p := v.(type) {
	case string:
		e.buf.WriteString("require(")
		if err := e.str(p); err != nil {
			return err
		}
		e.buf.WriteString(")")
		return nil

	case map[string]any:
		name, ok := p[PluginNameKey].(string)
		if !ok || len(p) > 2 {
			break
		}
		opts, hasOpts := p[PluginOptionsKey]
		if !hasOpts && len(p) == 2 {
			break
		}
		if err := e.plugin(name, depth); err != nil {
			return err
		}
		if !hasOpts {
			return nil
		}
		e.buf.WriteString("(")
		if err := e.value(opts, depth); err != nil {
			return err
		}
		e.buf.WriteString(")")
		return nil
	}
	return e.value(v, depth)
}

func (e *encoder) key(k string) {
	if identifierPattern.MatchString(k) {
		e.buf.WriteString(k)
		return
	}
	_ = e.str(k)
}

func (e *encoder) indent(depth int) {
	e.buf.WriteString(strings.Repeat("  ", depth))
}

func orderedKeys(m map[string]any, top bool) []string {
	keys := make([]string, 0, len(m))
	rest := make([]string, 0, len(m))

	if top {
		for _, k := range leadingKeys {
			if _, ok := m[k]; ok {
				keys = append(keys, k)
			}
		}
	}
	for k := range m {
		if top && isLeading(k) {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func isLeading(k string) bool {
	for _, l := range leadingKeys {
		if l == k {
			return true
		}
	}
	return false
}
