package twcfg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/yacobolo/twcfg/internal/jsdecl"
	yamlv3 "gopkg.in/yaml.v3"
)

// keyDelim never occurs in declaration keys. Theme keys such as "1.5" and
// "1/2" contain dots and slashes, and koanf re-splits keys on its delimiter.
const keyDelim = "\x00"

// DeclarationNames are the file names Discover looks for, in order.
var DeclarationNames = []string{
	"tailwind.config.js",
	"tailwind.config.cjs",
	"tailwind.config.mjs",
	"tailwind.config.yaml",
	"tailwind.config.yml",
	"tailwind.config.json",
}

// ErrNoDeclaration is returned by Discover when no declaration file exists.
var ErrNoDeclaration = errors.New("no configuration declaration found")

// ParserFor returns the koanf parser for a declaration file, chosen by extension.
func ParserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".js", ".cjs", ".mjs":
		return jsdecl.Parser(), nil
	case ".yaml", ".yml":
		return yamlParser{yaml.Parser()}, nil
	case ".json":
		return jsonParser{yaml.Parser()}, nil
	default:
		return nil, fmt.Errorf("unsupported declaration format %q", ext)
	}
}

// jsonParser reads JSON through the YAML parser, which keeps integers as
// ints like the JS and YAML decoders do, and writes indented JSON.
type jsonParser struct {
	*yaml.YAML
}

func (jsonParser) Marshal(o map[string]interface{}) ([]byte, error) {
	v := keepFloats(o, func(f float64) any { return json.Number(floatLiteral(f)) })
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// yamlParser writes block-style YAML with two-space indentation.
type yamlParser struct {
	*yaml.YAML
}

func (yamlParser) Marshal(o map[string]interface{}) ([]byte, error) {
	v := keepFloats(o, func(f float64) any {
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!float", Value: floatLiteral(f)}
	})

	var buf bytes.Buffer
	encoder := yamlv3.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// keepFloats replaces integral float64 values with wrap(f) so encoders that
// print 1.0 as 1 do not turn floats into ints on the next decode.
func keepFloats(v any, wrap func(float64) any) any {
	switch val := v.(type) {
	case float64:
		if isIntegral(val) {
			return wrap(val)
		}
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = keepFloats(item, wrap)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = keepFloats(item, wrap)
		}
		return out
	default:
		return v
	}
}

func isIntegral(f float64) bool {
	return f == math.Trunc(f) && math.Abs(f) < 1e21
}

// floatLiteral formats an integral float with a trailing ".0".
func floatLiteral(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// DecodeFile reads a declaration file into an untyped mapping without
// validating it.
func DecodeFile(path string) (map[string]any, error) {
	parser, err := ParserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return k.Raw(), nil
}

// LoadFile decodes and validates a declaration file.
func LoadFile(path string) (*Config, error) {
	raw, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Load(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config in the format implied by path's extension.
func Marshal(cfg *Config, path string) ([]byte, error) {
	parser, err := ParserFor(path)
	if err != nil {
		return nil, err
	}
	return parser.Marshal(cfg.ToRaw())
}

// Discover returns the first declaration file in dir.
func Discover(dir string) (string, error) {
	for _, name := range DeclarationNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", ErrNoDeclaration, dir, strings.Join(DeclarationNames, ", "))
}
