package twcfg

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a configuration error.
type ErrorKind int

// Error kinds reported by Load.
const (
	// MissingField means a required field is absent.
	MissingField ErrorKind = iota + 1
	// InvalidType means a field is present but has the wrong shape.
	InvalidType
	// EmptyContent means content selects nothing to scan.
	EmptyContent
	// InvalidGlobSyntax means a content pattern cannot be parsed.
	InvalidGlobSyntax
)

// Sentinels matched by errors.Is against any *ConfigError of the same kind.
var (
	ErrMissingField      = errors.New("missing field")
	ErrInvalidType       = errors.New("invalid type")
	ErrEmptyContent      = errors.New("empty content")
	ErrInvalidGlobSyntax = errors.New("invalid glob syntax")
)

func (k ErrorKind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case InvalidType:
		return "InvalidType"
	case EmptyContent:
		return "EmptyContent"
	case InvalidGlobSyntax:
		return "InvalidGlobSyntax"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingField:
		return ErrMissingField
	case InvalidType:
		return ErrInvalidType
	case EmptyContent:
		return ErrEmptyContent
	case InvalidGlobSyntax:
		return ErrInvalidGlobSyntax
	default:
		return nil
	}
}

// ConfigError describes why a declaration was rejected.
type ConfigError struct {
	Kind   ErrorKind
	Field  string // "content", "content[2]", "theme.extend", "plugins[0].name"
	Want   string // expected shape, InvalidType only
	Got    string // observed shape, InvalidType only
	Reason string // free-form detail, mostly for InvalidGlobSyntax
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("%s: required field is missing", e.Field)
	case InvalidType:
		return fmt.Sprintf("%s: expected %s, got %s", e.Field, e.Want, e.Got)
	case EmptyContent:
		if e.Reason != "" {
			return fmt.Sprintf("%s: %s", e.Field, e.Reason)
		}
		return fmt.Sprintf("%s: must list at least one glob pattern", e.Field)
	case InvalidGlobSyntax:
		return fmt.Sprintf("%s: invalid glob pattern: %s", e.Field, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
}

// Unwrap returns the sentinel for the error's kind.
func (e *ConfigError) Unwrap() error {
	return e.Kind.sentinel()
}

func missingField(field string) *ConfigError {
	return &ConfigError{Kind: MissingField, Field: field}
}

func invalidType(field, want string, got any) *ConfigError {
	return &ConfigError{Kind: InvalidType, Field: field, Want: want, Got: describe(got)}
}

// describe names the declaration-level shape of a decoded value.
func describe(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case []any, []string:
		return "sequence"
	case map[string]any:
		return "mapping"
	case map[any]any:
		for key := range val {
			if _, ok := key.(string); !ok {
				return "mapping with non-string keys"
			}
		}
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func indexField(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
