package report

import (
	"fmt"

	"github.com/yacobolo/twcfg"
)

// Format is an output format for a normalized declaration.
type Format string

const (
	FormatJS   Format = "js"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the accepted values of ParseFormat.
var Formats = []Format{FormatJS, FormatYAML, FormatJSON}

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "js", "javascript":
		return FormatJS, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want js, yaml or json)", s)
	}
}

// Extension returns the declaration file extension for f.
func (f Format) Extension() string {
	return "." + string(f)
}

// Encode renders cfg in format f.
func Encode(cfg *twcfg.Config, f Format) ([]byte, error) {
	switch f {
	case FormatJS, FormatYAML, FormatJSON:
		return twcfg.Marshal(cfg, "tailwind.config"+f.Extension())
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}
