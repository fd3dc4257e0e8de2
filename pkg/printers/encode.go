package printers

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names a machine-readable output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatTOML only encodes values that map to a TOML table, such as
	// structs and string-keyed maps.
	FormatTOML Format = "toml"
)

// Encode writes v in the given format.
func (pp *PrettyPrint) Encode(format Format, v any) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(pp.out())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(pp.out())
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(pp.out()).Encode(v)
	default:
		return fmt.Errorf("unsupported format %q (expected json, yaml or toml)", format)
	}
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	return pp.Encode(FormatJSON, v)
}
