package entityfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-entityforms/pkg/model"
)

// Format selects the encoding used when writing entities.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a flag value onto a Format.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("entityfile: unknown format %q", raw)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode serialises value (an entity or a field list) as indented JSON or
// two-space YAML.
func Encode(value any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return nil, fmt.Errorf("entityfile: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("entityfile: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON, "":
		payload, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("entityfile: encode json: %w", err)
		}
		return append(payload, '\n'), nil
	default:
		return nil, fmt.Errorf("entityfile: unknown format %q", format)
	}
}

// WriteFile encodes entity using the format implied by path.
func WriteFile(path string, entity model.Entity) error {
	payload, err := Encode(entity, FormatFromPath(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("entityfile: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("entityfile: write %s: %w", path, err)
	}
	return nil
}
