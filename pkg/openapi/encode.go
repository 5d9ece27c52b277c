package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// EncodeJSON returns the document as indented JSON with a trailing newline.
func EncodeJSON(doc *openapi3.T) ([]byte, error) {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	return append(payload, '\n'), nil
}

// EncodeYAML returns the document as block-style YAML. The JSON encoding is
// decoded into a yaml.Node so key order survives the conversion.
func EncodeYAML(doc *openapi3.T) ([]byte, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(payload, &node); err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// blockStyle clears the flow and quoting styles the JSON input carries.
func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}
