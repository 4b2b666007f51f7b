package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a schema document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension; anything that is
// not .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// envelope is the shape served by the "available parameters" endpoint.
type envelope struct {
	Params Schema `json:"params" yaml:"params"`
}

// LoadSchema decodes and validates a schema list. Both a bare list and a
// {"params": [...]} envelope are accepted.
func LoadSchema(r io.Reader, format Format) (Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	var schema Schema
	switch format {
	case FormatYAML:
		schema, err = decodeYAML(data)
	case FormatJSON:
		schema, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported schema format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}

	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

// LoadSchemaFile reads a schema from disk, choosing the format by extension.
func LoadSchemaFile(path string) (Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSchema(f, FormatForPath(path))
}

func decodeJSON(data []byte) (Schema, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, err
		}
		return env.Params, nil
	}
	var schema Schema
	if err := json.Unmarshal(trimmed, &schema); err != nil {
		return nil, err
	}
	return schema, nil
}

func decodeYAML(data []byte) (Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return Schema{}, nil
	}
	doc := root.Content[0]
	if doc.Kind == yaml.MappingNode {
		var env envelope
		if err := doc.Decode(&env); err != nil {
			return nil, err
		}
		return env.Params, nil
	}
	var schema Schema
	if err := doc.Decode(&schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// LoadModel decodes a flat JSON or YAML object of parameter values.
func LoadModel(r io.Reader, format Format) (Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	m := Model{}
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	default:
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return m, nil
}
