// Package yamldoc reads single-document YAML files and checks their top-level shape.
package yamldoc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Shape names used in FormatError messages.
const (
	ShapeMapping  = "a mapping"
	ShapeList     = "a list"
	ShapeString   = "a string"
	ShapeNumber   = "a number"
	ShapeCount    = "a non-negative integer"
	ShapeNonEmpty = "a non-empty string"
)

// TopLevel is the subject used for whole-document shape errors.
const TopLevel = "top-level structure"

// ReadMapping reads path and decodes it as a YAML mapping with string keys.
func ReadMapping(path string) (map[string]any, error) {
	node, err := readNode(path)
	if err != nil {
		return nil, err
	}

	if node.Kind != yaml.MappingNode {
		return nil, NewFormatError(path, TopLevel, ShapeMapping, KindOf(node))
	}

	out := make(map[string]any, len(node.Content)/2)
	if err := node.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode YAML mapping %s: %w", path, err)
	}

	return out, nil
}

// ReadList reads path and decodes it as a YAML sequence.
func ReadList(path string) ([]any, error) {
	node, err := readNode(path)
	if err != nil {
		return nil, err
	}

	if node.Kind != yaml.SequenceNode {
		return nil, NewFormatError(path, TopLevel, ShapeList, KindOf(node))
	}

	out := make([]any, 0, len(node.Content))
	if err := node.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode YAML list %s: %w", path, err)
	}

	return out, nil
}

// readNode returns the root value node of the document in path.
// An empty document yields a null scalar node.
func readNode(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}, nil
	}

	return resolve(doc.Content[0]), nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// KindOf describes a YAML node for error messages.
func KindOf(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return "null"
		case "!!str":
			return "string"
		case "!!int":
			return "integer"
		case "!!float":
			return "float"
		case "!!bool":
			return "bool"
		}
		return "scalar " + node.ShortTag()
	default:
		return "unknown"
	}
}

// TypeOf describes a decoded YAML value for error messages.
func TypeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "bool"
	case map[string]any, map[any]any:
		return "mapping"
	case []any:
		return "sequence"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Clone returns a deep copy of a decoded YAML value.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Clone(val)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(t))
		for k, val := range t {
			out[k] = Clone(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Clone(val)
		}
		return out
	default:
		return v
	}
}

// CloneMap returns a deep copy of m. The result is never nil.
func CloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Clone(v)
	}
	return out
}
