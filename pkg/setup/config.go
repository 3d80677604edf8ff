package setup

import (
	"fmt"
	"slices"

	"github.com/arena-sim/arena-robots/internal/yamldoc"
)

// Field names recognized in the mapping form of a setup entry.
const (
	FieldRobot      = "robot"
	FieldName       = "name"
	FieldPlanner    = "planner"
	FieldController = "controller"
	FieldBehavior   = "behavior"
	FieldExtra      = "extra"
	FieldCount      = "count"
)

// MaxCount is the largest count accepted for a single entry.
const MaxCount = 1000

// FormatError is returned when a setup file or one of its entries has the wrong shape.
type FormatError = yamldoc.FormatError

// Config describes how to instantiate a single robot.
// Empty optional fields mean "not set".
type Config struct {
	// Robot is the name of the robot model.
	Robot string `yaml:"robot" json:"robot"`

	// Name is the instance name or name prefix.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Planner is the navigation planner.
	Planner string `yaml:"planner,omitempty" json:"planner,omitempty"`

	// Controller is the navigation controller.
	Controller string `yaml:"controller,omitempty" json:"controller,omitempty"`

	// Behavior is the navigation behavior tree.
	Behavior string `yaml:"behavior,omitempty" json:"behavior,omitempty"`

	// Extra carries every additional field of the entry. Never nil.
	Extra map[string]any `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// Parse expands decoded setup content into configs.
// content must be a list; source names the document in error messages.
func Parse(content any, source string) ([]Config, error) {
	entries, ok := content.([]any)
	if !ok {
		return nil, yamldoc.NewFormatError(source, "setup file", yamldoc.ShapeList, yamldoc.TypeOf(content))
	}

	configs := make([]Config, 0, len(entries))
	for i, entry := range entries {
		parsed, err := ParseEntry(entry, fmt.Sprintf("entry %d", i), source)
		if err != nil {
			return nil, err
		}
		configs = append(configs, parsed...)
	}

	return configs, nil
}

// ParseEntry expands a single list element.
// A string yields one config whose robot and name are that string.
// A mapping yields count configs (default 1) built from its remaining fields.
func ParseEntry(entry any, subject, source string) ([]Config, error) {
	switch e := entry.(type) {
	case string:
		if e == "" {
			return nil, yamldoc.NewFormatError(source, subject, yamldoc.ShapeNonEmpty, "empty string")
		}
		return []Config{{Robot: e, Name: e, Extra: map[string]any{}}}, nil
	case map[string]any:
		return parseMapping(e, subject, source)
	case map[any]any:
		return nil, yamldoc.NewFormatError(source, subject, "a mapping with string keys", "mapping with non-string keys")
	default:
		return nil, yamldoc.NewFormatError(source, subject, "a string or a mapping", yamldoc.TypeOf(entry))
	}
}

func parseMapping(entry map[string]any, subject, source string) ([]Config, error) {
	count := 1
	if raw, ok := entry[FieldCount]; ok {
		n, ok := raw.(int)
		if !ok || n < 0 {
			return nil, yamldoc.NewFormatError(source, subject+" field "+FieldCount, yamldoc.ShapeCount, describe(raw))
		}
		if n > MaxCount {
			expected := fmt.Sprintf("%s ≤ %d", yamldoc.ShapeCount, MaxCount)
			return nil, yamldoc.NewFormatError(source, subject+" field "+FieldCount, expected, describe(raw))
		}
		count = n
	}

	template := Config{Extra: map[string]any{}}
	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, key := range keys {
		value := entry[key]
		var err error
		switch key {
		case FieldCount:
		case FieldRobot:
			template.Robot, err = stringField(value, subject, key, source)
		case FieldName:
			template.Name, err = stringField(value, subject, key, source)
		case FieldPlanner:
			template.Planner, err = stringField(value, subject, key, source)
		case FieldController:
			template.Controller, err = stringField(value, subject, key, source)
		case FieldBehavior:
			template.Behavior, err = stringField(value, subject, key, source)
		case FieldExtra:
			err = mergeExtra(template.Extra, entry, value, subject, source)
		default:
			template.Extra[key] = value
		}
		if err != nil {
			return nil, err
		}
	}

	if template.Robot == "" {
		actual := "missing"
		if raw, ok := entry[FieldRobot]; ok {
			actual = describe(raw)
		}
		return nil, yamldoc.NewFormatError(source, subject+" field "+FieldRobot, yamldoc.ShapeNonEmpty, actual)
	}

	configs := make([]Config, count)
	for i := range configs {
		configs[i] = template
		configs[i].Extra = yamldoc.CloneMap(template.Extra)
	}
	return configs, nil
}

func stringField(value any, subject, key, source string) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", yamldoc.NewFormatError(source, subject+" field "+key, yamldoc.ShapeString, yamldoc.TypeOf(value))
	}
}

// mergeExtra copies an explicit extra mapping into dst.
// Top-level unknown fields of the entry take precedence over keys of the same name.
func mergeExtra(dst, entry map[string]any, value any, subject, source string) error {
	if value == nil {
		return nil
	}
	extra, ok := value.(map[string]any)
	if !ok {
		return yamldoc.NewFormatError(source, subject+" field "+FieldExtra, yamldoc.ShapeMapping, yamldoc.TypeOf(value))
	}
	for k, v := range extra {
		if _, shadowed := entry[k]; shadowed && !isKnownField(k) {
			continue
		}
		dst[k] = v
	}
	return nil
}

func isKnownField(key string) bool {
	switch key {
	case FieldRobot, FieldName, FieldPlanner, FieldController, FieldBehavior, FieldExtra, FieldCount:
		return true
	}
	return false
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(string); ok && s == "" {
		return "empty string"
	}
	if n, ok := v.(int); ok {
		return fmt.Sprintf("%d", n)
	}
	return yamldoc.TypeOf(v)
}
