// Package schema builds JSON Schema documents for the robot configuration files.
package schema

import (
	"github.com/invopop/jsonschema"
)

const draft = "https://json-schema.org/draft/2020-12/schema"

// setupEntry is the mapping form of a setup file element.
type setupEntry struct {
	Robot      string         `json:"robot" jsonschema:"required,minLength=1,description=Name of the robot model"`
	Name       string         `json:"name,omitempty" jsonschema:"description=Instance name or name prefix"`
	Planner    string         `json:"planner,omitempty" jsonschema:"description=Navigation planner"`
	Controller string         `json:"controller,omitempty" jsonschema:"description=Navigation controller"`
	Behavior   string         `json:"behavior,omitempty" jsonschema:"description=Navigation behavior tree"`
	Count      int            `json:"count,omitempty" jsonschema:"minimum=0,default=1,description=Number of identical instances"`
	Extra      map[string]any `json:"extra,omitempty" jsonschema:"description=Additional free-form fields"`
}

// modelParams lists the recognized keys of model_params.yaml.
type modelParams struct {
	BaseFrame string  `json:"robot_base_frame,omitempty" jsonschema:"default=base_link,description=Robot base frame"`
	OdomFrame string  `json:"robot_odom_frame,omitempty" jsonschema:"default=odom,description=Odometry frame"`
	ZOffset   float64 `json:"z_offset,omitempty" jsonschema:"default=0,description=Vertical spawn offset"`
}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		Anonymous:                 true,
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
}

// SetupFile returns the schema of a setup file: a list of robot names or entry mappings.
func SetupFile() *jsonschema.Schema {
	entry := reflector().Reflect(&setupEntry{})
	entry.Version = ""

	return &jsonschema.Schema{
		Version:     draft,
		Title:       "Robot setup",
		Description: "Robots to instantiate. A string is shorthand for {robot: <string>, name: <string>}.",
		Type:        "array",
		Items: &jsonschema.Schema{
			OneOf: []*jsonschema.Schema{
				{Type: "string", MinLength: minLength(1)},
				entry,
			},
		},
	}
}

// ModelParams returns the schema of model_params.yaml.
func ModelParams() *jsonschema.Schema {
	s := reflector().Reflect(&modelParams{})
	s.Version = draft
	s.Title = "Robot model parameters"
	return s
}

// ByName returns the schema registered under name.
func ByName(name string) (*jsonschema.Schema, bool) {
	switch name {
	case "setup":
		return SetupFile(), true
	case "model-params":
		return ModelParams(), true
	}
	return nil, false
}

// Names lists the names accepted by ByName.
func Names() []string {
	return []string{"model-params", "setup"}
}

func minLength(n uint64) *uint64 {
	return &n
}
