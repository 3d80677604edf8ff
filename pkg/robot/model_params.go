package robot

import (
	"fmt"
	"sort"

	"github.com/arena-sim/arena-robots/internal/yamldoc"
)

// Keys and defaults recognized in model_params.yaml.
const (
	KeyBaseFrame = "robot_base_frame"
	KeyOdomFrame = "robot_odom_frame"
	KeyZOffset   = "z_offset"

	DefaultBaseFrame = "base_link"
	DefaultOdomFrame = "odom"
	DefaultZOffset   = 0.0
)

// ModelParams holds the static parameters of a robot model.
// Unrecognized keys are kept and available through Get.
type ModelParams struct {
	raw map[string]any
}

// NewModelParams validates raw and wraps a copy of it.
// path is only used in error messages.
func NewModelParams(path string, raw map[string]any) (*ModelParams, error) {
	for _, key := range []string{KeyBaseFrame, KeyOdomFrame} {
		if v, ok := raw[key]; ok {
			if _, isString := v.(string); !isString {
				return nil, yamldoc.NewFormatError(path, fmt.Sprintf("key %q", key), yamldoc.ShapeString, yamldoc.TypeOf(v))
			}
		}
	}
	if v, ok := raw[KeyZOffset]; ok {
		if _, isNumber := toFloat(v); !isNumber {
			return nil, yamldoc.NewFormatError(path, fmt.Sprintf("key %q", KeyZOffset), yamldoc.ShapeNumber, yamldoc.TypeOf(v))
		}
	}

	return &ModelParams{raw: yamldoc.CloneMap(raw)}, nil
}

// LoadModelParams reads a model_params.yaml file.
func LoadModelParams(path string) (*ModelParams, error) {
	raw, err := yamldoc.ReadMapping(path)
	if err != nil {
		return nil, err
	}
	return NewModelParams(path, raw)
}

// BaseFrame returns the robot base frame, "base_link" if unset.
func (p *ModelParams) BaseFrame() string {
	if v, ok := p.raw[KeyBaseFrame].(string); ok {
		return v
	}
	return DefaultBaseFrame
}

// OdomFrame returns the odometry frame, "odom" if unset.
func (p *ModelParams) OdomFrame() string {
	if v, ok := p.raw[KeyOdomFrame].(string); ok {
		return v
	}
	return DefaultOdomFrame
}

// ZOffset returns the vertical spawn offset, 0 if unset.
func (p *ModelParams) ZOffset() float64 {
	if v, ok := toFloat(p.raw[KeyZOffset]); ok {
		return v
	}
	return DefaultZOffset
}

// Get returns a deep copy of the value stored under key.
func (p *ModelParams) Get(key string) (any, bool) {
	v, ok := p.raw[key]
	return yamldoc.Clone(v), ok
}

// Keys returns all keys in sorted order.
func (p *ModelParams) Keys() []string {
	keys := make([]string, 0, len(p.raw))
	for k := range p.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns a deep copy of the underlying mapping.
func (p *ModelParams) Raw() map[string]any {
	return yamldoc.CloneMap(p.raw)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
