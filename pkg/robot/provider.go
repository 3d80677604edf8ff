package robot

import (
	"path/filepath"
	"sync"

	"github.com/arena-sim/arena-robots/internal/logger"
	"github.com/arena-sim/arena-robots/internal/metrics"
	"github.com/arena-sim/arena-robots/internal/yamldoc"
)

// File names inside a robot directory.
const (
	ModelParamsFile = "model_params.yaml"
	ControlFile     = "control.yaml"
	MappingsFile    = "mappings.yaml"
)

// FormatError is returned when a robot file has the wrong top-level shape.
type FormatError = yamldoc.FormatError

// Provider gives access to the configuration files of a single robot model.
type Provider struct {
	name string
	dir  string
	log  *logger.Logger

	mu          sync.Mutex
	modelParams *ModelParams
}

// NewProvider creates a provider for the robot stored in dir.
// The directory is not checked for existence.
func NewProvider(name, dir string, log *logger.Logger) *Provider {
	return &Provider{
		name: name,
		dir:  dir,
		log:  logger.OrNop(log),
	}
}

// Name returns the robot name.
func (p *Provider) Name() string {
	return p.name
}

// Dir returns the robot directory.
func (p *Provider) Dir() string {
	return p.dir
}

// ModelParams returns the parsed model_params.yaml.
// The first successful load is cached and the same pointer is returned afterwards.
// Failed loads are not cached.
func (p *Provider) ModelParams() (*ModelParams, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.modelParams != nil {
		metrics.ModelParamsCacheHitInc()
		return p.modelParams, nil
	}

	path := filepath.Join(p.dir, ModelParamsFile)
	params, err := LoadModelParams(path)
	if err != nil {
		metrics.LoadErrorInc(metrics.KindModelParams, reason(err))
		return nil, err
	}

	metrics.FileLoadedInc(metrics.KindModelParams)
	p.log.Debugw("loaded model params", "robot", p.name, "path", path, "keys", len(params.raw))
	p.modelParams = params
	return params, nil
}

// Control reads control.yaml. The file is read on every call.
func (p *Provider) Control() (map[string]any, error) {
	path := filepath.Join(p.dir, ControlFile)
	control, err := yamldoc.ReadMapping(path)
	if err != nil {
		metrics.LoadErrorInc(metrics.KindControl, reason(err))
		return nil, err
	}

	metrics.FileLoadedInc(metrics.KindControl)
	p.log.Debugw("loaded control config", "robot", p.name, "path", path)
	return control, nil
}

// MappingsPath returns the path of mappings.yaml without reading it.
func (p *Provider) MappingsPath() string {
	return filepath.Join(p.dir, MappingsFile)
}

func reason(err error) string {
	if yamldoc.IsFormatError(err) {
		return "format"
	}
	return "read"
}
