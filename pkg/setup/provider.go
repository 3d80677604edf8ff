package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arena-sim/arena-robots/internal/common"
	"github.com/arena-sim/arena-robots/internal/logger"
	"github.com/arena-sim/arena-robots/internal/metrics"
	"github.com/arena-sim/arena-robots/internal/yamldoc"
)

// SetupDir is the directory below the asset root holding the setup files.
var SetupDir = filepath.Join("config", "setup")

const fileExt = ".yaml"

// LoadFile reads and expands the setup file at path.
func LoadFile(path string) ([]Config, error) {
	content, err := yamldoc.ReadList(path)
	if err != nil {
		return nil, err
	}
	return Parse(content, path)
}

// Provider loads one setup file.
type Provider struct {
	name string
	path string
	log  *logger.Logger
}

// NewProvider creates a provider for the setup file at path.
func NewProvider(name, path string, log *logger.Logger) *Provider {
	return &Provider{
		name: name,
		path: path,
		log:  logger.OrNop(log),
	}
}

// Name returns the setup name.
func (p *Provider) Name() string {
	return p.name
}

// Path returns the setup file path.
func (p *Provider) Path() string {
	return p.path
}

// Load reads and expands the setup file. The file is read on every call.
func (p *Provider) Load() ([]Config, error) {
	configs, err := LoadFile(p.path)
	if err != nil {
		reason := "read"
		if yamldoc.IsFormatError(err) {
			reason = "format"
		}
		metrics.LoadErrorInc(metrics.KindSetup, reason)
		return nil, err
	}

	metrics.FileLoadedInc(metrics.KindSetup)
	metrics.SetupRecordsAdd(len(configs))
	p.log.Debugw("loaded setup", "setup", p.name, "path", p.path, "records", len(configs))
	return configs, nil
}

// Tree resolves setup names to files below <root>/config/setup.
type Tree struct {
	dir string
	log *logger.Logger
}

// NewTree creates a tree rooted at root.
func NewTree(root string, log *logger.Logger) *Tree {
	return &Tree{
		dir: filepath.Join(root, SetupDir),
		log: logger.OrNop(log),
	}
}

// Dir returns the directory holding the setup files.
func (t *Tree) Dir() string {
	return t.dir
}

// Logger returns the logger handed to providers of this tree.
func (t *Tree) Logger() *logger.Logger {
	return t.log
}

// Setup returns the provider for <dir>/<name>.yaml.
func (t *Tree) Setup(name string) (*Provider, error) {
	if err := common.ValidateName(name); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	return NewProvider(name, filepath.Join(t.dir, name+fileExt), t.log), nil
}

// Names lists the setup files in sorted order, without extension.
func (t *Tree) Names() ([]string, error) {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list setups in %s: %w", t.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(names)
	return names, nil
}
