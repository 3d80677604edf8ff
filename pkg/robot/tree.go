package robot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/arena-sim/arena-robots/internal/common"
	"github.com/arena-sim/arena-robots/internal/logger"
)

// RobotsDir is the directory below the asset root holding one directory per robot.
const RobotsDir = "robots"

// Tree resolves robot names to providers below <root>/robots.
// Providers are memoized so their model params cache lives as long as the tree.
type Tree struct {
	dir string
	log *logger.Logger

	mu        sync.Mutex
	providers map[string]*Provider
}

// NewTree creates a tree rooted at root.
func NewTree(root string, log *logger.Logger) *Tree {
	return &Tree{
		dir:       filepath.Join(root, RobotsDir),
		log:       logger.OrNop(log),
		providers: make(map[string]*Provider),
	}
}

// Dir returns the directory holding the robots.
func (t *Tree) Dir() string {
	return t.dir
}

// Robot returns the provider for name.
func (t *Tree) Robot(name string) (*Provider, error) {
	if err := common.ValidateName(name); err != nil {
		return nil, fmt.Errorf("robot: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.providers[name]; ok {
		return p, nil
	}

	p := NewProvider(name, filepath.Join(t.dir, name), t.log)
	t.providers[name] = p
	return p, nil
}

// Has reports whether a directory for name exists.
func (t *Tree) Has(name string) bool {
	if common.ValidateName(name) != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(t.dir, name))
	return err == nil && info.IsDir()
}

// Names lists the robot directories in sorted order.
func (t *Tree) Names() ([]string, error) {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list robots in %s: %w", t.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
