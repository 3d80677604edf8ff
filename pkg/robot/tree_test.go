package robot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"turtlebot3", "jackal", "burger"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, RobotsDir, name), 0o755))
	}
	// stray files are not robots
	require.NoError(t, os.WriteFile(filepath.Join(root, RobotsDir, "README.md"), nil, 0o600))

	tree := NewTree(root, nil)
	require.Equal(t, filepath.Join(root, "robots"), tree.Dir())

	names, err := tree.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"burger", "jackal", "turtlebot3"}, names)

	require.True(t, tree.Has("jackal"))
	require.False(t, tree.Has("husky"))
	require.False(t, tree.Has("README.md"))
	require.False(t, tree.Has("../robots"))

	p, err := tree.Robot("jackal")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "robots", "jackal"), p.Dir())

	again, err := tree.Robot("jackal")
	require.NoError(t, err)
	require.Same(t, p, again)
}

func TestTree_InvalidNames(t *testing.T) {
	tree := NewTree(t.TempDir(), nil)

	for _, name := range []string{"", "a/b", ".."} {
		_, err := tree.Robot(name)
		require.Error(t, err, name)
	}
}

func TestTree_MissingRoot(t *testing.T) {
	tree := NewTree(filepath.Join(t.TempDir(), "nope"), nil)

	_, err := tree.Names()
	require.Error(t, err)
}
