package robot

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/arena-sim/arena-robots/internal/logger"
	"github.com/arena-sim/arena-robots/internal/yamldoc"
	"github.com/stretchr/testify/require"
)

func writeRobotFile(t *testing.T, dir, name, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestProvider_ModelParams(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		baseFrame string
		odomFrame string
		zOffset   float64
	}{
		{
			name:      "all keys present",
			content:   "robot_base_frame: base_footprint\nrobot_odom_frame: odometry\nz_offset: 0.25\n",
			baseFrame: "base_footprint",
			odomFrame: "odometry",
			zOffset:   0.25,
		},
		{
			name:      "defaults applied",
			content:   "radius: 0.3\n",
			baseFrame: DefaultBaseFrame,
			odomFrame: DefaultOdomFrame,
			zOffset:   DefaultZOffset,
		},
		{
			name:      "empty mapping",
			content:   "{}\n",
			baseFrame: "base_link",
			odomFrame: "odom",
			zOffset:   0.0,
		},
		{
			name:      "integer z offset",
			content:   "z_offset: 1\n",
			baseFrame: "base_link",
			odomFrame: "odom",
			zOffset:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeRobotFile(t, dir, ModelParamsFile, tt.content)

			p := NewProvider("jackal", dir, logger.NewNopLogger())
			params, err := p.ModelParams()
			require.NoError(t, err)
			require.Equal(t, tt.baseFrame, params.BaseFrame())
			require.Equal(t, tt.odomFrame, params.OdomFrame())
			require.InDelta(t, tt.zOffset, params.ZOffset(), 1e-9)
		})
	}
}

func TestProvider_ModelParamsCached(t *testing.T) {
	dir := t.TempDir()
	writeRobotFile(t, dir, ModelParamsFile, "robot_base_frame: base_link\n")

	p := NewProvider("jackal", dir, nil)
	first, err := p.ModelParams()
	require.NoError(t, err)

	// the cache must not observe changes on disk
	writeRobotFile(t, dir, ModelParamsFile, "robot_base_frame: other\n")

	second, err := p.ModelParams()
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, "base_link", second.BaseFrame())
}

func TestProvider_ModelParamsConcurrent(t *testing.T) {
	dir := t.TempDir()
	writeRobotFile(t, dir, ModelParamsFile, "z_offset: 0.1\n")

	p := NewProvider("jackal", dir, nil)

	const workers = 8
	results := make([]*ModelParams, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = p.ModelParams()
		}()
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.Same(t, results[0], results[i])
	}
}

func TestProvider_ModelParamsErrors(t *testing.T) {
	t.Run("missing file is not cached", func(t *testing.T) {
		dir := t.TempDir()
		p := NewProvider("jackal", dir, nil)

		_, err := p.ModelParams()
		require.Error(t, err)
		require.True(t, errors.Is(err, fs.ErrNotExist))

		writeRobotFile(t, dir, ModelParamsFile, "robot_odom_frame: odom_combined\n")
		params, err := p.ModelParams()
		require.NoError(t, err)
		require.Equal(t, "odom_combined", params.OdomFrame())
	})

	t.Run("list is a format error", func(t *testing.T) {
		dir := t.TempDir()
		writeRobotFile(t, dir, ModelParamsFile, "- a\n- b\n")

		_, err := NewProvider("jackal", dir, nil).ModelParams()
		var fe *FormatError
		require.True(t, errors.As(err, &fe))
		require.Equal(t, filepath.Join(dir, ModelParamsFile), fe.Path)
		require.Contains(t, err.Error(), "must be a mapping")
	})
}

func TestProvider_Control(t *testing.T) {
	dir := t.TempDir()
	writeRobotFile(t, dir, ControlFile, "controller_frequency: 20.0\ncmd_vel: /cmd_vel\n")

	p := NewProvider("jackal", dir, nil)
	control, err := p.Control()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"controller_frequency": 20.0, "cmd_vel": "/cmd_vel"}, control)

	// read fresh on every call
	writeRobotFile(t, dir, ControlFile, "cmd_vel: /jackal/cmd_vel\n")
	control, err = p.Control()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"cmd_vel": "/jackal/cmd_vel"}, control)
}

func TestProvider_ControlNotMapping(t *testing.T) {
	dir := t.TempDir()
	writeRobotFile(t, dir, ControlFile, "- cmd_vel\n- odom\n")

	_, err := NewProvider("jackal", dir, nil).Control()
	require.Error(t, err)
	require.True(t, yamldoc.IsFormatError(err))
}

func TestProvider_MappingsPath(t *testing.T) {
	p := NewProvider("jackal", "/assets/robots/jackal", nil)
	require.Equal(t, filepath.Join("/assets/robots/jackal", "mappings.yaml"), p.MappingsPath())
	require.Equal(t, "jackal", p.Name())
	require.Equal(t, "/assets/robots/jackal", p.Dir())
}
