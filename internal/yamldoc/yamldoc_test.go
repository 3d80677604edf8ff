package yamldoc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadMapping(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		want       map[string]any
		wantFormat bool
		wantActual string
	}{
		{
			name:    "flat mapping",
			content: "a: 1\nb: two\n",
			want:    map[string]any{"a": 1, "b": "two"},
		},
		{
			name:    "nested mapping",
			content: "topics:\n  cmd_vel: /cmd_vel\n",
			want:    map[string]any{"topics": map[string]any{"cmd_vel": "/cmd_vel"}},
		},
		{
			name:    "empty mapping",
			content: "{}\n",
			want:    map[string]any{},
		},
		{
			name:       "list",
			content:    "- a\n- b\n",
			wantFormat: true,
			wantActual: "sequence",
		},
		{
			name:       "scalar",
			content:    "just text\n",
			wantFormat: true,
			wantActual: "string",
		},
		{
			name:       "empty document",
			content:    "",
			wantFormat: true,
			wantActual: "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)

			got, err := ReadMapping(path)
			if tt.wantFormat {
				require.Error(t, err)
				var fe *FormatError
				require.True(t, errors.As(err, &fe))
				require.Equal(t, path, fe.Path)
				require.Equal(t, TopLevel, fe.Subject)
				require.Equal(t, ShapeMapping, fe.Expected)
				require.Equal(t, tt.wantActual, fe.Actual)
				require.Contains(t, err.Error(), "top-level structure in "+path+" must be a mapping")
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestReadList(t *testing.T) {
	path := writeFile(t, "- a\n- robot: b\n  count: 2\n")

	got, err := ReadList(path)
	require.NoError(t, err)
	require.Equal(t, []any{"a", map[string]any{"robot": "b", "count": 2}}, got)

	path = writeFile(t, "robot: a\n")
	_, err = ReadList(path)
	require.Error(t, err)
	require.True(t, IsFormatError(err))
	require.Contains(t, err.Error(), "must be a list")
}

func TestReadList_Aliases(t *testing.T) {
	path := writeFile(t, "- &jackal {robot: jackal, planner: navfn}\n- *jackal\n")

	got, err := ReadList(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, got[0], got[1])
}

func TestRead_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadMapping(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		require.True(t, errors.Is(err, fs.ErrNotExist))
		require.False(t, IsFormatError(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "a: [1, 2\n")
		_, err := ReadMapping(path)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse YAML")
		require.False(t, IsFormatError(err))
	})
}

func TestTypeOf(t *testing.T) {
	require.Equal(t, "null", TypeOf(nil))
	require.Equal(t, "string", TypeOf("x"))
	require.Equal(t, "integer", TypeOf(3))
	require.Equal(t, "float", TypeOf(1.5))
	require.Equal(t, "bool", TypeOf(true))
	require.Equal(t, "mapping", TypeOf(map[string]any{}))
	require.Equal(t, "sequence", TypeOf([]any{}))
}

func TestCloneMap(t *testing.T) {
	src := map[string]any{
		"sensors": map[string]any{"lidar": []any{"front", "rear"}},
		"mass":    12.5,
	}

	dst := CloneMap(src)
	require.Equal(t, src, dst)

	dst["sensors"].(map[string]any)["lidar"].([]any)[0] = "changed"
	require.Equal(t, "front", src["sensors"].(map[string]any)["lidar"].([]any)[0])

	require.NotNil(t, CloneMap(nil))
}

func TestFormatError_Message(t *testing.T) {
	err := NewFormatError("setup.yaml", "entry 2 field count", ShapeCount, "")
	require.Equal(t, "entry 2 field count in setup.yaml must be a non-negative integer", err.Error())
}
