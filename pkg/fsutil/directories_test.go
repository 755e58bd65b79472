package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "creates new directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "newdir")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "parent", "child", "nested")
			},
		},
		{
			name: "succeeds when directory already exists",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			path := testCase.setup(t)

			err := EnsureDir(path)

			assert.NoError(t, err)
			assert.DirExists(t, path)
		})
	}
}

func TestEnsureFileDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a", "b", "apps_lock.yaml")
	require.NoError(t, EnsureFileDir(file))
	assert.DirExists(t, filepath.Dir(file))
}

func TestFileSize(t *testing.T) {
	dir := t.TempDir()

	size, err := FileSize(filepath.Join(dir, "missing.apk"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)

	path := filepath.Join(dir, "partial.apk")
	require.NoError(t, os.WriteFile(path, []byte("12345"), FileModeDefault))
	size, err = FileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}
