package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swingctx/internal/shared/testutil"
)

func TestCSVWriter_WriteCSV(t *testing.T) {
	tests := []struct {
		name     string
		options  WriteOptions
		expected string
	}{
		{
			name: "headers and records",
			options: WriteOptions{
				Headers: []string{"Timestamp", "Current Accel"},
				Records: [][]string{{"0.0", "1.5"}, {"0.1", "1.6"}},
			},
			expected: "Timestamp,Current Accel\n0.0,1.5\n0.1,1.6\n",
		},
		{
			name: "empty cells and quoting",
			options: WriteOptions{
				Headers: []string{"a", "b"},
				Records: [][]string{{"", "x,y"}, {`say "hi"`, ""}},
			},
			expected: "a,b\n,\"x,y\"\n\"say \"\"hi\"\"\",\n",
		},
		{
			name: "headers only",
			options: WriteOptions{
				Headers: []string{"a", "b"},
			},
			expected: "a,b\n",
		},
		{
			name: "bom prefix",
			options: WriteOptions{
				Headers:   []string{"a"},
				Records:   [][]string{{"1"}},
				BOMPrefix: true,
			},
			expected: "\xEF\xBB\xBFa\n1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			path := filepath.Join(t.TempDir(), "out.csv")

			require.NoError(t, NewCSVWriter(logger).WriteCSV(path, tt.options))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(content))
		})
	}
}

func TestCSVWriter_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale,content,that,is,longer\n"), 0644))

	require.NoError(t, NewCSVWriter(nil).WriteCSV(path, WriteOptions{Headers: []string{"a"}}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(content))
}

func TestCSVWriter_Errors(t *testing.T) {
	dir := t.TempDir()
	occupied := filepath.Join(dir, "occupied.csv")
	require.NoError(t, os.Mkdir(occupied, 0755))

	tests := []struct {
		name string
		path string
	}{
		{name: "missing directory", path: filepath.Join(dir, "missing", "out.csv")},
		{name: "path is a directory", path: occupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCSVWriter(nil).WriteCSV(tt.path, WriteOptions{Headers: []string{"a"}})
			assert.Error(t, err)
		})
	}

	_, err := os.Stat(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(err), "writer must not create directories")
}

func TestCSVWriter_NoBOMByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, NewCSVWriter(nil).WriteCSV(path, WriteOptions{Headers: []string{"a"}}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(content, utf8BOM))
}
