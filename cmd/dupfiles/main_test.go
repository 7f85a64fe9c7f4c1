package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-ini/ini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runApp runs the CLI with args and returns what it wrote to stdout
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	out, err := os.Create(filepath.Join(t.TempDir(), "stdout"))
	require.NoError(t, err)
	defer out.Close()

	saved := os.Stdout
	os.Stdout = out
	defer func() { os.Stdout = saved }()

	app := newApp()
	app.Writer = io.Discard
	app.ErrWriter = io.Discard
	runErr := app.Run(append([]string{"dupfiles"}, args...))

	data, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	return string(data), runErr
}

func setupTree(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for name, content := range map[string]string{
		"one.txt":     "same bytes",
		"two.txt":     "same bytes",
		"three.txt":   "other",
		"nested/four": "same bytes",
	} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestRun_DefaultJSON(t *testing.T) {
	root := setupTree(t)
	expected := [][]string{{
		filepath.Join(root, "nested", "four"),
		filepath.Join(root, "one.txt"),
		filepath.Join(root, "two.txt"),
	}}

	for _, args := range [][]string{
		{"--path", root},
		{"-p", root, "--compare"},
		{"-p", root, "-c", "--deep"},
		{"-p", root, "--hash", "sha512"},
	} {
		t.Run(strings.Join(args[2:], " "), func(t *testing.T) {
			out, err := runApp(t, args...)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(out, "\n"), "output should be one line")

			var groups [][]string
			require.NoError(t, json.Unmarshal([]byte(out), &groups))
			assert.Equal(t, expected, groups)
		})
	}
}

func TestApp_FlagNamesDoNotClash(t *testing.T) {
	root := setupTree(t)

	_, err := runApp(t, "--version")
	require.NoError(t, err)

	_, err = runApp(t, "-v")
	require.NoError(t, err)

	out, err := runApp(t, "-p", root, "--verbose", "1")
	require.NoError(t, err)
	var groups [][]string
	require.NoError(t, json.Unmarshal([]byte(out), &groups))
	assert.Len(t, groups, 1)
}

func TestRun_NoDuplicates(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "only"), []byte("x"), 0644))

	out, err := runApp(t, "-p", root)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestRun_Formats(t *testing.T) {
	root := setupTree(t)

	out, err := runApp(t, "-p", root, "-f", "fdupes")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		filepath.Join(root, "nested", "four"),
		filepath.Join(root, "one.txt"),
		filepath.Join(root, "two.txt"),
	}, "\n")+"\n\n", out)

	out, err = runApp(t, "-p", root, "--set", "format:human")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 duplicate groups, 2 redundant files, 20 bytes reclaimable")
}

func TestRun_Errors(t *testing.T) {
	root := setupTree(t)

	_, err := runApp(t)
	assert.Error(t, err, "--path is required")

	_, err = runApp(t, "-p", filepath.Join(root, "missing"))
	assert.Error(t, err)

	_, err = runApp(t, "-p", root, "--format", "xml")
	assert.Error(t, err)

	_, err = runApp(t, "-p", root, "--set", "bogus:1")
	assert.Error(t, err)

	_, err = runApp(t, "-p", root, "--verbose", "9")
	assert.Error(t, err)
}

func TestRun_ConfigFile(t *testing.T) {
	root := setupTree(t)
	configPath := filepath.Join(t.TempDir(), "conf", "config")

	out, err := runApp(t, "-p", root, "--config", configPath, "--hash", "sha1", "--save-config")
	require.NoError(t, err)
	assert.NotEqual(t, "[]\n", out)

	saved, err := ini.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "sha1", saved.Section("filehash").Key("default").String())

	// The saved file now drives later runs
	out, err = runApp(t, "-p", root, "--config", configPath, "--set", "format:fdupes")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "\n\n"))
}
