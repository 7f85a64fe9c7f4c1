package dupfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRunTree creates a small tree with one duplicate class of three files
func setupRunTree(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	writeTestFile(t, root, "a.txt", "duplicate")
	writeTestFile(t, root, "b.txt", "duplicate")
	writeTestFile(t, root, "c.txt", "different")
	writeTestFile(t, root, "sub/d.txt", "duplicate")
	writeTestFile(t, root, "empty1", "")
	writeTestFile(t, root, "empty2", "")
	return root
}

func TestRun_BothStrategies(t *testing.T) {
	root := setupRunTree(t)
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	expected := [][]string{{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "sub", "d.txt"),
	}}

	result, err := Run(cfg, root, StrategyChecksum)
	require.NoError(t, err)
	assert.Equal(t, expected, result.Paths())
	require.Len(t, result, 1)
	assert.Equal(t, int64(len("duplicate")), result[0].Size)
	assert.NotEmpty(t, result[0].Hash)

	result, err = Run(cfg, root, StrategyCompare)
	require.NoError(t, err)
	assert.Equal(t, expected, result.Paths())
}

func TestRun_IgnoreFileFromConfig(t *testing.T) {
	root := setupRunTree(t)
	ignorePath := filepath.Join(t.TempDir(), "ignore")
	require.NoError(t, os.WriteFile(ignorePath, []byte("# skip the subtree\n^sub/\n"), 0644))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyOverrides([]string{"ignore_file:" + ignorePath, "hash:sha256"}))

	result, err := Run(cfg, root, StrategyChecksum)
	require.NoError(t, err)
	require.Equal(t, [][]string{{filepath.Join(root, "a.txt"), filepath.Join(root, "b.txt")}}, result.Paths())
	assert.Len(t, result[0].Hash, 2*HashSizeSHA256)
}

func TestRun_Errors(t *testing.T) {
	root := setupRunTree(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyOverrides([]string{"hash:crc32"}))
	_, err = Run(cfg, root, StrategyChecksum)
	assert.Error(t, err, "invalid configuration must be rejected")

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyOverrides([]string{"ignore_file:" + filepath.Join(root, "no-such-ignore")}))
	_, err = Run(cfg, root, StrategyChecksum)
	assert.Error(t, err, "a named but missing ignore file must be rejected")

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	_, err = Run(cfg, filepath.Join(root, "missing"), StrategyChecksum)
	assert.Error(t, err)
}

func TestInitLogging(t *testing.T) {
	captureLog(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyOverrides([]string{"level:2", "debug:scan,compare"}))

	InitLogging(cfg)
	assert.Equal(t, 2, GetVerboseLevel())
	assert.True(t, IsDebugEnabled(DebugScan))
	assert.True(t, IsDebugEnabled(DebugCompare))
	assert.False(t, IsDebugEnabled(DebugHash))
}
