package pipelines

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cliRegistry() *Registry {
	return NewRegistry().MustRegister(buildDefinition())
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), cliRegistry(), args, WithOutput(&stdout, &stderr))
	return stdout.String(), err
}

func TestCLIList(t *testing.T) {
	out, err := runCLI(t, "list")
	require.NoError(t, err)
	assert.Equal(t, "ci/build.yml\n", out)
}

func TestCLIPublish(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, "--out", dir, "publish")
	require.NoError(t, err)
	assert.Contains(t, out, "created")
	assert.FileExists(t, filepath.Join(dir, "ci", "build.yml"))

	out, err = runCLI(t, "--out", dir, "publish", "--fail-if-changed", "ci/build.yml")
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged")
}

func TestCLIPublishFailIfChanged(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, "-o", dir, "publish", "--fail-if-changed")
	require.Error(t, err)
	assert.Equal(t, ErrCodeOutdatedYAML, errorCode(err))
}

func TestCLIUnknownTarget(t *testing.T) {
	_, err := runCLI(t, "--out", t.TempDir(), "publish", "missing.yml")
	assert.Equal(t, ErrCodeDefinitionMissing, errorCode(err))
}

func TestCLIValidate(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "--out", dir, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "validated ci/build.yml")
	assert.NoFileExists(t, filepath.Join(dir, "ci", "build.yml"))
}

func TestCLIConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pipelines.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output_dir: "+filepath.Join(dir, "gen")+"\nlog:\n  format: json\n"), 0o644))

	_, err := runCLI(t, "--config", cfgPath, "publish")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "gen", "ci", "build.yml"))
}

func TestCLIRejectsBadArguments(t *testing.T) {
	_, err := runCLI(t, "publish", "--nope")
	assert.Equal(t, ErrCodeInvalidArguments, errorCode(err))

	_, err = runCLI(t, "--log-level", "loud", "list")
	assert.Equal(t, ErrCodeConfigInvalid, errorCode(err))
}
