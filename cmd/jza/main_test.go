package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_Workflow(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "jza.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
model: standards
log:
  level: error
store:
  type: file
  dir: `+filepath.Join(dir, "models")+`
  format: yaml
generation:
  seed: 3
`), 0644))
	base := []string{"--config", cfgPath}

	out, err := run(t, append([]string{"build", "--ops", "primitive"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `Built model "standards": 11 states, 268 transitions`)
	assert.FileExists(t, filepath.Join(dir, "models", "standards.yaml"))

	out, err = run(t, append([]string{"train", "--line", "IM VIm IIm Vx IM"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Trained 1 sequences")

	out, err = run(t, append([]string{"validate", "IIm", "Vx IM"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Progression is valid!")

	out, err = run(t, append([]string{"validate", "IIm Vm"}, base...)...)
	require.Error(t, err)
	assert.Contains(t, out, "index 1")

	out, err = run(t, append([]string{"analyze", "IIm Vx IM"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "1. Subdominant 2 → Dominant 5 → Tonic 1")

	out, err = run(t, append([]string{"stats"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "| Trained transitions | 12 |")

	out, err = run(t, append([]string{"probabilities", "Vx"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "| Dominant 5 | 1.0000 |")

	out, err = run(t, append([]string{"generate", "-n", "5", "--key", "C"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "CM7 |")

	out, err = run(t, append([]string{"graph", "--trained"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")

	out, err = run(t, append([]string{"models", "ls"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "- standards")
}

func TestCLI_Errors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "jza.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("store:\n  type: tape\n"), 0644))

	_, err := run(t, "stats", "--config", cfgPath)
	assert.ErrorContains(t, err, "unknown store type")

	_, err = run(t, "analyze", "IIm Qx", "--config", filepath.Join(dir, "missing.yaml"), "--store", "memory")
	assert.ErrorContains(t, err, "invalid symbol")
}

func TestCLI_Version(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "jza version")
}
