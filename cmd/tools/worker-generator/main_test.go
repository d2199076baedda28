package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assessment-workers/internal/common/validation"
	"assessment-workers/pkg/registry"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_FromBuiltinRegistry(t *testing.T) {
	out := t.TempDir()

	stdout, err := run(t, "--task-type", registry.TaskLookupRegion, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "handler.go")

	dir := filepath.Join(out, "assessment", registry.TaskLookupRegion)
	models, err := os.ReadFile(filepath.Join(dir, "models.go"))
	require.NoError(t, err)
	assert.Contains(t, string(models), "package lookupregion")
	assert.Contains(t, string(models), "ZipCode string `json:\"zipCode\"`")

	config, err := os.ReadFile(filepath.Join(dir, "config.go"))
	require.NoError(t, err)
	assert.Contains(t, string(config), "5 * time.Second")

	_, err = run(t, "--task-type", registry.TaskLookupRegion, "--out", out)
	assert.Error(t, err, "existing files are not overwritten")

	_, err = run(t, "--task-type", registry.TaskLookupRegion, "--out", out, "--force")
	assert.NoError(t, err)
}

func TestGenerate_FromRegistryFile(t *testing.T) {
	reg := &registry.ActivityRegistry{Activities: []registry.Activity{{
		ID:          "send-report",
		DisplayName: "Send Report",
		Category:    "reporting",
		TaskType:    "send-report",
		Timeout:     "1500ms",
		InputSchema: validation.JSONSchema{
			Type: "object",
			Properties: map[string]validation.Property{
				"recipients": {Type: "array"},
				"threshold":  {Type: "number", Description: "minimum score"},
			},
		},
	}}}
	data, err := json.Marshal(reg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out := t.TempDir()
	_, err = run(t, "--task-type", "send-report", "--registry", path, "--out", out)
	require.NoError(t, err)

	models, err := os.ReadFile(filepath.Join(out, "reporting", "send-report", "models.go"))
	require.NoError(t, err)
	assert.Contains(t, string(models), "Recipients []interface{}")
	assert.Contains(t, string(models), "Threshold float64 `json:\"threshold\"` // minimum score")

	config, err := os.ReadFile(filepath.Join(out, "reporting", "send-report", "config.go"))
	require.NoError(t, err)
	assert.Contains(t, string(config), "1500 * time.Millisecond")
}

func TestGenerate_UnknownTaskType(t *testing.T) {
	_, err := run(t, "--task-type", "does-not-exist", "--out", t.TempDir())
	assert.Error(t, err)
}

func TestTimeoutExpr(t *testing.T) {
	assert.Equal(t, "30 * time.Second", timeoutExpr("30s"))
	assert.Equal(t, "250 * time.Millisecond", timeoutExpr("250ms"))
	assert.Equal(t, "10 * time.Second", timeoutExpr("soon"))
}
