package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestExportValidateUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "activity-registry.json")

	out, err := run(t, "export", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 6 activities")

	out, err = run(t, "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 6 activities")

	_, err = run(t, "update", "--path", path, "--id", registry.TaskLookupRegion, "--field", "timeout", "--value", "3s")
	require.NoError(t, err)

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	a, ok := reg.Find(registry.TaskLookupRegion)
	require.True(t, ok)
	assert.Equal(t, "3s", a.Timeout)

	out, err = run(t, "list", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, registry.TaskBucketByRisk)
}

func TestUpdateActivity_Errors(t *testing.T) {
	reg := registry.Default()

	assert.Error(t, updateActivity(reg, "missing", "status", "done"))
	assert.Error(t, updateActivity(reg, registry.TaskLookupRegion, "colour", "blue"))
	assert.Error(t, updateActivity(reg, registry.TaskLookupRegion, "timeout", "soon"))
	assert.Error(t, updateActivity(reg, registry.TaskLookupRegion, "retries", "-1"))
	require.NoError(t, updateActivity(reg, registry.TaskLookupRegion, "retries", "5"))

	a, _ := reg.Find(registry.TaskLookupRegion)
	assert.Equal(t, 5, a.Retries)
}

func TestValidate_RejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"activities":[{"taskType":"Not_Kebab"}]}`), 0o600))

	_, err := run(t, "validate", "--path", path)
	assert.Error(t, err)
}

func TestUnknownTaskTypes(t *testing.T) {
	reg := registry.Default()
	reg.Activities = append(reg.Activities, registry.Activity{TaskType: "send-newsletter"})

	assert.Equal(t, []string{"send-newsletter"}, unknownTaskTypes(reg))
}
