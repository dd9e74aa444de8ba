package avon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avon-lang/avon/diag"
)

func deployFixture(t *testing.T, path, body string) *Value {
	t.Helper()
	tpl := &Template{parts: []string{body}}
	return VFileTemplate(&PathValue{Text: path, Relative: true}, tpl, 3, 7)
}

func TestDeployDefaultSkipsExistingFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(existing, []byte("original"), 0o644))

	results, err := Deploy(deployFixture(t, "out.txt", "new content"), DeployOptions{Root: dir, Policy: PolicyDefault})
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "skipped", results[0].Action)

	data, _ := os.ReadFile(existing)
	assert.Equal(t, "original", string(data))
}

func TestDeployForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(existing, []byte("original"), 0o644))

	_, err := Deploy(deployFixture(t, "out.txt", "new content"), DeployOptions{Root: dir, Policy: PolicyForce})
	require.Nil(t, err)

	data, _ := os.ReadFile(existing)
	assert.Equal(t, "new content", string(data))
}

func TestDeployAppendAddsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(existing, []byte("line one\n"), 0o644))

	_, err := Deploy(deployFixture(t, "out.txt", "line two\n"), DeployOptions{Root: dir, Policy: PolicyAppend})
	require.Nil(t, err)

	data, _ := os.ReadFile(existing)
	assert.Equal(t, "line one\nline two\n", string(data))
}

func TestDeployIfNotExistsFailsWhenPresent(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(existing, []byte("original"), 0o644))

	_, err := Deploy(deployFixture(t, "out.txt", "new"), DeployOptions{Root: dir, Policy: PolicyIfNotExists})
	require.NotNil(t, err)
	assert.Equal(t, diag.Deploy, err.Kind)
	assert.Contains(t, err.Message, "already exists")
}

func TestDeployBackupPreservesOriginal(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(existing, []byte("original"), 0o644))

	_, err := Deploy(deployFixture(t, "out.txt", "new content"), DeployOptions{Root: dir, Policy: PolicyBackup})
	require.Nil(t, err)

	backup, readErr := os.ReadFile(existing + ".bak")
	require.NoError(t, readErr)
	assert.Equal(t, "original", string(backup))

	current, _ := os.ReadFile(existing)
	assert.Equal(t, "new content", string(current))
}

func TestDeployRejectsPathEscapingRoot(t *testing.T) {
	dir := t.TempDir()
	_, err := Deploy(deployFixture(t, "../escape.txt", "x"), DeployOptions{Root: dir, Policy: PolicyForce})
	require.NotNil(t, err)
	assert.Equal(t, diag.Deploy, err.Kind)
	assert.Contains(t, err.Message, "escapes deployment root")
}

func TestDeployErrorCarriesTemplatePosition(t *testing.T) {
	dir := t.TempDir()
	_, err := Deploy(deployFixture(t, "../escape.txt", "x"), DeployOptions{Root: dir, Policy: PolicyForce})
	require.NotNil(t, err)
	assert.Equal(t, 3, err.Line)
	assert.Equal(t, 7, err.Column)
}

func TestDeployRejectsBareNonDeployableValue(t *testing.T) {
	dir := t.TempDir()
	_, err := Deploy(VInt(42), DeployOptions{Root: dir, Policy: PolicyForce})
	require.NotNil(t, err)
	assert.Equal(t, diag.Deploy, err.Kind)
	assert.Contains(t, err.Message, "cannot deploy bare template or path")
}

func TestDeployFlattensNestedListsAndDicts(t *testing.T) {
	dir := t.TempDir()
	nested := NewOrderedDict().Set("files", VList([]*Value{
		deployFixture(t, "a.txt", "A"),
		deployFixture(t, "b.txt", "B"),
	}))
	results, err := Deploy(VDict(nested), DeployOptions{Root: dir, Policy: PolicyForce, KeepGoing: true})
	require.Nil(t, err)
	require.Len(t, results, 2)

	a, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	b, _ := os.ReadFile(filepath.Join(dir, "b.txt"))
	assert.Equal(t, "A", string(a))
	assert.Equal(t, "B", string(b))
}
