package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ena-dev/ena/internal/export"
	"github.com/ena-dev/ena/internal/model"
	"github.com/ena-dev/ena/internal/preferences"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "ena-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "ena")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/ena")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

// runEna runs the binary with dir as its working directory.
func runEna(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runEna(t, dir, "init", dir)
	require.NoError(t, err)

	expectedDirs := []string{
		"output",
		"logs",
		filepath.Join("statements", "amex"),
		filepath.Join("statements", "bmo"),
		filepath.Join("statements", "mfc"),
		filepath.Join("statements", "rbc"),
		filepath.Join("statements", "td"),
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	for _, f := range []string{"preferences.ini", "categories.yaml", "profiles.yaml"} {
		_, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "file %s should exist", f)
	}
}

func TestInit_DefaultPreferences(t *testing.T) {
	dir := t.TempDir()
	_, err := runEna(t, dir, "init", dir)
	require.NoError(t, err)

	p, err := preferences.Load(filepath.Join(dir, preferences.FileName))
	require.NoError(t, err)
	assert.Equal(t, preferences.Default(), p)
}

func TestPrefs_WritesFile(t *testing.T) {
	dir := t.TempDir()
	_, err := runEna(t, dir, "prefs", "-o", "full", "-k", "-p")
	require.NoError(t, err)

	p, err := preferences.Load(filepath.Join(dir, preferences.FileName))
	require.NoError(t, err)
	assert.Equal(t, export.OrderFull, p.Order)
	assert.False(t, p.UseInference)
	assert.True(t, p.KeepPayments)
	assert.Equal(t, model.ExpensesPositive, p.Convention)
}

func TestPrefs_RejectsUnknownOrder(t *testing.T) {
	dir := t.TempDir()
	out, err := runEna(t, dir, "prefs", "-o", "wide")
	require.Error(t, err)
	assert.Contains(t, out, "unknown csv order")
}

func TestInstitutions_ListsBuiltins(t *testing.T) {
	out, err := runEna(t, t.TempDir(), "institutions")
	require.NoError(t, err)
	assert.Equal(t, []string{"amex", "bmo", "mfc", "rbc", "td"},
		strings.Fields(out))
}

func TestInstitutions_IncludesUserProfiles(t *testing.T) {
	dir := t.TempDir()
	profiles := `profiles:
  - name: acme
    transaction: '^(?P<dates>(?:\d{2}/\d{2} ){2})(?P<description>.+)\s(?P<amount>-?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?'
    year: 'Statement Period: .+(?P<year>,.\d{4})'
    opening_balance: 'Previous Balance (?P<balance>-?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?'
    closing_balance: 'New Balance (?P<balance>-?\$[\d,]+\.\d{2})(?P<cr>-|\s?CR)?'
    income: sign
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profiles.yaml"), []byte(profiles), 0o644))

	out, err := runEna(t, dir, "institutions")
	require.NoError(t, err)
	assert.Contains(t, strings.Fields(out), "acme")
}

func TestParse_EmptyStatementsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "statements"), 0o755))

	_, err := runEna(t, dir, "parse")
	assert.NoError(t, err)
}

func TestParse_MissingStatementsDir(t *testing.T) {
	out, err := runEna(t, t.TempDir(), "parse")
	require.Error(t, err)
	assert.Contains(t, out, "reading statements dir")
}
