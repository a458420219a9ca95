package preferences

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ena-dev/ena/internal/export"
	"github.com/ena-dev/ena/internal/model"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, export.OrderSimple, p.Order)
	assert.False(t, p.UseInference)
	assert.False(t, p.KeepPayments)
	assert.Equal(t, model.ExpensesNegative, p.Convention)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	want := Preferences{
		Order:        export.OrderFull,
		UseInference: true,
		KeepPayments: true,
		Convention:   model.ExpensesPositive,
	}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_MissingKeysFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[Preferences]\nkeep_payments = yes\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, export.OrderSimple, p.Order)
	assert.False(t, p.UseInference)
	assert.True(t, p.KeepPayments)
	assert.Equal(t, model.ExpensesNegative, p.Convention)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	assert.Error(t, err)
}

func TestLoad_BadOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[Preferences]\ncsv_order = wide\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wide")
}
