package statements

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ena-dev/ena/internal/extract"
	"github.com/ena-dev/ena/internal/preferences"
	"github.com/ena-dev/ena/internal/profile"
	"github.com/ena-dev/ena/internal/runlog"
)

const bmoStatement = `Your BMO Mastercard statement
Statement period Dec. 12, 2021 to Jan. 11, 2022
Previous balance, Dec. 11, 2021 $1,000.00
Dec. 14 Dec. 15 COSTCO WHOLESALE TORONTO 150.00
Dec. 22 Dec. 23 PAYMENT RECEIVED - THANK YOU 200.00 CR
Jan. 5 Jan. 6 AMAZON.CA MARKETPLACE 85.50
Total balance Jan. 11, 2022 $1,035.50
`

// bmoOffByTen misreports its closing balance.
const bmoOffByTen = `Your BMO Mastercard statement
Statement period Dec. 12, 2021 to Jan. 11, 2022
Previous balance, Dec. 11, 2021 $1,000.00
Dec. 14 Dec. 15 COSTCO WHOLESALE TORONTO 150.00
Total balance Jan. 11, 2022 $1,160.00
`

// stubExtractor serves canned text keyed by statement file name.
type stubExtractor map[string]string

func (s stubExtractor) Text(path string) (string, error) {
	text, ok := s[filepath.Base(path)]
	if !ok {
		return "", fmt.Errorf("no text for %s", path)
	}
	return text, nil
}

var _ extract.Extractor = stubExtractor{}

// workspace lays out the directories init scaffolds: statements/ and
// output/ under one root, which is also where the run log lands.
func workspace(t *testing.T) (ws, root, out string) {
	t.Helper()
	ws = t.TempDir()
	root = filepath.Join(ws, "statements")
	out = filepath.Join(ws, "output")
	require.NoError(t, os.MkdirAll(root, 0o755))
	return ws, root, out
}

func writeStatement(t *testing.T, root, institution, name string) {
	t.Helper()
	dir := filepath.Join(root, institution)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644))
}

func newService(ws string, ext stubExtractor, prefs preferences.Preferences) *Service {
	return &Service{
		Registry:  profile.DefaultRegistry(),
		Extractor: ext,
		Prefs:     prefs,
		Log:       zerolog.Nop(),
		LogRoot:   ws,
		Now:       func() time.Time { return time.Unix(1650000000, 0) },
	}
}

func TestScan(t *testing.T) {
	_, root, _ := workspace(t)
	writeStatement(t, root, "bmo", "dec.pdf")
	writeStatement(t, root, "bmo", "jan.PDF")
	writeStatement(t, root, "td", "notes.txt")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.pdf"), nil, 0o644))

	batches, err := Scan(root)
	require.NoError(t, err)

	// Only directories with PDFs survive; top-level files are ignored.
	require.Len(t, batches, 1)
	assert.Equal(t, "bmo", batches[0].Institution)
	assert.Len(t, batches[0].Statements, 2)
}

func TestRun_ExportsCSV(t *testing.T) {
	ws, root, out := workspace(t)
	writeStatement(t, root, "bmo", "dec.pdf")

	svc := newService(ws, stubExtractor{"dec.pdf": bmoStatement}, preferences.Default())
	require.NoError(t, svc.Run(root, out))

	data, err := os.ReadFile(filepath.Join(out, "bmo", "1650000000.csv"))
	require.NoError(t, err)
	csv := string(data)

	assert.Contains(t, csv, "Date,Amount,Note\n")
	assert.Contains(t, csv, "2021-12-14,-150.00,COSTCO WHOLESALE TORONTO\n")
	assert.Contains(t, csv, "2022-01-05,-85.50,AMAZON.CA MARKETPLACE\n")
	// Payments are dropped by default.
	assert.NotContains(t, csv, "PAYMENT")

	entries, err := runlog.Read(ws)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, runlog.StatusOK, entries[0].Status)
	assert.Equal(t, "bmo", entries[0].Institution)
	assert.Equal(t, 3, entries[0].Transactions)
}

func TestRun_LogsAtWorkspaceRoot(t *testing.T) {
	ws, root, out := workspace(t)
	writeStatement(t, root, "bmo", "dec.pdf")

	svc := newService(ws, stubExtractor{"dec.pdf": bmoStatement}, preferences.Default())
	require.NoError(t, svc.Run(root, out))

	// The audit trail lands in the workspace logs/ directory that init
	// scaffolds, never inside the statements tree.
	_, err := os.Stat(filepath.Join(ws, "logs", "runs.csv"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "logs"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_KeepPayments(t *testing.T) {
	ws, root, out := workspace(t)
	writeStatement(t, root, "bmo", "dec.pdf")

	prefs := preferences.Default()
	prefs.KeepPayments = true
	svc := newService(ws, stubExtractor{"dec.pdf": bmoStatement}, prefs)
	require.NoError(t, svc.Run(root, out))

	data, err := os.ReadFile(filepath.Join(out, "bmo", "1650000000.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2021-12-22,200.00,PAYMENT RECEIVED - THANK YOU\n")
}

func TestRun_DiscrepancyWarnsByDefault(t *testing.T) {
	ws, root, out := workspace(t)
	writeStatement(t, root, "bmo", "dec.pdf")

	svc := newService(ws, stubExtractor{"dec.pdf": bmoOffByTen}, preferences.Default())
	require.NoError(t, svc.Run(root, out))

	// The CSV is still written; the run log flags the discrepancy.
	_, err := os.Stat(filepath.Join(out, "bmo", "1650000000.csv"))
	require.NoError(t, err)

	entries, err := runlog.Read(ws)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, runlog.StatusDiscrepancy, entries[0].Status)
	assert.Contains(t, entries[0].Detail, "off by -10.00")
}

func TestRun_StrictDiscrepancyAborts(t *testing.T) {
	ws, root, out := workspace(t)
	writeStatement(t, root, "bmo", "dec.pdf")

	svc := newService(ws, stubExtractor{"dec.pdf": bmoOffByTen}, preferences.Default())
	svc.Strict = true

	err := svc.Run(root, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discrepancy")

	_, statErr := os.Stat(filepath.Join(out, "bmo"))
	assert.True(t, os.IsNotExist(statErr))

	entries, readErr := runlog.Read(ws)
	require.NoError(t, readErr)
	require.Len(t, entries, 1)
	assert.Equal(t, runlog.StatusDiscrepancy, entries[0].Status)
}

func TestRun_UnknownInstitutionDoesNotBlockOthers(t *testing.T) {
	ws, root, out := workspace(t)
	writeStatement(t, root, "acme", "dec.pdf")
	writeStatement(t, root, "bmo", "dec.pdf")

	svc := newService(ws, stubExtractor{"dec.pdf": bmoStatement}, preferences.Default())
	err := svc.Run(root, out)

	require.Error(t, err)
	var unsupported *profile.UnsupportedInstitutionError
	assert.ErrorAs(t, err, &unsupported)
	assert.True(t, strings.HasPrefix(err.Error(), "acme:"))

	// The bmo batch still exported.
	_, statErr := os.Stat(filepath.Join(out, "bmo", "1650000000.csv"))
	assert.NoError(t, statErr)
}

func TestRun_ExtractionFailureRecorded(t *testing.T) {
	ws, root, out := workspace(t)
	writeStatement(t, root, "bmo", "corrupt.pdf")

	svc := newService(ws, stubExtractor{}, preferences.Default())
	err := svc.Run(root, out)
	require.Error(t, err)

	entries, readErr := runlog.Read(ws)
	require.NoError(t, readErr)
	require.Len(t, entries, 1)
	assert.Equal(t, runlog.StatusFailed, entries[0].Status)
	assert.Contains(t, entries[0].Detail, "no text for")
}

func TestRun_EmptyRoot(t *testing.T) {
	ws, root, out := workspace(t)
	svc := newService(ws, stubExtractor{}, preferences.Default())
	assert.NoError(t, svc.Run(root, out))
}
