// Package statements orchestrates the batch pipeline: scan the statement
// tree, resolve a profile per institution, extract and parse each
// statement, reconcile it, and export one CSV per institution per run.
package statements

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ena-dev/ena/internal/categorize"
	"github.com/ena-dev/ena/internal/export"
	"github.com/ena-dev/ena/internal/extract"
	"github.com/ena-dev/ena/internal/model"
	"github.com/ena-dev/ena/internal/parser"
	"github.com/ena-dev/ena/internal/preferences"
	"github.com/ena-dev/ena/internal/profile"
	"github.com/ena-dev/ena/internal/reconcile"
	"github.com/ena-dev/ena/internal/runlog"
)

// Batch is one institution's statements, found under <root>/<institution>/.
type Batch struct {
	Institution string
	Statements  []string
}

// Scan maps each immediate subdirectory of root to its *.pdf files. The
// directory name is the institution name. Directories without PDFs are
// skipped.
func Scan(root string) ([]Batch, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading statements dir: %w", err)
	}

	var batches []Batch
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		var pdfs []string
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(strings.ToLower(f.Name()), ".pdf") {
				continue
			}
			pdfs = append(pdfs, filepath.Join(dir, f.Name()))
		}
		if len(pdfs) == 0 {
			continue
		}
		batches = append(batches, Batch{Institution: e.Name(), Statements: pdfs})
	}
	return batches, nil
}

// Service runs the pipeline. Institutions are processed independently: a
// failed batch never corrupts another institution's output.
type Service struct {
	Registry    *profile.Registry
	Extractor   extract.Extractor
	Prefs       preferences.Preferences
	Categorizer categorize.Categorizer
	Log         zerolog.Logger

	// Strict makes a reconciliation discrepancy fatal for its statement
	// instead of a warning.
	Strict bool

	// LogRoot is the directory the logs/runs.csv audit trail is written
	// under; empty means the working directory, the workspace root that
	// init scaffolds.
	LogRoot string

	// Now stamps output file names; nil means time.Now.
	Now func() time.Time
}

// Run processes every institution under root and writes one CSV per
// institution to outRoot. Batch failures are collected, not short-circuited;
// the run log records every statement touched.
func (s *Service) Run(root, outRoot string) error {
	batches, err := Scan(root)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		s.Log.Warn().Str("dir", root).Msg("no statements found")
		return nil
	}

	var errs []error
	var entries []runlog.Entry
	for _, b := range batches {
		if err := s.runBatch(b, outRoot, &entries); err != nil {
			s.Log.Error().Str("institution", b.Institution).Err(err).Msg("batch aborted")
			errs = append(errs, fmt.Errorf("%s: %w", b.Institution, err))
		}
	}

	if err := runlog.Append(s.logRoot(), entries); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Service) logRoot() string {
	if s.LogRoot != "" {
		return s.LogRoot
	}
	return "."
}

func (s *Service) runBatch(b Batch, outRoot string, entries *[]runlog.Entry) error {
	prof, err := s.Registry.Resolve(b.Institution)
	if err != nil {
		return err
	}
	p := parser.New(prof, s.Prefs, s.Categorizer, s.Log)

	var all []model.Transaction
	for _, path := range b.Statements {
		txns, entry, err := s.processStatement(p, prof, path)
		entry.Institution = b.Institution
		entry.Statement = path
		*entries = append(*entries, entry)
		if err != nil {
			return fmt.Errorf("statement %s: %w", filepath.Base(path), err)
		}
		all = append(all, txns...)
	}

	asm := export.Assembler{Order: s.Prefs.Order}
	sorted := asm.Assemble(all)

	outPath := export.OutputPath(outRoot, b.Institution, s.now())
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()
	if err := asm.WriteCSV(f, sorted); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	s.Log.Info().
		Str("institution", b.Institution).
		Int("transactions", len(sorted)).
		Str("file", outPath).
		Msg("exported")
	return nil
}

// processStatement extracts, parses and reconciles one statement. The
// returned run-log entry always reflects the outcome, error or not.
func (s *Service) processStatement(p *parser.Parser, prof *profile.Profile, path string) ([]model.Transaction, runlog.Entry, error) {
	entry := runlog.Entry{Timestamp: s.now(), Status: runlog.StatusOK}

	text, err := s.Extractor.Text(path)
	if err != nil {
		entry.Status = runlog.StatusFailed
		entry.Detail = err.Error()
		return nil, entry, err
	}

	stmt, err := p.Parse(text)
	if err != nil {
		entry.Status = runlog.StatusFailed
		entry.Detail = err.Error()
		return nil, entry, err
	}
	entry.Transactions = len(stmt.Transactions)

	// Reconcile against all parsed transactions, payments included: the
	// declared balances account for them.
	if err := reconcile.Validate(stmt.OpeningBalance, stmt.ClosingBalance, stmt.Transactions, s.Prefs.Convention); err != nil {
		var disc *reconcile.DiscrepancyError
		if !errors.As(err, &disc) {
			entry.Status = runlog.StatusFailed
			entry.Detail = err.Error()
			return nil, entry, err
		}
		entry.Status = runlog.StatusDiscrepancy
		entry.Detail = fmt.Sprintf("off by %s", disc.Diff.StringFixed(2))
		if s.Strict {
			return nil, entry, err
		}
		s.Log.Warn().Str("statement", path).Msg(err.Error())
	}

	txns := stmt.Transactions
	if !s.Prefs.KeepPayments {
		kept := txns[:0:0]
		for _, t := range txns {
			if prof.IsPayment(t.Note) {
				continue
			}
			kept = append(kept, t)
		}
		txns = kept
	}
	return txns, entry, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
