// Package export renders parsed transactions as bookkeeping CSVs, one file
// per institution per run.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/ena-dev/ena/internal/model"
)

const dateFormat = "2006-01-02"

// Assembler sorts and renders one institution's transactions.
type Assembler struct {
	Order ColumnOrder
}

// Assemble returns a copy of txns sorted by date ascending. The sort is
// stable: rows sharing a date keep their scan order.
func (a Assembler) Assemble(txns []model.Transaction) []model.Transaction {
	sorted := make([]model.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}

// WriteCSV writes the header row and one row per transaction in the
// assembler's column order. Rows are written in slice order; callers sort
// via Assemble first.
func (a Assembler) WriteCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(a.Order.Columns()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(a.marshal(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func (a Assembler) marshal(t model.Transaction) []string {
	row := []string{
		t.Date.Format(dateFormat),
		t.Amount.StringFixed(2),
		t.Note,
	}
	if a.Order == OrderFull {
		row = append(row, t.Category.String())
	}
	return row
}

// OutputPath names one export batch: <outRoot>/<institution>/<unix>.csv.
func OutputPath(outRoot, institution string, now time.Time) string {
	return filepath.Join(outRoot, institution, strconv.FormatInt(now.Unix(), 10)+".csv")
}
