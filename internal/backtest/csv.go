package backtest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"macro-parity/internal/model"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := EncodeLedgerCSV(f, ledger); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeLedgerCSV writes one row per day: index, date, one column per asset
// (first-row order), then one column per indicator (sorted). Indicators
// absent on a day are left empty.
func EncodeLedgerCSV(out io.Writer, ledger []LedgerRow) error {
	w := csv.NewWriter(out)

	assets := Assets(ledger)
	indicators := IndicatorNames(ledger)

	header := make([]string, 0, 2+len(assets)+len(indicators))
	header = append(header, "index", "date")
	header = append(header, assets...)
	header = append(header, indicators...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(r.Index), r.Date.Format(dateLayout))
		for _, a := range assets {
			if v, ok := model.AllocationOf(r.Allocations, a); ok {
				row = append(row, fmtFloat(v))
			} else {
				row = append(row, "")
			}
		}
		for _, name := range indicators {
			if v, ok := r.Environment[name]; ok {
				row = append(row, fmtFloat(v))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
