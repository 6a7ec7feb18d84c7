package backtest

import (
	"fmt"
	"io"
)

// WriteReport prints one day in the console format:
//
//	Date: 2021-01-01
//	Economic environment:
//	  GDP Growth: 2.40
//	Final allocation:
//	  US Equities: 14.63%
func WriteReport(w io.Writer, r LedgerRow) error {
	rw := &reportWriter{w: w}
	rw.printf("Date: %s\n", r.Date.Format(dateLayout))
	rw.printf("Economic environment:\n")
	for _, name := range r.Environment.Names() {
		rw.printf("  %s: %.2f\n", name, r.Environment[name])
	}
	rw.printf("Final allocation:\n")
	for _, d := range r.Allocations {
		rw.printf("  %s: %.2f%%\n", d.Asset, d.Allocation*100)
	}
	rw.printf("\n")
	return rw.err
}

// reportWriter keeps the first write error and skips every later write.
type reportWriter struct {
	w   io.Writer
	err error
}

func (rw *reportWriter) printf(format string, args ...interface{}) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}
