// Package runtable writes the CSV table mapping run numbers to the
// parameter values pinned in each generated run.
package runtable

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Write emits rows as CSV.
func Write(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write run table row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
