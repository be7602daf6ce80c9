// Package table holds the in-memory tabular value that format readers
// produce and format writers consume.  A Table is an ordered list of rows
// sharing a single header of named columns; every cell is a string, and any
// further typing is left to whatever consumes the data.
package table

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/minio/highwayhash"
)

// ErrColumnCount indicates a row whose width does not match the header.
var ErrColumnCount = errors.New("tabio/table: wrong number of values for row")

// Table is an immutable-width, append-only set of rows under named columns.
type Table struct {
	cols []string
	rows [][]string
}

// New returns an empty Table with the given column names.
func New(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{cols: cols}
}

// AppendRow adds one row of values. The number of values must match the
// number of columns.
func (t *Table) AppendRow(values []string) error {
	if len(values) != len(t.cols) {
		return fmt.Errorf("%w: got %d values, table has %d columns",
			ErrColumnCount, len(values), len(t.cols))
	}
	row := make([]string, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Columns returns a copy of the column names.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.cols))
	copy(cols, t.cols)
	return cols
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.cols)
}

// NumRows returns the number of rows appended so far.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.rows[i]))
	copy(row, t.rows[i])
	return row
}

// Equal reports whether both tables have the same columns, in the same
// order, with the same rows.
func (t *Table) Equal(o *Table) bool {
	if o == nil || len(t.cols) != len(o.cols) || len(t.rows) != len(o.rows) {
		return false
	}
	for i, c := range t.cols {
		if c != o.cols[i] {
			return false
		}
	}
	for i, row := range t.rows {
		for j, v := range row {
			if v != o.rows[i][j] {
				return false
			}
		}
	}
	return true
}

// fingerprintKey is fixed so fingerprints are comparable across processes.
var fingerprintKey = []byte("tabio.table.fingerprint.v1......")

// Fingerprint returns a HighwayHash digest of the table content, covering
// column names, row order and every cell value. Two tables have the same
// fingerprint exactly when Equal would report true (modulo hash collisions),
// so it is a cheap way to compare a table against a copy that round-tripped
// through a format.
func (t *Table) Fingerprint() uint64 {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		// the key has the required 32 bytes
		panic(err)
	}
	var n [8]byte
	put := func(s string) {
		binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
		h.Write(n[:])
		io.WriteString(h, s)
	}
	binary.LittleEndian.PutUint64(n[:], uint64(len(t.cols)))
	h.Write(n[:])
	for _, c := range t.cols {
		put(c)
	}
	binary.LittleEndian.PutUint64(n[:], uint64(len(t.rows)))
	h.Write(n[:])
	for _, row := range t.rows {
		for _, v := range row {
			put(v)
		}
	}
	return h.Sum64()
}
