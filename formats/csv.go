package formats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/oleg578/swiftcsv"

	"github.com/joiningdata/tabio/table"
)

func init() {
	RegisterReader("csv", func() Reader { return CSVReader{} })
	RegisterWriter("csv", func() Writer { return CSVWriter{} })
}

// CSVOptions configure the delimited-text strategy.
type CSVOptions struct {
	// Comma is the field delimiter. Zero selects ','.
	Comma byte

	// WriteIndex emits a leading positional "index" column on writes.
	// Off unless explicitly enabled.
	WriteIndex bool
}

// CSVReader reads a table from a delimited-text file.  The first record is
// taken as the header.
type CSVReader struct{}

// Read implements the formats.Reader interface.  The source must be an
// existing file path; a missing path reports ErrSourceNotFound before any
// read is attempted.
func (CSVReader) Read(source string, opt Options) (*table.Table, error) {
	if _, err := os.Stat(source); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, source)
		}
		return nil, &IOError{Op: "read", Path: source, Err: err}
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, &IOError{Op: "read", Path: source, Err: err}
	}
	defer f.Close()

	r := swiftcsv.NewReader(f)
	if opt.CSV.Comma != 0 {
		r.Comma = opt.CSV.Comma
	}

	head, err := r.Read()
	if err != nil {
		if err == io.EOF {
			err = errors.New("empty document")
		}
		return nil, &IOError{Op: "read", Path: source, Err: err}
	}

	tab := table.New(head)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &IOError{Op: "read", Path: source, Err: err}
		}
		if err := tab.AppendRow(rec); err != nil {
			return nil, &IOError{Op: "read", Path: source, Err: err}
		}
	}
	return tab, nil
}

// CSVWriter writes a table to a delimited-text file, creating any missing
// parent directories first.
type CSVWriter struct{}

// Write implements the formats.Writer interface.
func (CSVWriter) Write(tab *table.Table, target string, opt Options) error {
	if dir := filepath.Dir(target); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &IOError{Op: "write", Path: target, Err: err}
		}
	}

	f, err := os.Create(target)
	if err != nil {
		return &IOError{Op: "write", Path: target, Err: err}
	}

	w := swiftcsv.NewWriter(f)
	if opt.CSV.Comma != 0 {
		w.Comma = opt.CSV.Comma
	}

	head := tab.Columns()
	if opt.CSV.WriteIndex {
		head = append([]string{"index"}, head...)
	}
	err = w.Write(head)
	for i := 0; err == nil && i < tab.NumRows(); i++ {
		row := tab.Row(i)
		if opt.CSV.WriteIndex {
			row = append([]string{strconv.Itoa(i)}, row...)
		}
		err = w.Write(row)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &IOError{Op: "write", Path: target, Err: err}
	}
	return nil
}
