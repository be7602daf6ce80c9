package formats

import (
	"errors"
	"fmt"

	"github.com/joiningdata/tabio/table"
)

var (
	// ErrUnknownFormat indicates that no strategy is registered for a
	// format tag.
	ErrUnknownFormat = errors.New("tabio/formats: unknown format")

	// ErrSourceNotFound indicates that a filesystem-backed source does
	// not exist.
	ErrSourceNotFound = errors.New("tabio/formats: source not found")

	// ErrMissingArgument indicates that a required format-specific option
	// is absent.
	ErrMissingArgument = errors.New("tabio/formats: missing required argument")
)

// IOError wraps a failure reported by the underlying file or database
// library, keeping the offending path or target together with the cause.
type IOError struct {
	Op   string // "read" or "write"
	Path string // file path, connection string or table name
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("tabio/formats: %s %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause so IOError participates in errors.Is.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Reader loads a Table from a format-specific source.
type Reader interface {
	// Read loads the table held at source, a file path or connection
	// string depending on the format.
	Read(source string, opt Options) (*table.Table, error)
}

// Writer stores a Table to a format-specific target.
type Writer interface {
	// Write stores tab at target, a file path or connection string
	// depending on the format.
	Write(tab *table.Table, target string, opt Options) error
}

// Options carries the per-format configuration for a read or write call.
// Each strategy only looks at its own section; the zero value selects every
// default.
type Options struct {
	CSV  CSVOptions
	XLSX XLSXOptions
	SQL  SQLOptions
}

var (
	readers = make(map[string]func() Reader)
	writers = make(map[string]func() Writer)
)

// RegisterReader installs the Reader factory for a format tag. Tags are
// case-sensitive and are not validated. Registering a tag that is already
// present silently replaces the previous factory: the last registration
// wins. The registry is not guarded for concurrent use; register from a
// single goroutine, typically during initialization.
func RegisterReader(tag string, newReader func() Reader) {
	readers[tag] = newReader
}

// RegisterWriter installs the Writer factory for a format tag, with the
// same replacement and concurrency rules as RegisterReader.
func RegisterWriter(tag string, newWriter func() Writer) {
	writers[tag] = newWriter
}

// GetReader constructs a fresh Reader for the format tag. Strategy
// instances carry no state between calls, so nothing is pooled or reused.
// Returns ErrUnknownFormat when no reader is registered for the tag.
func GetReader(tag string) (Reader, error) {
	newReader, ok := readers[tag]
	if !ok {
		return nil, fmt.Errorf("%w: no reader registered for %q", ErrUnknownFormat, tag)
	}
	return newReader(), nil
}

// GetWriter constructs a fresh Writer for the format tag. Returns
// ErrUnknownFormat when no writer is registered for the tag.
func GetWriter(tag string) (Writer, error) {
	newWriter, ok := writers[tag]
	if !ok {
		return nil, fmt.Errorf("%w: no writer registered for %q", ErrUnknownFormat, tag)
	}
	return newWriter(), nil
}
