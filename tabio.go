// Package tabio is a small format-agnostic facade for loading and saving
// tabular data.  It resolves a format tag ("csv", "tsv", "xlsx", "sql", or
// anything registered at runtime) through the formats registry and delegates
// to the matching strategy, handing back the result or error untouched.
package tabio

import (
	"github.com/joiningdata/tabio/formats"
	"github.com/joiningdata/tabio/table"
)

// Load reads the table held at source in the given format.  The source is a
// file path for file-backed formats and a connection string for "sql".
// Errors from the strategy are propagated unchanged; an unregistered format
// reports formats.ErrUnknownFormat.
func Load(source, format string, opt formats.Options) (*table.Table, error) {
	r, err := formats.GetReader(format)
	if err != nil {
		return nil, err
	}
	return r.Read(source, opt)
}

// Save writes the table to target in the given format, with the same
// target and error conventions as Load.
func Save(tab *table.Table, target, format string, opt formats.Options) error {
	w, err := formats.GetWriter(format)
	if err != nil {
		return err
	}
	return w.Write(tab, target, opt)
}
