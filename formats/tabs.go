package formats

import "github.com/joiningdata/tabio/table"

func init() {
	RegisterReader("tsv", func() Reader { return TSVReader{} })
	RegisterWriter("tsv", func() Writer { return TSVWriter{} })
}

// TSVReader reads a table from a tab-separated file.  It is the
// delimited-text strategy with the separator fixed to a tab; any
// CSVOptions.Comma setting is ignored.
type TSVReader struct{}

// Read implements the formats.Reader interface.
func (TSVReader) Read(source string, opt Options) (*table.Table, error) {
	opt.CSV.Comma = '\t'
	return CSVReader{}.Read(source, opt)
}

// TSVWriter writes a table to a tab-separated file.
type TSVWriter struct{}

// Write implements the formats.Writer interface.
func (TSVWriter) Write(tab *table.Table, target string, opt Options) error {
	opt.CSV.Comma = '\t'
	return CSVWriter{}.Write(tab, target, opt)
}
