package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"

	"github.com/joiningdata/tabio/table"
)

func init() {
	RegisterReader("xlsx", func() Reader { return XLSXReader{} })
	RegisterWriter("xlsx", func() Writer { return XLSXWriter{} })
}

// XLSXOptions configure the excel strategy.
type XLSXOptions struct {
	// Sheet names the worksheet to use. Empty selects the first sheet on
	// reads and "Sheet1" on writes.
	Sheet string
}

// XLSXReader reads a table from one worksheet of an excel file.  The first
// row is taken as the header; short rows are padded with empty cells since
// excel omits trailing blanks.
type XLSXReader struct{}

// Read implements the formats.Reader interface.
func (XLSXReader) Read(source string, opt Options) (*table.Table, error) {
	if _, err := os.Stat(source); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, source)
		}
		return nil, &IOError{Op: "read", Path: source, Err: err}
	}

	f, err := excelize.OpenFile(source)
	if err != nil {
		return nil, &IOError{Op: "read", Path: source, Err: err}
	}

	sheet := opt.XLSX.Sheet
	if sheet == "" {
		sheet = f.GetSheetMap()[1]
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, &IOError{Op: "read", Path: source, Err: err}
	}

	var tab *table.Table
	for rows.Next() {
		cols := rows.Columns()
		if tab == nil {
			tab = table.New(cols)
			continue
		}
		for len(cols) < tab.NumColumns() {
			cols = append(cols, "")
		}
		if err := tab.AppendRow(cols); err != nil {
			return nil, &IOError{Op: "read", Path: source, Err: err}
		}
	}
	if err := rows.Error(); err != nil {
		return nil, &IOError{Op: "read", Path: source, Err: err}
	}
	if tab == nil {
		return nil, &IOError{Op: "read", Path: source, Err: errors.New("empty document")}
	}
	return tab, nil
}

// XLSXWriter writes a table to a fresh excel workbook, creating any missing
// parent directories first.
type XLSXWriter struct{}

// Write implements the formats.Writer interface.
func (XLSXWriter) Write(tab *table.Table, target string, opt Options) error {
	if dir := filepath.Dir(target); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &IOError{Op: "write", Path: target, Err: err}
		}
	}

	sheet := opt.XLSX.Sheet
	f := excelize.NewFile()
	if sheet == "" {
		sheet = "Sheet1"
	} else if sheet != "Sheet1" {
		f.SetSheetName("Sheet1", sheet)
	}

	for c, name := range tab.Columns() {
		f.SetCellValue(sheet, excelize.ToAlphaString(c)+"1", name)
	}
	for r := 0; r < tab.NumRows(); r++ {
		axisRow := strconv.Itoa(r + 2)
		for c, v := range tab.Row(r) {
			f.SetCellValue(sheet, excelize.ToAlphaString(c)+axisRow, v)
		}
	}

	if err := f.SaveAs(target); err != nil {
		return &IOError{Op: "write", Path: target, Err: err}
	}
	return nil
}
