package formats

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/joiningdata/tabio/table"

	// reference drivers; postgres for postgres:// connection strings,
	// sqlite3 for everything else
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	RegisterReader("sql", func() Reader { return SQLReader{} })
	RegisterWriter("sql", func() Writer { return SQLWriter{} })
}

// TablePolicy selects the write behavior when the destination table
// already exists.
type TablePolicy string

const (
	// PolicyFail aborts the write if the table exists. The default.
	PolicyFail TablePolicy = "fail"

	// PolicyReplace drops the table and recreates it.
	PolicyReplace TablePolicy = "replace"

	// PolicyAppend inserts into the existing table, creating it first if
	// it is absent.
	PolicyAppend TablePolicy = "append"
)

// SQLOptions configure the relational strategy.
type SQLOptions struct {
	// Driver is the database/sql driver name. Empty infers it from the
	// connection string: "postgres" for postgres:// and postgresql://
	// URLs, "sqlite3" otherwise.
	Driver string

	// Query is the statement executed on reads. Required for reads.
	Query string

	// Table names the destination table. Required for writes.
	Table string

	// IfExists selects the write collision policy. Zero means PolicyFail.
	IfExists TablePolicy
}

func driverFor(source string, opt Options) string {
	if opt.SQL.Driver != "" {
		return opt.SQL.Driver
	}
	if strings.HasPrefix(source, "postgres://") || strings.HasPrefix(source, "postgresql://") {
		return "postgres"
	}
	return "sqlite3"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// SQLReader loads a query result from a relational database.
type SQLReader struct{}

// Read implements the formats.Reader interface.  The source is a
// database/sql connection string; the query to run comes from
// SQLOptions.Query and is required, checked before any connection is
// opened.  NULLs come back as empty strings.
func (SQLReader) Read(source string, opt Options) (*table.Table, error) {
	if opt.SQL.Query == "" {
		return nil, fmt.Errorf("%w: sql read requires a query option", ErrMissingArgument)
	}

	db, err := sql.Open(driverFor(source, opt), source)
	if err != nil {
		return nil, &IOError{Op: "read", Path: source, Err: err}
	}
	defer db.Close()

	rows, err := db.Query(opt.SQL.Query)
	if err != nil {
		return nil, &IOError{Op: "read", Path: source, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &IOError{Op: "read", Path: source, Err: err}
	}

	tab := table.New(cols)
	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	rec := make([]string, len(cols))
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &IOError{Op: "read", Path: source, Err: err}
		}
		for i, v := range vals {
			if v.Valid {
				rec[i] = v.String
			} else {
				rec[i] = ""
			}
		}
		if err := tab.AppendRow(rec); err != nil {
			return nil, &IOError{Op: "read", Path: source, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &IOError{Op: "read", Path: source, Err: err}
	}
	return tab, nil
}

// SQLWriter stores a table into a relational database.  Every column is
// created as TEXT; anything fancier is up to the caller's own schema and
// the PolicyAppend path.
type SQLWriter struct{}

// Write implements the formats.Writer interface.  The target is a
// database/sql connection string; the destination table comes from
// SQLOptions.Table and is required, checked before any connection is
// opened.  Rows are inserted one statement at a time with no surrounding
// transaction and no retries.
func (SQLWriter) Write(tab *table.Table, target string, opt Options) error {
	if opt.SQL.Table == "" {
		return fmt.Errorf("%w: sql write requires a table option", ErrMissingArgument)
	}
	name := opt.SQL.Table

	driverName := driverFor(target, opt)
	db, err := sql.Open(driverName, target)
	if err != nil {
		return &IOError{Op: "write", Path: name, Err: err}
	}
	defer db.Close()

	create := "CREATE TABLE "
	switch opt.SQL.IfExists {
	case PolicyFail, "":
		// plain CREATE TABLE errors out on an existing table
	case PolicyReplace:
		if _, err := db.Exec("DROP TABLE IF EXISTS " + quoteIdent(name) + ";"); err != nil {
			return &IOError{Op: "write", Path: name, Err: err}
		}
	case PolicyAppend:
		create = "CREATE TABLE IF NOT EXISTS "
	default:
		return fmt.Errorf("tabio/formats: unknown if-exists policy %q", opt.SQL.IfExists)
	}

	cols := tab.Columns()
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	if _, err := db.Exec(create + quoteIdent(name) + " (" + strings.Join(defs, ", ") + ");"); err != nil {
		return &IOError{Op: "write", Path: name, Err: err}
	}

	insert := insertStatement(driverName, name, cols)
	args := make([]any, len(cols))
	for i := 0; i < tab.NumRows(); i++ {
		for j, v := range tab.Row(i) {
			args[j] = v
		}
		if _, err := db.Exec(insert, args...); err != nil {
			return &IOError{Op: "write", Path: name, Err: err}
		}
	}
	return nil
}

func insertStatement(driverName, tableName string, cols []string) string {
	qcols := make([]string, len(cols))
	ph := make([]string, len(cols))
	for i, c := range cols {
		qcols[i] = quoteIdent(c)
		if driverName == "postgres" {
			ph[i] = fmt.Sprintf("$%d", i+1)
		} else {
			ph[i] = "?"
		}
	}
	return "INSERT INTO " + quoteIdent(tableName) +
		" (" + strings.Join(qcols, ", ") + ") VALUES (" + strings.Join(ph, ", ") + ");"
}
