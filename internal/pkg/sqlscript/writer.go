package sqlscript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
)

// reserved holds table names that collide with SQL keywords.
var reserved = map[string]bool{"user": true}

// Table names a target table and its column order.
type Table struct {
	Name    string
	Columns []string
}

// Ident returns the table name as it appears in a statement, quoted when reserved.
func (t Table) Ident() string {
	return Ident(t.Name)
}

// Ident quotes name when it is a reserved word.
func Ident(name string) string {
	if reserved[strings.ToLower(name)] {
		return pgx.Identifier{name}.Sanitize()
	}
	return name
}

// WriteInsert writes rows as multi-row INSERT statements of at most batchSize rows,
// wrapped in a single transaction.
func WriteInsert(w io.Writer, t Table, rows [][]any, batchSize int) error {
	if batchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "-- PostgreSQL INSERT script for '%s' table\n\n", t.Name)
	bw.WriteString("BEGIN;\n\n")

	head := fmt.Sprintf("INSERT INTO %s (%s) VALUES\n", t.Ident(), strings.Join(t.Columns, ", "))
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		bw.WriteString(head)
		for i, row := range rows[start:end] {
			if len(row) != len(t.Columns) {
				return fmt.Errorf("table %s row %d: %d values for %d columns", t.Name, start+i, len(row), len(t.Columns))
			}
			if i > 0 {
				bw.WriteString(",\n")
			}
			bw.WriteString(Row(row...))
		}
		bw.WriteString(";\n\n")
	}

	bw.WriteString("COMMIT;\n")
	return bw.Flush()
}

// WriteStatements writes plain statements in groups of batchSize inside one transaction.
func WriteStatements(w io.Writer, title string, stmts []string, batchSize int) error {
	if batchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "-- PostgreSQL UPDATE script for %s\n\n", title)
	bw.WriteString("BEGIN;\n\n")
	for start := 0; start < len(stmts); start += batchSize {
		end := min(start+batchSize, len(stmts))
		bw.WriteString(strings.Join(stmts[start:end], ";\n"))
		bw.WriteString(";\n\n")
	}
	bw.WriteString("COMMIT;\n")
	return bw.Flush()
}

// WriteInsertFile creates path and writes the INSERT script into it.
func WriteInsertFile(path string, t Table, rows [][]any, batchSize int) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteInsert(w, t, rows, batchSize)
	})
}

// WriteStatementsFile creates path and writes the statement script into it.
func WriteStatementsFile(path, title string, stmts []string, batchSize int) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteStatements(w, title, stmts, batchSize)
	})
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := fn(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Merge concatenates files from dir, in order, into out. Each file is followed by a blank line.
func Merge(dir string, files []string, out string) error {
	return writeFile(out, func(w io.Writer) error {
		for _, name := range files {
			content, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			if _, err := w.Write(content); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		return nil
	})
}
