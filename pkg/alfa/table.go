package alfa

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Row is one data record keyed by column name. Values are kept as written.
type Row map[string]string

// Table is a row-oriented result set read from a tab-delimited file.
type Table struct {
	Path    string   `json:"path"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Len returns the number of data rows (the header is not counted).
func (t *Table) Len() int { return len(t.Rows) }

// ReadTable parses a tab-delimited file whose first record is the header.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // G304: caller chooses the file
	if err != nil {
		return nil, fmt.Errorf("failed to open output %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	table, err := ParseTable(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse output %s: %w", path, err)
	}
	table.Path = path
	return table, nil
}

// ParseTable reads tab-delimited records from r. Short records are padded
// with empty values; records longer than the header are rejected. A repeated
// header name gets a numeric suffix (Reserve, Reserve.1, Reserve.2) so no
// column is lost.
func ParseTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Table{Columns: []string{}, Rows: []Row{}}, nil
	}
	if err != nil {
		return nil, err
	}

	header = uniqueColumns(header)
	table := &Table{Columns: header, Rows: []Row{}}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d has %d fields, header has %d", line, len(record), len(header))
		}

		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// uniqueColumns renames repeated column names to name.N, skipping any
// suffix that is already taken by another column.
func uniqueColumns(cols []string) []string {
	taken := make(map[string]bool, len(cols))
	for _, c := range cols {
		taken[c] = true
	}

	out := make([]string, len(cols))
	seen := make(map[string]int, len(cols))
	for i, c := range cols {
		n := seen[c]
		seen[c] = n + 1
		if n == 0 {
			out[i] = c
			continue
		}
		name := fmt.Sprintf("%s.%d", c, n)
		for taken[name] {
			n++
			seen[c] = n + 1
			name = fmt.Sprintf("%s.%d", c, n)
		}
		taken[name] = true
		out[i] = name
	}
	return out
}
