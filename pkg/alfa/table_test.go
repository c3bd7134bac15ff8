package alfa_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lathaniel/alfa/pkg/alfa"
)

func TestParseTable(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCols []string
		wantRows []alfa.Row
	}{
		{
			name:     "empty",
			input:    "",
			wantCols: []string{},
			wantRows: []alfa.Row{},
		},
		{
			name:     "header only",
			input:    "Period\tReserve\n",
			wantCols: []string{"Period", "Reserve"},
			wantRows: []alfa.Row{},
		},
		{
			name:     "values kept as text",
			input:    "Period\tReserve\n1\t001.50\n2\t-3e2\n",
			wantCols: []string{"Period", "Reserve"},
			wantRows: []alfa.Row{
				{"Period": "1", "Reserve": "001.50"},
				{"Period": "2", "Reserve": "-3e2"},
			},
		},
		{
			name:     "short rows are padded",
			input:    "A\tB\tC\n1\n",
			wantCols: []string{"A", "B", "C"},
			wantRows: []alfa.Row{{"A": "1", "B": "", "C": ""}},
		},
		{
			name:     "repeated header names are suffixed",
			input:    "Period\tReserve\tReserve\n1\t10\t20\n",
			wantCols: []string{"Period", "Reserve", "Reserve.1"},
			wantRows: []alfa.Row{{"Period": "1", "Reserve": "10", "Reserve.1": "20"}},
		},
		{
			name:     "suffix skips names already in the header",
			input:    "A\tA.1\tA\tA\n1\t2\t3\t4\n",
			wantCols: []string{"A", "A.1", "A.2", "A.3"},
			wantRows: []alfa.Row{{"A": "1", "A.1": "2", "A.2": "3", "A.3": "4"}},
		},
		{
			name:     "crlf line endings",
			input:    "A\tB\r\n1\t2\r\n",
			wantCols: []string{"A", "B"},
			wantRows: []alfa.Row{{"A": "1", "B": "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := alfa.ParseTable(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCols, table.Columns)
			assert.Equal(t, tt.wantRows, table.Rows)
			assert.Equal(t, len(tt.wantRows), table.Len())
		})
	}
}

func TestParseTable_LongRow(t *testing.T) {
	_, err := alfa.ParseTable(strings.NewReader("A\tB\n1\t2\n1\t2\t3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestReadTable_Missing(t *testing.T) {
	_, err := alfa.ReadTable(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open output")
}
