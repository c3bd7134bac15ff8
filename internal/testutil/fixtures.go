package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ModelDir is a temporary model directory populated file by file.
type ModelDir struct {
	t    testing.TB
	Dir  string
	Name string
}

// NewModelDir creates a temporary directory holding <name>.ain2.
func NewModelDir(t testing.TB, name string) *ModelDir {
	t.Helper()
	m := &ModelDir{t: t, Dir: t.TempDir(), Name: name}
	m.WriteFile(name+".ain2", "")
	return m
}

// ModelPath returns the path of the model file.
func (m *ModelDir) ModelPath() string {
	return filepath.Join(m.Dir, m.Name+".ain2")
}

// Path joins name onto the directory.
func (m *ModelDir) Path(name string) string {
	return filepath.Join(m.Dir, name)
}

// WriteFile creates or replaces a file in the directory.
func (m *ModelDir) WriteFile(name, content string) string {
	m.t.Helper()
	path := m.Path(name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		m.t.Fatalf("failed to create %s: %v", name, err)
	}
	return path
}

// Remove deletes a file from the directory.
func (m *ModelDir) Remove(name string) {
	m.t.Helper()
	if err := os.Remove(m.Path(name)); err != nil {
		m.t.Fatalf("failed to remove %s: %v", name, err)
	}
}

// AddTable creates an empty table file.
func (m *ModelDir) AddTable(name string) {
	m.t.Helper()
	m.WriteFile(name, "")
}

// AddRun writes the metadata sidecar for run id.
func (m *ModelDir) AddRun(id, metadataXML string) {
	m.t.Helper()
	m.WriteFile(fmt.Sprintf("%s.Run.%s.Metadata.xml", m.Name, id), metadataXML)
}

// AddOutput writes an output file of the given kind (Subtotal or Total).
func (m *ModelDir) AddOutput(id, kind, content string) {
	m.t.Helper()
	m.WriteFile(fmt.Sprintf("%s.Run.%s.%s.txt", m.Name, id, kind), content)
}

// AddLog writes a run log file.
func (m *ModelDir) AddLog(id, logName, content string) {
	m.t.Helper()
	m.WriteFile(fmt.Sprintf("%s.Run.%s.%s.log", m.Name, id, logName), content)
}

// MetadataXML builds a sidecar document. Each item is either "Type=value"
// or "Type/Key=value".
func MetadataXML(items ...string) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<RunMetadata>\n")
	for _, item := range items {
		lhs, value, _ := strings.Cut(item, "=")
		typ, key, nested := strings.Cut(lhs, "/")
		if nested {
			fmt.Fprintf(&b, "  <Item Type=%q Key=%q>%s</Item>\n", typ, key, value)
		} else {
			fmt.Fprintf(&b, "  <Item Type=%q>%s</Item>\n", typ, value)
		}
	}
	b.WriteString("</RunMetadata>\n")
	return b.String()
}

// TSV joins rows of cells into tab-delimited text.
func TSV(rows ...[]string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}

// SetupTestModel creates TestModel.ain2 with two tables and two runs.
// Run 001 has a subtotal output and a log; run 002 has a total output only.
func SetupTestModel(t testing.TB) *ModelDir {
	t.Helper()
	m := NewModelDir(t, "TestModel")
	m.AddTable("TableFile01.xlsx.atB2X")
	m.AddTable("Mortality.atb2x")

	m.AddRun("001", MetadataXML(
		"ProjectionId=Proj.Base.001",
		"Description=Base scenario",
		"ValuationDate=2024-12-31",
		"Scenario/Rates=Base",
		"Scenario/Equity=Flat",
	))
	m.AddOutput("001", "Subtotal", TSV(
		[]string{"Period", "Reserve", "Premium"},
		[]string{"1", "100.5", "20"},
		[]string{"2", "98.25", "20"},
		[]string{"3", "96", "19.5"},
	))
	m.AddLog("001", "Calc", "calculation finished\n")

	m.AddRun("002", MetadataXML(
		"ProjectionId=Proj.Shock.002",
		"Description=Rate shock",
	))
	m.AddOutput("002", "Total", TSV(
		[]string{"Period", "Reserve"},
		[]string{"1", "110"},
	))
	return m
}
