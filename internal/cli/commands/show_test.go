package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lathaniel/alfa/internal/cli/output"
	"github.com/lathaniel/alfa/internal/cli/testutil"
	coretest "github.com/lathaniel/alfa/internal/testutil"
	"github.com/lathaniel/alfa/pkg/alfa"
)

func TestRunShow(t *testing.T) {
	cfg, md := testutil.SetupTestProject(t)

	t.Run("markdown groups nested attributes", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		require.NoError(t, runShow(newTestContext(t, cfg, tr), "001"))

		out := tr.Output()
		assert.Contains(t, out, "# Run 001")
		assert.Contains(t, out, "- **Description:** Base scenario")
		assert.Contains(t, out, "- **ValuationDate:** 2024-12-31")
		assert.Contains(t, out, "## Scenario")
		assert.Contains(t, out, "- **Equity:** Flat")
		assert.Contains(t, out, "- **Output:** "+md.Path("TestModel.Run.001.Subtotal.txt"))
		assert.NotContains(t, out, "File id")
		testutil.AssertValidMarkdown(t, out)
	})

	t.Run("json", func(t *testing.T) {
		tr := testutil.NewTestRendererJSON()
		require.NoError(t, runShow(newTestContext(t, cfg, tr), "002"))

		var got output.RunOutput
		decodeJSON(t, tr, &got)
		assert.Equal(t, "002", got.ID)
		assert.Equal(t, "Rate shock", got.Description)
		assert.Equal(t, md.Path("TestModel.Run.002.Total.txt"), got.OutputFile)
		v, ok := got.Metadata.Scalar("ProjectionId")
		assert.True(t, ok)
		assert.Equal(t, "Proj.Shock.002", v)
	})

	t.Run("projection id differs from file id", func(t *testing.T) {
		md.AddRun("007", coretest.MetadataXML("ProjectionId=Proj.Other.42"))

		tr := testutil.NewTestRendererMarkdown()
		require.NoError(t, runShow(newTestContext(t, cfg, tr), "007"))
		assert.Contains(t, tr.Output(), "# Run 42")
		assert.Contains(t, tr.Output(), "- **File id:** 007")
		assert.Contains(t, tr.Output(), "- **Output:** (none)")
	})

	t.Run("unknown run", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		err := runShow(newTestContext(t, cfg, tr), "999")
		require.ErrorIs(t, err, alfa.ErrUnknownRun)
	})
}

func TestRunOutput(t *testing.T) {
	cfg, _ := testutil.SetupTestProject(t)

	tests := []struct {
		name      string
		run       string
		limit     int
		wantRows  int
		wantTotal int
		truncated bool
	}{
		{name: "subtotal full", run: "001", limit: 0, wantRows: 3, wantTotal: 3},
		{name: "subtotal limited", run: "001", limit: 2, wantRows: 2, wantTotal: 3, truncated: true},
		{name: "limit above row count", run: "001", limit: 10, wantRows: 3, wantTotal: 3},
		{name: "total fallback", run: "002", limit: 0, wantRows: 1, wantTotal: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := testutil.NewTestRendererJSON()
			require.NoError(t, runOutput(newTestContext(t, cfg, tr), tt.run, tt.limit))

			var got output.TableOutput
			decodeJSON(t, tr, &got)
			assert.Len(t, got.Rows, tt.wantRows)
			assert.Equal(t, tt.wantTotal, got.TotalRows)
			assert.Equal(t, tt.truncated, got.Truncated)
		})
	}
}

func TestRunOutput_Markdown(t *testing.T) {
	cfg, _ := testutil.SetupTestProject(t)

	tr := testutil.NewTestRendererMarkdown()
	require.NoError(t, runOutput(newTestContext(t, cfg, tr), "001", 2))

	out := tr.Output()
	assert.Contains(t, out, "# Output of run 001")
	assert.Contains(t, out, "| Period | Reserve | Premium |")
	assert.Contains(t, out, "| 2 | 98.25 | 20 |")
	assert.NotContains(t, out, "| 3 | 96 | 19.5 |")
	assert.Contains(t, out, "Showing 2 of 3 rows")
}

func TestRunOutput_Missing(t *testing.T) {
	cfg, md := testutil.SetupTestProject(t)
	md.Remove("TestModel.Run.002.Total.txt")

	tr := testutil.NewTestRendererJSON()
	err := runOutput(newTestContext(t, cfg, tr), "002", 0)
	require.ErrorIs(t, err, alfa.ErrOutputNotFound)
}

func TestRunLogs(t *testing.T) {
	cfg, md := testutil.SetupTestProject(t)
	md.AddLog("001", "Errors", "")

	tr := testutil.NewTestRendererJSON()
	require.NoError(t, runLogs(newTestContext(t, cfg, tr), "001"))

	var got output.LogsOutput
	decodeJSON(t, tr, &got)
	assert.Equal(t, map[string]string{
		"Calc":   md.Path("TestModel.Run.001.Calc.log"),
		"Errors": md.Path("TestModel.Run.001.Errors.log"),
	}, got.Logs)

	tr = testutil.NewTestRendererMarkdown()
	require.NoError(t, runLogs(newTestContext(t, cfg, tr), "002"))
	assert.Contains(t, tr.Output(), "# Logs of run 002 (0)")
	assert.Contains(t, tr.Output(), "(0 rows)")
}
