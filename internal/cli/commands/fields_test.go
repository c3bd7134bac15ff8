package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lathaniel/alfa/internal/cli/output"
	"github.com/lathaniel/alfa/internal/cli/testutil"
	"github.com/lathaniel/alfa/pkg/alfa"
)

const testFieldsYAML = `Bond:
  fields: [CUSIP, Par, Coupon]
  output_dest: out
Equity: [Ticker, Shares]
`

func TestRunFields(t *testing.T) {
	cfg, md := testutil.SetupTestProject(t)
	md.WriteFile("fields.yaml", testFieldsYAML)
	require.NoError(t, os.Mkdir(md.Path("out"), 0o755))

	t.Run("all assets as json", func(t *testing.T) {
		tr := testutil.NewTestRendererJSON()
		require.NoError(t, runFields(newTestContext(t, cfg, tr), "", ""))

		var got output.FieldsOutput
		decodeJSON(t, tr, &got)
		require.Len(t, got.Assets, 2)
		assert.Equal(t, "Bond", got.Assets[0].Name)
		assert.Equal(t, []string{"CUSIP", "Par", "Coupon"}, got.Assets[0].Fields)
		assert.Equal(t, md.Path("out"), got.Assets[0].OutputDest)
		assert.Equal(t, "Equity", got.Assets[1].Name)
		assert.Equal(t, ".", got.Assets[1].OutputDest)
	})

	t.Run("one asset with segment", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		require.NoError(t, runFields(newTestContext(t, cfg, tr), "Bond", "Corporate"))

		out := tr.Output()
		assert.Contains(t, out, "# Asset inputs (1)")
		assert.Contains(t, out, "- **Fields:** CUSIP, Par, Coupon")
		assert.Contains(t, out, "- **Segment file:** "+md.Path("out/Corporate_Bond."+alfa.AssetInputExt))
		assert.NotContains(t, out, "Equity")
	})

	t.Run("unknown asset", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		err := runFields(newTestContext(t, cfg, tr), "Mortgage", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Mortgage")
	})

	t.Run("segment without asset", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		err := runFields(newTestContext(t, cfg, tr), "", "Corporate")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--segment")
	})
}

func TestRunFields_MissingFile(t *testing.T) {
	cfg, _ := testutil.SetupTestProject(t)

	tr := testutil.NewTestRendererMarkdown()
	err := runFields(newTestContext(t, cfg, tr), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fields file not found")
}

func TestRunFields_BadOutputDest(t *testing.T) {
	cfg, md := testutil.SetupTestProject(t)
	md.WriteFile("fields.yaml", testFieldsYAML)

	tr := testutil.NewTestRendererJSON()
	err := runFields(newTestContext(t, cfg, tr), "Bond", "")
	require.ErrorIs(t, err, alfa.ErrNotADirectory)
}
