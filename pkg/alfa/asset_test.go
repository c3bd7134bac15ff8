package alfa_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lathaniel/alfa/internal/testutil"
	"github.com/lathaniel/alfa/pkg/alfa"
)

func TestAssetInput(t *testing.T) {
	fields := []string{"CUSIP", "Par", "Coupon"}
	bond := alfa.NewAssetInput("Bond", fields)
	fields[0] = "changed"

	assert.Equal(t, "Bond", bond.Name())
	assert.Equal(t, []string{"CUSIP", "Par", "Coupon"}, bond.Fields())
	assert.Equal(t, ".", bond.OutputDest())
	assert.Equal(t, "Corp_Bond.aia2", bond.SegmentFile("Corp"))

	dir := t.TempDir()
	require.NoError(t, bond.SetOutputDest(dir))
	assert.Equal(t, dir, bond.OutputDest())
	assert.Equal(t, filepath.Join(dir, "Govt_Bond.aia2"), bond.SegmentFile("Govt"))
}

func TestAssetInput_SetOutputDestRejects(t *testing.T) {
	m := testutil.NewModelDir(t, "TestModel")
	bond := alfa.NewAssetInput("Bond", nil)

	err := bond.SetOutputDest(m.Path("missing"))
	assert.ErrorIs(t, err, alfa.ErrNotADirectory)

	err = bond.SetOutputDest(m.ModelPath())
	assert.ErrorIs(t, err, alfa.ErrNotADirectory)

	assert.Equal(t, ".", bond.OutputDest())
}
