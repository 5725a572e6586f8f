package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/rampcon/internal/binding"
	"github.com/specialistvlad/rampcon/internal/colormodel"
	"github.com/specialistvlad/rampcon/internal/expr"
	"github.com/specialistvlad/rampcon/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hsvTable(t *testing.T, h, s, v string) *binding.Table {
	t.Helper()
	table := binding.SeedFromModel(colormodel.HSV())
	require.NoError(t, table.SetExpression("h", h))
	require.NoError(t, table.SetExpression("s", s))
	require.NoError(t, table.SetExpression("v", v))
	return table
}

func TestRenderRange_LengthAndOrder(t *testing.T) {
	model := colormodel.HSV()
	table := hsvTable(t, "x * 10", "1", "1")

	res, err := render.RenderRange(model, table, 3)
	require.NoError(t, err)

	require.Len(t, res.Colors, 3)
	assert.Empty(t, res.Fallbacks)
	assert.Equal(t, "hsv", res.Model)
	for n, hue := range []float64{0, 10, 20} {
		want, err := model.ConvertOne([]float64{hue, 1, 1})
		require.NoError(t, err)
		assert.Equal(t, want, res.Colors[n], "index %d", n)
	}
}

func TestRenderRange_ZeroCount(t *testing.T) {
	res, err := render.RenderRange(colormodel.HSV(), hsvTable(t, "x", "1", "1"), 0)
	require.NoError(t, err)
	assert.Empty(t, res.Colors)
	assert.Empty(t, res.Fallbacks)
}

func TestRenderRange_ConstantRoundTrip(t *testing.T) {
	model := colormodel.HSV()
	table := hsvTable(t, "5", "5", "5")

	res, err := render.RenderRange(model, table, 4)
	require.NoError(t, err)

	want, err := model.ConvertOne([]float64{5, 5, 5})
	require.NoError(t, err)
	for n, c := range res.Colors {
		assert.Equal(t, want, c, "index %d", n)
	}
}

func TestRenderRange_MalformedRowFallsBackToDefault(t *testing.T) {
	// --- Arrange ---
	model := colormodel.HSV()
	table := hsvTable(t, "x * 10", "1 +", "1")

	// --- Act ---
	res, err := render.RenderRange(model, table, 5)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, res.Colors, 5)
	require.Len(t, res.Fallbacks, 5, "one fallback per index")

	for n := range res.Colors {
		want, err := model.ConvertOne([]float64{float64(n) * 10, 0, 1})
		require.NoError(t, err)
		assert.Equal(t, want, res.Colors[n])

		f := res.Fallbacks[n]
		assert.Equal(t, uint32(n), f.Index)
		assert.Equal(t, "s", f.Row)
		var parseErr *expr.ParseError
		assert.ErrorAs(t, f.Err, &parseErr)
	}
	assert.Len(t, res.FallbacksAt(2), 1)
}

func TestRenderRange_AuxRows(t *testing.T) {
	model := colormodel.HSV()
	table := hsvTable(t, "angle", "1", "1")
	require.NoError(t, table.AddAux("angle", "x * step"))
	require.NoError(t, table.AddAux("step", "360 / 4"))

	res, err := render.RenderRange(model, table, 4)
	require.NoError(t, err)

	for n, hue := range []float64{0, 90, 180, 270} {
		want, _ := model.ConvertOne([]float64{hue, 1, 1})
		assert.Equal(t, want, res.Colors[n])
	}
}

func TestRenderRange_DivisionByZeroIsPerIndex(t *testing.T) {
	model := colormodel.RGB()
	table := binding.SeedFromModel(model)
	require.NoError(t, table.SetExpression("r", "1 / x"))
	require.NoError(t, table.SetExpression("g", "0"))
	require.NoError(t, table.SetExpression("b", "0"))

	res, err := render.RenderRange(model, table, 2)
	require.NoError(t, err)

	require.Len(t, res.Fallbacks, 1)
	assert.Equal(t, uint32(0), res.Fallbacks[0].Index)
	assert.Equal(t, "r", res.Fallbacks[0].Row)
	assert.Equal(t, "#000000ff", res.Colors[0].Hex())
	assert.Equal(t, "#ff0000ff", res.Colors[1].Hex())
}

func TestRenderRange_IsPure(t *testing.T) {
	table := hsvTable(t, "x * 37", "0.5 + x / 40", "1 - x / 30")

	first, err := render.RenderRange(colormodel.HSV(), table, 16)
	require.NoError(t, err)
	second, err := render.RenderRange(colormodel.HSV(), table, 16)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderRange_ModelMismatch(t *testing.T) {
	table := binding.SeedFromModel(colormodel.HSL())

	_, err := render.RenderRange(colormodel.HSV(), table, 1)
	assert.ErrorIs(t, err, render.ErrModelMismatch)
}

func TestRenderer_MatchesSequential(t *testing.T) {
	// --- Arrange ---
	model := colormodel.OkLch()
	table := binding.SeedFromModel(model)
	require.NoError(t, table.AddAux("t", "x / 63"))
	require.NoError(t, table.SetExpression("l", "0.4 + t / 2"))
	require.NoError(t, table.SetExpression("c", "0.01 / (x % 3)"))
	require.NoError(t, table.SetExpression("h", "x * 5.625"))

	sequential, err := render.RenderRange(model, table, 64)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 3, 8, 100} {
		// --- Act ---
		parallel, err := render.New(workers).Render(context.Background(), model, table, 64)

		// --- Assert ---
		require.NoError(t, err)
		if diff := cmp.Diff(sequential.Colors, parallel.Colors); diff != "" {
			t.Errorf("workers=%d colors mismatch (-sequential +parallel):\n%s", workers, diff)
		}
		require.Len(t, parallel.Fallbacks, len(sequential.Fallbacks))
		for i := range sequential.Fallbacks {
			assert.Equal(t, sequential.Fallbacks[i].Index, parallel.Fallbacks[i].Index)
			assert.Equal(t, sequential.Fallbacks[i].Row, parallel.Fallbacks[i].Row)
		}
	}
}

func TestRenderer_ZeroCount(t *testing.T) {
	res, err := render.New(4).Render(context.Background(), colormodel.HSV(), hsvTable(t, "x", "1", "1"), 0)
	require.NoError(t, err)
	assert.Empty(t, res.Colors)
}

func TestRenderer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := render.New(2).Render(ctx, colormodel.HSV(), hsvTable(t, "x", "1", "1"), 1000)

	assert.Nil(t, res)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRenderer_SnapshotsTable(t *testing.T) {
	model := colormodel.HSV()
	table := hsvTable(t, "120", "1", "1")

	res, err := render.New(2).Render(context.Background(), model, table, 2)
	require.NoError(t, err)
	require.NoError(t, table.SetExpression("h", "240"))

	want, _ := model.ConvertOne([]float64{120, 1, 1})
	assert.Equal(t, []colormodel.RGBA{want, want}, res.Colors)
}

func TestNew_DefaultsWorkers(t *testing.T) {
	assert.Positive(t, render.New(0).Workers())
	assert.Equal(t, 3, render.New(3).Workers())
}
