package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Dataset {
	t.Helper()
	d, err := FromColumns(
		[]string{"Time", "V1", "Class"},
		[][]float64{{3, 1, 2, 1}, {0.3, 0.1, 0.2, 0.15}, {1, 0, 0, 1}},
	)
	require.NoError(t, err)
	return d
}

func TestFromColumns(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		d := sample(t)
		assert.Equal(t, 4, d.Len())
		assert.Equal(t, []string{"Time", "V1", "Class"}, d.Columns())
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := FromColumns([]string{"a", "b"}, [][]float64{{1, 2}, {1}})
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("name count mismatch", func(t *testing.T) {
		_, err := FromColumns([]string{"a"}, [][]float64{{1}, {2}})
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := FromColumns([]string{"a", "a"}, [][]float64{{1}, {2}})
		assert.Error(t, err)
	})

	t.Run("zero rows", func(t *testing.T) {
		d, err := FromColumns([]string{"a"}, [][]float64{{}})
		require.NoError(t, err)
		assert.Equal(t, 0, d.Len())
		assert.True(t, d.Has("a"))
	})
}

func TestSetOverwritesInPlace(t *testing.T) {
	d := sample(t)
	require.NoError(t, d.Set("V1", []float64{9, 9, 9, 9}))
	assert.Equal(t, []string{"Time", "V1", "Class"}, d.Columns())

	v1, err := d.Column("V1")
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 9, 9, 9}, v1)

	require.NoError(t, d.Set("extra", []float64{1, 2, 3, 4}))
	assert.Equal(t, []string{"Time", "V1", "Class", "extra"}, d.Columns())

	assert.ErrorIs(t, d.Set("short", []float64{1}), ErrLengthMismatch)
}

func TestColumnReturnsCopy(t *testing.T) {
	d := sample(t)
	col, err := d.Column("Time")
	require.NoError(t, err)
	col[0] = 100

	again, err := d.Column("Time")
	require.NoError(t, err)
	assert.Equal(t, 3.0, again[0])
}

func TestDrop(t *testing.T) {
	d := sample(t)

	require.NoError(t, d.Drop("V1"))
	assert.Equal(t, []string{"Time", "Class"}, d.Columns())

	err := d.Drop("V1")
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "V1", se.Column)
	assert.Equal(t, "drop", se.Op)
}

func TestDropIfPresent(t *testing.T) {
	d := sample(t)
	assert.True(t, d.DropIfPresent("Time"))
	assert.False(t, d.DropIfPresent("Time"))
	assert.Equal(t, []string{"V1", "Class"}, d.Columns())
	assert.Equal(t, 4, d.Len())
}

func TestCloneIsIndependent(t *testing.T) {
	d := sample(t)
	c := d.Clone()

	require.NoError(t, c.Set("Time", []float64{0, 0, 0, 0}))
	require.NoError(t, c.Drop("V1"))

	assert.Equal(t, []string{"Time", "V1", "Class"}, d.Columns())
	tm, err := d.Column("Time")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2, 1}, tm)
}

func TestSortByIsStable(t *testing.T) {
	d := sample(t)
	sorted, err := d.SortBy("Time")
	require.NoError(t, err)

	tm, _ := sorted.Column("Time")
	v1, _ := sorted.Column("V1")
	assert.Equal(t, []float64{1, 1, 2, 3}, tm)
	// rows 1 and 3 share Time=1 and keep input order
	assert.Equal(t, []float64{0.1, 0.15, 0.2, 0.3}, v1)

	orig, _ := d.Column("Time")
	assert.Equal(t, []float64{3, 1, 2, 1}, orig)

	_, err = d.SortBy("missing")
	assert.True(t, IsSchemaError(err))
}

func TestSlice(t *testing.T) {
	d := sample(t)

	head, err := d.Slice(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, head.Len())

	tail, err := d.Slice(3, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.15, 1}, tail.Row(0))

	empty, err := d.Slice(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, d.Columns(), empty.Columns())

	_, err = d.Slice(2, 5)
	assert.Error(t, err)
}

func TestMatrix(t *testing.T) {
	d := sample(t)
	m := d.Matrix()
	require.Len(t, m, 4)
	assert.Equal(t, []float64{3, 0.3, 1}, m[0])
}

func TestRequire(t *testing.T) {
	d := sample(t)
	assert.NoError(t, d.Require("check", "Time", "Class"))

	err := d.Require("check", "Time", "Amount")
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Amount", se.Column)
	assert.Contains(t, err.Error(), `missing required column "Amount"`)
}

func TestZeroValueDataset(t *testing.T) {
	var d Dataset
	assert.False(t, d.Has("Time"))
	require.NoError(t, d.Set("Time", []float64{1, 2}))
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"Time"}, d.Columns())
}

func TestSortByPutsNaNLast(t *testing.T) {
	nan := math.NaN()
	d, err := FromColumns(
		[]string{"Time", "id"},
		[][]float64{{3, nan, 1, nan, 2}, {0, 1, 2, 3, 4}},
	)
	require.NoError(t, err)

	sorted, err := d.SortBy("Time")
	require.NoError(t, err)

	ids, _ := sorted.Column("id")
	assert.Equal(t, []float64{2, 4, 0, 1, 3}, ids)
	tm, _ := sorted.Column("Time")
	assert.Equal(t, []float64{1, 2, 3}, tm[:3])
	assert.True(t, math.IsNaN(tm[3]))
	assert.True(t, math.IsNaN(tm[4]))
}

func TestSchemaErrorUnexpected(t *testing.T) {
	err := &SchemaError{Op: "scale", Column: "Amount_log", Unexpected: true}
	assert.Equal(t, `scale: unexpected column "Amount_log"`, err.Error())
}
