package dataprep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/floats"

	"fraudprep/pkg/dataset"
)

func transactions(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromColumns(
		[]string{"Time", "V1", "Amount", "Class"},
		[][]float64{
			{0, 3600, 86400 + 7200, 172799},
			{0.5, -1.2, 0.3, 2.1},
			{0, 9, 99, 1.5},
			{0, 1, 0, 1},
		},
	)
	require.NoError(t, err)
	return ds
}

func TestCreateEngineeredFeatures(t *testing.T) {
	ds := transactions(t)

	out, err := CreateEngineeredFeatures(ds)
	require.NoError(t, err)

	assert.Equal(t, ds.Len(), out.Len())
	assert.Equal(t, []string{"Time", "V1", "Amount", "Class", ColHourOfDay, ColAmountLog}, out.Columns())

	hours, _ := out.Column(ColHourOfDay)
	assert.True(t, floats.EqualApprox(hours, []float64{0, 1, 2, 23.99972222222222}, 1e-9), "%v", hours)
	for _, h := range hours {
		assert.GreaterOrEqual(t, h, 0.0)
		assert.Less(t, h, 24.0)
	}

	logs, _ := out.Column(ColAmountLog)
	assert.True(t, floats.EqualApprox(logs, []float64{0, math.Log(10), math.Log(100), math.Log(2.5)}, 1e-12))

	// raw columns are retained unchanged
	amount, _ := out.Column("Amount")
	assert.Equal(t, []float64{0, 9, 99, 1.5}, amount)

	// input is not mutated
	assert.Equal(t, []string{"Time", "V1", "Amount", "Class"}, ds.Columns())
}

func TestCreateEngineeredFeaturesIdempotent(t *testing.T) {
	once, err := CreateEngineeredFeatures(transactions(t))
	require.NoError(t, err)
	twice, err := CreateEngineeredFeatures(once)
	require.NoError(t, err)

	assert.Equal(t, once.Columns(), twice.Columns())
	assert.Equal(t, once.Matrix(), twice.Matrix())
}

func TestCreateEngineeredFeaturesMissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		missing string
	}{
		{"no time", []string{"Amount", "Class"}, "Time"},
		{"no amount", []string{"Time", "Class"}, "Amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([][]float64, len(tt.columns))
			for i := range values {
				values[i] = []float64{1, 2}
			}
			ds, err := dataset.FromColumns(tt.columns, values)
			require.NoError(t, err)

			_, err = CreateEngineeredFeatures(ds)
			var se *dataset.SchemaError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.missing, se.Column)
		})
	}
}

func TestWithTimeDelta(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fe := NewFeatureEngineer(WithTimeDelta(), WithLogger(zap.New(core)))

	out, err := fe.CreateEngineeredFeatures(transactions(t))
	require.NoError(t, err)

	deltas, err := out.Column(ColTimeDelta)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 3600, 86400 + 3600, 172799 - 93600}, deltas)
	assert.Equal(t, 1, logs.FilterMessage("engineered features").Len())
}

func TestNegativeAmountIsNotRejected(t *testing.T) {
	out := LogTransform([]float64{-0.5, -1, -2})
	assert.Less(t, out[0], 0.0)
	assert.True(t, math.IsInf(out[1], -1))
	assert.True(t, math.IsNaN(out[2]))
}

func TestHourOfDayWrapsNegativeTime(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"one hour before start", -3600, 23},
		{"one day before start", -86400, 0},
		{"half an hour before start", -1800, 23.5},
		{"two days and one hour before", -2*86400 - 3600, 23},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HourOfDay([]float64{tt.in})[0]
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 24.0)
		})
	}
}
