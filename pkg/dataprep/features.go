package dataprep

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"fraudprep/pkg/dataset"
)

// Column names read and written by the feature engineer.
const (
	ColTime      = "Time"
	ColAmount    = "Amount"
	ColHourOfDay = "hour_of_day"
	ColAmountLog = "Amount_log"
	ColTimeDelta = "time_diff"
)

const (
	secondsPerDay  = 24 * 60 * 60
	secondsPerHour = 60 * 60
)

// FeatureEngineer derives columns from the raw Time and Amount fields.
type FeatureEngineer struct {
	logger    *zap.Logger
	timeDelta bool
}

// Option configures a FeatureEngineer.
type Option func(*FeatureEngineer)

func WithLogger(logger *zap.Logger) Option {
	return func(f *FeatureEngineer) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithTimeDelta also emits time_diff, the gap in seconds to the previous
// row in input order (0 for the first row).
func WithTimeDelta() Option {
	return func(f *FeatureEngineer) { f.timeDelta = true }
}

func NewFeatureEngineer(opts ...Option) *FeatureEngineer {
	f := &FeatureEngineer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateEngineeredFeatures returns a copy of ds with hour_of_day and
// Amount_log added. Time and Amount are kept. Running it on an already
// engineered dataset overwrites the derived columns with the same values.
func (f *FeatureEngineer) CreateEngineeredFeatures(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if err := ds.Require("create engineered features", ColTime, ColAmount); err != nil {
		return nil, err
	}
	out := ds.Clone()

	tm, err := out.Column(ColTime)
	if err != nil {
		return nil, err
	}
	amount, err := out.Column(ColAmount)
	if err != nil {
		return nil, err
	}

	if err := out.Set(ColHourOfDay, HourOfDay(tm)); err != nil {
		return nil, fmt.Errorf("set %s: %w", ColHourOfDay, err)
	}
	if err := out.Set(ColAmountLog, LogTransform(amount)); err != nil {
		return nil, fmt.Errorf("set %s: %w", ColAmountLog, err)
	}
	if f.timeDelta {
		if err := out.Set(ColTimeDelta, TimeDelta(tm)); err != nil {
			return nil, fmt.Errorf("set %s: %w", ColTimeDelta, err)
		}
	}

	f.logger.Debug("engineered features",
		zap.Int("rows", out.Len()),
		zap.Strings("columns", out.Columns()),
	)
	return out, nil
}

// CreateEngineeredFeatures runs a default FeatureEngineer over ds.
func CreateEngineeredFeatures(ds *dataset.Dataset) (*dataset.Dataset, error) {
	return NewFeatureEngineer().CreateEngineeredFeatures(ds)
}

// HourOfDay maps elapsed seconds to the hour within the day, in [0, 24).
// Negative times wrap into the previous day, so -3600 is hour 23.
func HourOfDay(t []float64) []float64 {
	out := make([]float64, len(t))
	for i, v := range t {
		r := math.Mod(v, secondsPerDay)
		if r < 0 {
			r += secondsPerDay
		}
		out[i] = r / secondsPerHour
	}
	return out
}

// LogTransform applies log(x+1) to each value.
// Values below -1 give NaN and -1 gives -Inf; amounts are not validated.
func LogTransform(X []float64) []float64 {
	out := make([]float64, len(X))
	for i, v := range X {
		out[i] = math.Log1p(v)
	}
	return out
}

// TimeDelta returns the difference to the previous element, 0 for the first.
func TimeDelta(t []float64) []float64 {
	out := make([]float64, len(t))
	for i := 1; i < len(t); i++ {
		out[i] = t[i] - t[i-1]
	}
	return out
}
