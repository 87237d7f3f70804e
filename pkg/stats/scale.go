package stats

import (
	"errors"
	"fmt"

	"fraudprep/pkg/dataset"
)

// ErrNotFitted is returned by Transform before Fit has succeeded.
var ErrNotFitted = errors.New("scaler is not fitted")

// StandardScaler standardizes named columns to zero mean and unit variance
// using the population standard deviation observed at Fit time.
type StandardScaler struct {
	Columns []string
	Mean    []float64
	Std     []float64
	fit     bool
}

func NewStandardScaler(columns ...string) *StandardScaler {
	return &StandardScaler{Columns: columns}
}

// Fitted reports whether Fit has been called successfully.
func (s *StandardScaler) Fitted() bool { return s.fit }

// Fit records per-column mean and std from ds. A constant column gets std 1
// so it maps to zero instead of dividing by zero.
func (s *StandardScaler) Fit(ds *dataset.Dataset) error {
	if ds.Len() == 0 {
		return fmt.Errorf("fit scaler: %w", dataset.ErrEmptyDataset)
	}
	if err := ds.Require("fit scaler", s.Columns...); err != nil {
		return err
	}
	means := make([]float64, len(s.Columns))
	stds := make([]float64, len(s.Columns))
	for j, name := range s.Columns {
		col, err := ds.Column(name)
		if err != nil {
			return err
		}
		means[j], stds[j] = MeanStd(col)
		if stds[j] == 0 {
			stds[j] = 1
		}
	}
	s.Mean, s.Std = means, stds
	s.fit = true
	return nil
}

// Transform returns a copy of ds with the scaler's columns standardized.
// ds itself is left untouched.
func (s *StandardScaler) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if !s.fit {
		return nil, ErrNotFitted
	}
	if err := ds.Require("transform", s.Columns...); err != nil {
		return nil, err
	}
	out := ds.Clone()
	for j, name := range s.Columns {
		col, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		for i := range col {
			col[i] = (col[i] - s.Mean[j]) / s.Std[j]
		}
		if err := out.Set(name, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *StandardScaler) FitTransform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if err := s.Fit(ds); err != nil {
		return nil, err
	}
	return s.Transform(ds)
}
