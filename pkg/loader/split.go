package loader

import (
	"fmt"
	"math"

	"fraudprep/pkg/dataset"
)

// TrainSize returns floor(trainRatio * n).
func TrainSize(n int, trainRatio float64) int {
	return int(math.Floor(trainRatio * float64(n)))
}

// TimeOrderedSplit sorts ds by timeCol ascending (stable) and returns the
// first floor(trainRatio*n) rows as train and the rest as test. Rows are
// never shuffled, so every train row is no later than every test row.
func TimeOrderedSplit(ds *dataset.Dataset, timeCol string, trainRatio float64) (train, test *dataset.Dataset, err error) {
	if trainRatio <= 0 || trainRatio >= 1 {
		return nil, nil, fmt.Errorf("train ratio %v must be in (0, 1)", trainRatio)
	}
	if ds.Len() == 0 {
		return nil, nil, fmt.Errorf("split: %w", dataset.ErrEmptyDataset)
	}
	sorted, err := ds.SortBy(timeCol)
	if err != nil {
		return nil, nil, err
	}
	n := sorted.Len()
	k := TrainSize(n, trainRatio)
	if train, err = sorted.Slice(0, k); err != nil {
		return nil, nil, err
	}
	if test, err = sorted.Slice(k, n); err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// SeparateLabels extracts labelCol as the label vector and returns the
// remaining columns as features. labelCol must exist; each name in drop is
// removed only if present.
func SeparateLabels(part *dataset.Dataset, labelCol string, drop ...string) (*dataset.Dataset, []float64, error) {
	y, err := part.Column(labelCol)
	if err != nil {
		return nil, nil, err
	}
	X := part.Clone()
	if err := X.Drop(labelCol); err != nil {
		return nil, nil, err
	}
	for _, name := range drop {
		X.DropIfPresent(name)
	}
	return X, y, nil
}
