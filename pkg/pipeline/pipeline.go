package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"fraudprep/pkg/dataprep"
	"fraudprep/pkg/dataset"
	"fraudprep/pkg/loader"
	"fraudprep/pkg/stats"
)

// DefaultTrainRatio is the share of the earliest rows used for training.
const DefaultTrainRatio = 0.8

// Options configures a Preprocessor.
type Options struct {
	ApplyFeatureEngineering bool
	TrainRatio              float64
	Scaling                 ScalingMode
	Logger                  *zap.Logger
}

// DefaultOptions returns the options used by Preprocess.
func DefaultOptions() Options {
	return Options{TrainRatio: DefaultTrainRatio, Scaling: ScaleTrainOnly}
}

// Split holds the four training artifacts plus the fitted scaler.
type Split struct {
	XTrain *dataset.Dataset
	YTrain []float64
	XTest  *dataset.Dataset
	YTest  []float64

	Mode   AmountMode
	Scaler *stats.StandardScaler
}

// Preprocessor turns a raw transaction dataset into time-ordered,
// standardized train and test partitions.
type Preprocessor struct {
	opts     Options
	engineer *dataprep.FeatureEngineer
	logger   *zap.Logger
}

func NewPreprocessor(opts Options) (*Preprocessor, error) {
	if opts.TrainRatio == 0 {
		opts.TrainRatio = DefaultTrainRatio
	}
	if opts.TrainRatio <= 0 || opts.TrainRatio >= 1 {
		return nil, fmt.Errorf("train ratio %v must be in (0, 1)", opts.TrainRatio)
	}
	if opts.Scaling != ScaleTrainOnly && opts.Scaling != ScaleFullDataset {
		return nil, fmt.Errorf("unknown scaling mode %d", opts.Scaling)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Preprocessor{
		opts:     opts,
		engineer: dataprep.NewFeatureEngineer(dataprep.WithLogger(logger)),
		logger:   logger,
	}, nil
}

// Preprocess runs the pipeline with default options. The scaler is fitted on
// the training partition, so an input whose training share rounds down to
// zero rows (a single row at the default ratio) fails with
// dataset.ErrEmptyDataset; use ScaleFullDataset to accept it.
func Preprocess(ds *dataset.Dataset, applyFeatureEngineering bool) (*Split, error) {
	opts := DefaultOptions()
	opts.ApplyFeatureEngineering = applyFeatureEngineering
	return PreprocessWithOptions(ds, opts)
}

func PreprocessWithOptions(ds *dataset.Dataset, opts Options) (*Split, error) {
	p, err := NewPreprocessor(opts)
	if err != nil {
		return nil, err
	}
	return p.Run(ds)
}

// Run executes engineering, scaling, the time-ordered split and label
// extraction. ds is never modified.
func (p *Preprocessor) Run(ds *dataset.Dataset) (*Split, error) {
	if err := ds.Require("preprocess", dataprep.ColTime, dataprep.ColAmount, ColClass); err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("preprocess: %w", dataset.ErrEmptyDataset)
	}

	work := ds.Clone()
	mode := RawAmount
	if p.opts.ApplyFeatureEngineering {
		p.logger.Info("applying feature engineering")
		engineered, err := p.engineer.CreateEngineeredFeatures(work)
		if err != nil {
			return nil, fmt.Errorf("feature engineering: %w", err)
		}
		// Amount_log carries the amount signal from here on.
		if err := engineered.Drop(dataprep.ColAmount); err != nil {
			return nil, err
		}
		work, mode = engineered, LogAmount
	}

	op := "scale " + mode.String() + " amount"
	targets := mode.ScaleTargets()
	if err := work.Require(op, targets...); err != nil {
		return nil, err
	}
	// Only engineering may introduce Amount_log; a raw run must not carry both.
	if mode == RawAmount && work.Has(dataprep.ColAmountLog) {
		return nil, &dataset.SchemaError{Op: op, Column: dataprep.ColAmountLog, Unexpected: true}
	}
	scaler := stats.NewStandardScaler(targets...)

	if p.opts.Scaling == ScaleFullDataset {
		scaled, err := scaler.FitTransform(work)
		if err != nil {
			return nil, fmt.Errorf("scale: %w", err)
		}
		work = scaled
	}

	train, test, err := loader.TimeOrderedSplit(work, dataprep.ColTime, p.opts.TrainRatio)
	if err != nil {
		return nil, err
	}

	if p.opts.Scaling == ScaleTrainOnly {
		if train.Len() == 0 {
			return nil, fmt.Errorf("training partition of %d rows is empty: %w", work.Len(), dataset.ErrEmptyDataset)
		}
		if err := scaler.Fit(train); err != nil {
			return nil, fmt.Errorf("scale: %w", err)
		}
		if train, err = scaler.Transform(train); err != nil {
			return nil, fmt.Errorf("scale train: %w", err)
		}
		if test, err = scaler.Transform(test); err != nil {
			return nil, fmt.Errorf("scale test: %w", err)
		}
	}

	xTrain, yTrain, err := loader.SeparateLabels(train, ColClass, dataprep.ColTime)
	if err != nil {
		return nil, err
	}
	xTest, yTest, err := loader.SeparateLabels(test, ColClass, dataprep.ColTime)
	if err != nil {
		return nil, err
	}

	p.logger.Info("split dataset",
		zap.Int("train_rows", xTrain.Len()),
		zap.Int("test_rows", xTest.Len()),
		zap.Stringer("amount", mode),
		zap.Stringer("scaling", p.opts.Scaling),
	)

	return &Split{
		XTrain: xTrain,
		YTrain: yTrain,
		XTest:  xTest,
		YTest:  yTest,
		Mode:   mode,
		Scaler: scaler,
	}, nil
}
