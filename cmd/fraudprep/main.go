package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"fraudprep/pkg/config"
	"fraudprep/pkg/data"
	"fraudprep/pkg/dataset"
	"fraudprep/pkg/logging"
	"fraudprep/pkg/pipeline"
	"fraudprep/pkg/report"
)

//
// ---------------------- CLI FLAGS ----------------------
//
// --input        : transactions CSV with Time, Amount, Class columns
// --out          : directory for X_train.csv, y_train.csv, X_test.csv, y_test.csv
// --engineer     : add hour_of_day and Amount_log, drop raw Amount
// --train-ratio  : share of earliest rows used for training
// --scaling      : "train" fits the scaler on the training rows only,
//                  "full" fits it on every row before the split
// --plot         : feature column to histogram per partition (<out>/<col>_split.png)
// --preview      : rows of X_train to print
//
// Every flag defaults to its FRAUDPREP_* environment variable.
//
// Example:
//   go run ./cmd/fraudprep --input creditcard.csv --out processed --engineer --plot Amount_log
//
// -------------------------------------------------------
//

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	flag.StringVar(&cfg.Input, "input", cfg.Input, "Path to input CSV file")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Output directory")
	flag.BoolVar(&cfg.Engineer, "engineer", cfg.Engineer, "Apply feature engineering")
	flag.Float64Var(&cfg.TrainRatio, "train-ratio", cfg.TrainRatio, "Training share of time-ordered rows")
	flag.StringVar(&cfg.Scaling, "scaling", cfg.Scaling, "Scaler fit population: train or full")
	flag.StringVar(&cfg.PlotColumn, "plot", cfg.PlotColumn, "Feature column to plot per partition")
	flag.IntVar(&cfg.PlotBins, "bins", cfg.PlotBins, "Histogram bins")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	flag.BoolVar(&cfg.LogDevelopment, "log-dev", cfg.LogDevelopment, "Human readable logs")
	previewRows := flag.Int("preview", 0, "Number of X_train rows to print")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger, *previewRows, os.Stdout); err != nil {
		logger.Fatal("preprocessing failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger, previewRows int, stdout io.Writer) error {
	ds, err := data.LoadCSV(cfg.Input)
	if err != nil {
		return err
	}
	logger.Info("loaded dataset",
		zap.String("path", cfg.Input),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Columns())),
	)

	opts, err := cfg.PipelineOptions()
	if err != nil {
		return err
	}
	opts.Logger = logger

	split, err := pipeline.PreprocessWithOptions(ds, opts)
	if err != nil {
		return err
	}

	if previewRows > 0 {
		previewData(stdout, split.XTrain, split.YTrain, previewRows)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}
	outputs := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"X_train.csv", func(w io.Writer) error { return data.WriteFeaturesCSV(w, split.XTrain) }},
		{"y_train.csv", func(w io.Writer) error { return data.WriteLabelsCSV(w, pipeline.ColClass, split.YTrain) }},
		{"X_test.csv", func(w io.Writer) error { return data.WriteFeaturesCSV(w, split.XTest) }},
		{"y_test.csv", func(w io.Writer) error { return data.WriteLabelsCSV(w, pipeline.ColClass, split.YTest) }},
	}
	for _, out := range outputs {
		path := filepath.Join(cfg.OutputDir, out.name)
		if err := data.SaveFile(path, out.write); err != nil {
			return err
		}
		logger.Debug("wrote artifact", zap.String("path", path))
	}

	summary, err := report.Summarize(split)
	if err != nil {
		return err
	}
	if err := summary.Write(stdout); err != nil {
		return err
	}

	if cfg.PlotColumn != "" {
		path := filepath.Join(cfg.OutputDir, cfg.PlotColumn+"_split.png")
		if err := report.PlotFeatureSplit(split, cfg.PlotColumn, cfg.PlotBins, path); err != nil {
			return fmt.Errorf("plot %s: %w", cfg.PlotColumn, err)
		}
		logger.Info("saved plot", zap.String("path", path))
	}
	return nil
}

// previewData prints the first n rows of X with their labels.
func previewData(w io.Writer, X *dataset.Dataset, y []float64, n int) {
	if n > X.Len() {
		n = X.Len()
	}

	for _, h := range X.Columns() {
		fmt.Fprintf(w, "%-15s", h)
	}
	fmt.Fprintf(w, "%-15s\n", pipeline.ColClass)

	for i := 0; i < n; i++ {
		for _, val := range X.Row(i) {
			fmt.Fprintf(w, "%-15.6f", val)
		}
		fmt.Fprintf(w, "%-15.0f\n", y[i])
	}
}
