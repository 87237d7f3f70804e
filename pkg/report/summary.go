package report

import (
	"fmt"
	"io"

	"fraudprep/pkg/dataset"
	"fraudprep/pkg/pipeline"
	"fraudprep/pkg/stats"
)

// PartitionSummary describes one side of a split.
type PartitionSummary struct {
	Name      string
	Rows      int
	Frauds    int
	FraudRate float64
}

// ColumnSummary holds basic statistics of one feature column.
type ColumnSummary struct {
	Name   string
	Mean   float64
	Std    float64
	Min    float64
	Median float64
	Max    float64
}

// Summary is the textual report of a preprocessing run.
type Summary struct {
	Train    PartitionSummary
	Test     PartitionSummary
	Amount   pipeline.AmountMode
	Features []string
	Scaled   []ColumnSummary
}

// Summarize collects partition sizes, fraud rates and statistics of the
// scaled amount column in the training partition.
func Summarize(split *pipeline.Split) (Summary, error) {
	s := Summary{
		Train:    partition("train", split.YTrain),
		Test:     partition("test", split.YTest),
		Amount:   split.Mode,
		Features: split.XTrain.Columns(),
	}
	col, err := describe(split.XTrain, split.Mode.Column())
	if err != nil {
		return Summary{}, err
	}
	s.Scaled = append(s.Scaled, col)
	return s, nil
}

// Write renders the summary as plain text.
func (s Summary) Write(w io.Writer) error {
	for _, p := range []PartitionSummary{s.Train, s.Test} {
		if _, err := fmt.Fprintf(w, "%-6s rows=%-8d frauds=%-6d fraud_rate=%.4f%%\n", p.Name, p.Rows, p.Frauds, p.FraudRate*100); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "amount=%s features=%d\n", s.Amount, len(s.Features)); err != nil {
		return err
	}
	for _, c := range s.Scaled {
		if _, err := fmt.Fprintf(w, "%-12s mean=%.4f std=%.4f min=%.4f median=%.4f max=%.4f\n",
			c.Name, c.Mean, c.Std, c.Min, c.Median, c.Max); err != nil {
			return err
		}
	}
	return nil
}

func partition(name string, y []float64) PartitionSummary {
	frauds := 0
	for _, v := range y {
		if v == 1 {
			frauds++
		}
	}
	return PartitionSummary{
		Name:      name,
		Rows:      len(y),
		Frauds:    frauds,
		FraudRate: stats.Mean(y),
	}
}

func describe(ds *dataset.Dataset, name string) (ColumnSummary, error) {
	col, err := ds.Column(name)
	if err != nil {
		return ColumnSummary{}, err
	}
	mean, std := stats.MeanStd(col)
	lo, hi := stats.MinMax(col)
	return ColumnSummary{
		Name:   name,
		Mean:   mean,
		Std:    std,
		Min:    lo,
		Median: stats.Median(col),
		Max:    hi,
	}, nil
}
