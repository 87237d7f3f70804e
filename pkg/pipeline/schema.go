package pipeline

import (
	"fmt"

	"fraudprep/pkg/dataprep"
)

// ColClass holds the binary label: 0 legitimate, 1 fraud.
const ColClass = "Class"

// AmountMode records which amount representation the working dataset carries.
type AmountMode int

const (
	RawAmount AmountMode = iota
	LogAmount
)

func (m AmountMode) String() string {
	switch m {
	case RawAmount:
		return "raw"
	case LogAmount:
		return "log"
	default:
		return "unknown"
	}
}

// Column returns the amount column used in this mode.
func (m AmountMode) Column() string {
	if m == LogAmount {
		return dataprep.ColAmountLog
	}
	return dataprep.ColAmount
}

// ScaleTargets lists the columns standardized in this mode.
func (m AmountMode) ScaleTargets() []string {
	return []string{dataprep.ColTime, m.Column()}
}

// ScalingMode selects the population the scaler is fitted on.
type ScalingMode int

const (
	// ScaleTrainOnly fits on the training partition after the split and
	// applies the same statistics to both partitions.
	ScaleTrainOnly ScalingMode = iota
	// ScaleFullDataset fits on every row before the split. Test rows then
	// contribute to the training statistics.
	ScaleFullDataset
)

func (m ScalingMode) String() string {
	switch m {
	case ScaleTrainOnly:
		return "train"
	case ScaleFullDataset:
		return "full"
	default:
		return "unknown"
	}
}

// ParseScalingMode accepts "train" or "full".
func ParseScalingMode(s string) (ScalingMode, error) {
	switch s {
	case "train", "":
		return ScaleTrainOnly, nil
	case "full":
		return ScaleFullDataset, nil
	}
	return 0, fmt.Errorf("unknown scaling mode %q (want train or full)", s)
}
