package audit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultThresholdMeters is the outlier distance threshold applied when none
// is configured (100 km).
const DefaultThresholdMeters = 100000

// Options are the request-scoped conversion parameters.
type Options struct {
	// RemoveOutliers excludes flagged records from the point and path
	// output. Flagged records still count toward TotalPoints and appear in
	// the outlier report.
	RemoveOutliers bool `yaml:"remove_outliers"`

	// ThresholdMeters is the distance from the median center beyond which a
	// record is flagged.
	ThresholdMeters float64 `yaml:"outlier_threshold_meters"`
}

// DefaultOptions returns the conversion defaults: outliers kept, 100 km
// threshold.
func DefaultOptions() Options {
	return Options{ThresholdMeters: DefaultThresholdMeters}
}

// LoadOptions loads conversion defaults from a YAML file. Omitted fields keep
// their defaults. Conversion parameters stay request-scoped; this only serves
// callers that want file-based defaults.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("options file not found: %s", path)
		}
		return nil, fmt.Errorf("reading options file: %w", err)
	}

	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parsing options YAML: %w", err)
	}
	if opts.ThresholdMeters <= 0 {
		return nil, fmt.Errorf("outlier_threshold_meters must be positive, got %v", opts.ThresholdMeters)
	}
	return &opts, nil
}
