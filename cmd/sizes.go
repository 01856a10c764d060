package cmd

import (
	"fmt"

	"code.cloudfoundry.org/bytefmt"
)

// parseSize converts a human-readable size ("512KiB", "30M", "1.5GB") to
// bytes, labelling errors with the flag they came from.
func parseSize(label, value string) (int64, error) {
	n, err := bytefmt.ToBytes(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", label, value, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", label, value)
	}
	return int64(n), nil
}

// sizeConfig is the parsed byte-size configuration shared by generate and
// plan.
type sizeConfig struct {
	Total   int64
	MinSize int64
	MaxSize int64
}

func parseSizes(total, minSize, maxSize string) (sizeConfig, error) {
	var cfg sizeConfig
	var err error
	if cfg.Total, err = parseSize("total size", total); err != nil {
		return cfg, err
	}
	if cfg.MinSize, err = parseSize("minimum file size", minSize); err != nil {
		return cfg, err
	}
	if cfg.MaxSize, err = parseSize("maximum file size", maxSize); err != nil {
		return cfg, err
	}
	return cfg, nil
}
