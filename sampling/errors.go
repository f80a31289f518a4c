// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sampling

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

// Parameter names reported by InvalidConfigurationError
const (
	ParamConfidenceLevel = "confidence_level"
	ParamMarginOfError   = "margin_of_error"
	ParamPopulationSize  = "population_size"
	ParamAttritionRate   = "attrition_rate"
	ParamSampleSize      = "sample_size"
)

// InvalidConfigurationError reports which input violated its constraint
type InvalidConfigurationError struct {
	Param  string
	Reason string
	Value  float64
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s %s (got %s)",
		ErrInvalidConfiguration, e.Param, e.Reason,
		strconv.FormatFloat(e.Value, 'g', -1, 64))
}

func (e *InvalidConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}
