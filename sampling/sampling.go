// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sampling

import (
	"math"
	"strconv"
)

// ConfidenceLevel is a supported confidence level in percent
type ConfidenceLevel int

const (
	Confidence90 ConfidenceLevel = 90
	Confidence95 ConfidenceLevel = 95
	Confidence99 ConfidenceLevel = 99
)

// Proportion is the assumed population proportion.
// 0.5 maximizes p(1-p), so the estimate is conservative.
const Proportion = 0.5

// MaxSampleSize is the largest sample size Compute and AdjustForAttrition
// will report. Below it float64 carries the estimate with well under one
// participant of error; above it requests are rejected rather than rounded.
const MaxSampleSize int64 = 1_000_000_000_000

// ZScore returns the two-sided critical value for the confidence level
func (c ConfidenceLevel) ZScore() (float64, bool) {
	switch c {
	case Confidence90:
		return 1.645, true
	case Confidence95:
		return 1.96, true
	case Confidence99:
		return 2.576, true
	}
	return 0, false
}

// Valid reports whether the level is one of 90, 95 or 99
func (c ConfidenceLevel) Valid() bool {
	_, ok := c.ZScore()
	return ok
}

// Request holds the inputs of a sample size estimate.
// A nil PopulationSize means the population is treated as infinite.
type Request struct {
	PopulationSize  *int64
	ConfidenceLevel ConfidenceLevel
	MarginOfError   float64 // percent, e.g. 5 means ±5%
}

// Result is the outcome of Compute
type Result struct {
	RequiredSampleSize int64
	Interpretation     string
}

// Compute returns the minimum sample size for estimating a proportion
// at the requested confidence level and margin of error.
func Compute(req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	n := RequiredSampleSize(req)
	return Result{
		RequiredSampleSize: n,
		Interpretation:     Interpret(req, n),
	}, nil
}

// Validate checks every input constraint and returns the first violation
func (req Request) Validate() error {
	if !req.ConfidenceLevel.Valid() {
		return &InvalidConfigurationError{
			Param:  ParamConfidenceLevel,
			Reason: "must be one of 90, 95 or 99",
			Value:  float64(req.ConfidenceLevel),
		}
	}

	moe := req.MarginOfError
	if math.IsNaN(moe) || math.IsInf(moe, 0) || moe <= 0 || moe > 100 {
		return &InvalidConfigurationError{
			Param:  ParamMarginOfError,
			Reason: "must be greater than 0 and at most 100",
			Value:  moe,
		}
	}

	if req.PopulationSize != nil && *req.PopulationSize <= 0 {
		return &InvalidConfigurationError{
			Param:  ParamPopulationSize,
			Reason: "must be a positive integer when provided",
			Value:  float64(*req.PopulationSize),
		}
	}

	// A tiny margin drives the estimate past what an int64 can hold
	if n := rawSampleSize(req); math.IsInf(n, 0) || n > float64(MaxSampleSize) {
		return &InvalidConfigurationError{
			Param:  ParamMarginOfError,
			Reason: "is too small: the required sample exceeds " + strconv.FormatInt(MaxSampleSize, 10),
			Value:  moe,
		}
	}

	return nil
}

// rawSampleSize is Cochran's formula before rounding
func rawSampleSize(req Request) float64 {
	z, _ := req.ConfidenceLevel.ZScore()
	e := req.MarginOfError / 100

	numerator := z * z * Proportion * (1 - Proportion)
	denominator := e * e

	if req.PopulationSize != nil {
		N := float64(*req.PopulationSize)
		return (N * numerator) / ((N-1)*denominator + numerator)
	}
	return numerator / denominator
}

// RequiredSampleSize evaluates Cochran's formula for an already validated
// request. Callers that have not validated should use Compute.
func RequiredSampleSize(req Request) int64 {
	n := rawSampleSize(req)
	if math.IsNaN(n) || n > float64(MaxSampleSize) {
		return MaxSampleSize
	}

	size := int64(math.Ceil(n))
	if size < 1 {
		size = 1
	}
	// Guard against float error pushing the estimate past the population
	if req.PopulationSize != nil && size > *req.PopulationSize {
		size = *req.PopulationSize
	}
	return size
}

// AdjustForAttrition inflates n so that at least n participants remain
// after losing the given fraction. rate must be in [0, 1).
func AdjustForAttrition(n int64, rate float64) (int64, error) {
	if n < 1 || n > MaxSampleSize {
		return 0, &InvalidConfigurationError{
			Param:  ParamSampleSize,
			Reason: "must be between 1 and " + strconv.FormatInt(MaxSampleSize, 10),
			Value:  float64(n),
		}
	}
	if math.IsNaN(rate) || rate < 0 || rate >= 1 {
		return 0, &InvalidConfigurationError{
			Param:  ParamAttritionRate,
			Reason: "must be in the range [0, 1)",
			Value:  rate,
		}
	}
	if rate == 0 {
		return n, nil
	}

	// Tolerate float error on exact quotients such as 100 / 0.8
	adjusted := float64(n) / (1 - rate)
	if adjusted > float64(MaxSampleSize) {
		return 0, &InvalidConfigurationError{
			Param:  ParamAttritionRate,
			Reason: "is too high: the adjusted sample exceeds " + strconv.FormatInt(MaxSampleSize, 10),
			Value:  rate,
		}
	}
	return int64(math.Ceil(adjusted - attritionEpsilon)), nil
}

const attritionEpsilon = 1e-9
