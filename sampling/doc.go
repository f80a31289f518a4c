// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sampling estimates the minimum sample size for a proportion.

# Estimating

Compute takes a confidence level, a margin of error (as a percentage) and an
optional population size:

	res, err := sampling.Compute(sampling.Request{
		ConfidenceLevel: sampling.Confidence95,
		MarginOfError:   5,
	})
	// res.RequiredSampleSize == 385

The estimate uses Cochran's formula with p = 0.5 (maximum variance):

	n0 = z² · p(1−p) / E²

When a population size N is given, the finite population correction applies:

	n = N · z²p(1−p) / ((N − 1) · E² + z²p(1−p))

The result is always rounded up, is at least 1, and never exceeds N.

# Confidence Levels

Only three levels are supported, each mapped to a fixed critical value:

	90 → 1.645
	95 → 1.96
	99 → 2.576

# Attrition

AdjustForAttrition inflates a sample size so that at least n participants
remain after losing the given fraction:

	target, err := sampling.AdjustForAttrition(385, 0.2) // 482

# Errors

Invalid input returns an *InvalidConfigurationError naming the parameter.
Every such error matches ErrInvalidConfiguration:

	if errors.Is(err, sampling.ErrInvalidConfiguration) {
		// bad request
	}

The package performs no I/O and does not log.
*/
package sampling
