// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sampling

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Interpret renders the explanation shown next to a computed sample size
func Interpret(req Request, required int64) string {
	var b strings.Builder

	moe := formatPercent(req.MarginOfError)

	fmt.Fprintf(&b, "A minimum of %s participants is required.\n\n",
		humanize.Comma(required))

	fmt.Fprintf(&b, "Confidence level (%d%%): if the study were repeated many times, "+
		"%d%% of the resulting estimates would capture the true population value.\n\n",
		req.ConfidenceLevel, req.ConfidenceLevel)

	fmt.Fprintf(&b, "Margin of error (±%s%%): the sample estimate is expected to lie "+
		"within %s percentage points of the true population value.\n\n",
		moe, moe)

	if req.PopulationSize != nil {
		N := *req.PopulationSize
		fraction := float64(required) / float64(N) * 100
		fmt.Fprintf(&b, "Representativeness: with a population of %s, the sample covers "+
			"%.1f%% of the population, which is sufficient to represent it at the "+
			"stated confidence and precision.\n\n",
			humanize.Comma(N), fraction)
	} else {
		b.WriteString("Representativeness: no population size was given, so the estimate " +
			"assumes an effectively infinite population and is suitable for large populations.\n\n")
	}

	b.WriteString("Methodological recommendations:\n")
	b.WriteString("- Inflate the sample by 20-30% to allow for anticipated non-response and attrition.\n")
	b.WriteString("- For multivariate analyses, plan for at least 10 cases per variable.\n")
	b.WriteString("- For longitudinal designs, add a 15-25% buffer for attrition between waves.\n")

	return b.String()
}

// formatPercent drops trailing zeros so 5 renders as "5" and 2.5 as "2.5"
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
