package reporting

import (
	"fmt"
	"strings"

	"advisor-mc-lab/internal/domain"
)

// RenderCSV renders percentile bands as CSV, one row per step.
func RenderCSV(bands *domain.PercentileBands) string {
	var sb strings.Builder

	sb.WriteString("step,p10,p50,p90\n")
	if bands == nil {
		return sb.String()
	}

	for t := range bands.P50 {
		sb.WriteString(fmt.Sprintf("%d,%.6f,%.6f,%.6f\n",
			t, bands.P10[t], bands.P50[t], bands.P90[t]))
	}
	return sb.String()
}
