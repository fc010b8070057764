package reporting

import (
	"fmt"

	"github.com/vicanso/go-charts/v2"

	"advisor-mc-lab/internal/domain"
)

// RenderFanChart renders the p10/p50/p90 wealth bands as a PNG line
// chart. Steps are labeled in years.
func RenderFanChart(title string, bands *domain.PercentileBands, stepsPerYear int) ([]byte, error) {
	if bands == nil || len(bands.P50) == 0 {
		return nil, fmt.Errorf("no percentile bands to chart")
	}
	if stepsPerYear <= 0 {
		stepsPerYear = 12
	}

	xLabels := make([]string, len(bands.P50))
	for t := range xLabels {
		if t%stepsPerYear == 0 {
			xLabels[t] = fmt.Sprintf("Y%d", t/stepsPerYear)
		} else {
			xLabels[t] = ""
		}
	}

	splitNum := len(xLabels) / stepsPerYear
	if splitNum < 2 {
		splitNum = 2
	}

	p, err := charts.LineRender(
		[][]float64{bands.P10, bands.P50, bands.P90},
		charts.TitleTextOptionFunc(title),
		charts.LegendLabelsOptionFunc([]string{"p10", "p50", "p90"}),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("render fan chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode fan chart: %w", err)
	}
	return buf, nil
}
