package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CyclesRate returns a timeseries panel showing completed watch cycles per
// hour.
func CyclesRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cycles / hour").
		Description("Completed watch cycles per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`rate(cpw_cycles_total{job="card-price-watcher"}[15m]) * 3600`, "cycles/h", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CycleDuration returns a timeseries panel showing p50 and p95 watch cycle
// duration.
func CycleDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cycle Duration").
		Description("Watch cycle duration percentiles, including API call spacing").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(Histogram(0.5, "cpw_cycle_duration_seconds"), "p50", "A")).
		WithTarget(PromQuery(Histogram(0.95, "cpw_cycle_duration_seconds"), "p95", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SkippedCycles returns a stat panel showing scheduled cycles skipped in the
// past 24 hours because the previous cycle was still running.
func SkippedCycles() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Skipped Cycles (24h)").
		Description("Scheduled cycles dropped because the previous one overran the interval").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`increase(cpw_cycles_skipped_total{job="card-price-watcher"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
