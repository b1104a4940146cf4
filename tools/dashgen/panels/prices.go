package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// BestPrices returns a timeseries panel plotting the tracked best listing
// price per blueprint. Series drop out while nothing qualifies.
func BestPrices() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Best Price").
		Description("Price of the cheapest qualifying listing per blueprint, in major currency units").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`cpw_best_price_cents{job="card-price-watcher"} / 100`,
			"blueprint {{blueprint_id}}", "A",
		)).
		Decimals(2).
		FillOpacity(0).
		LineWidth(2).
		Legend(TableLegend("min", "last")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// EventsRate returns a bar timeseries panel showing change events per
// hour by kind.
func EventsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Events / hour").
		Description("Best-listing change events by kind").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(cpw_events_total{job="card-price-watcher"}[1h])) by (kind)`,
			"{{kind}}", "A",
		)).
		FillOpacity(80).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}
