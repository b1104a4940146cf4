package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// MarketplaceCalls returns a timeseries panel showing CardTrader request and
// error rates.
func MarketplaceCalls() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Calls").
		Description("CardTrader marketplace requests and failures per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`cpw:marketplace_requests:rate5m`, "requests/s", "A")).
		WithTarget(PromQuery(`cpw:marketplace_errors:rate5m`, "errors/s", "B")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// MarketplaceLatency returns a timeseries panel showing p95 CardTrader
// request latency.
func MarketplaceLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Latency (p95)").
		Description("95th percentile marketplace request duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(Histogram(0.95, "cpw_marketplace_request_duration_seconds"), "p95", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(2, 10)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ListingsReceived returns a timeseries panel showing raw listings returned
// by the marketplace per minute.
func ListingsReceived() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Listings / min").
		Description("Raw listings received from the marketplace before filtering").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`rate(cpw_listings_received_total{job="card-price-watcher"}[5m]) * 60`, "listings/min", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
