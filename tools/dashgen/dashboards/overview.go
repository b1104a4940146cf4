// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/card-price-watcher/tools/dashgen/panels"
)

// BuildOverview constructs the CPW Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("CPW Overview").
		Uid("cpw-overview").
		Tags([]string{"cpw", "card-price-watcher"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.LastCycleStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("Prices").
		WithPanel(panels.BestPrices()).
		WithPanel(panels.EventsRate()))

	b.WithRow(dashboard.NewRowBuilder("Watch Cycles").
		WithPanel(panels.CyclesRate()).
		WithPanel(panels.CycleDuration()).
		WithPanel(panels.SkippedCycles()))

	b.WithRow(dashboard.NewRowBuilder("CardTrader API").
		WithPanel(panels.MarketplaceCalls()).
		WithPanel(panels.MarketplaceLatency()).
		WithPanel(panels.ListingsReceived()))

	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationsSent()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	// Status server; empty when the server is disabled.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
