package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// card-price-watcher operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "cpw-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "cpw-alerts",
					Rules: []Rule{
						{
							Alert: "CpwDown",
							Expr:  `absent(up{job="card-price-watcher"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Card Price Watcher is down",
								"description": "The card-price-watcher job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "CpwReadinessDown",
							Expr:  `cpw_readyz_up == 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Card Price Watcher has not completed a watch cycle",
								"description": "The readiness probe has been reporting not-ready for more than 5 minutes.",
							},
						},
						{
							Alert: "CpwCycleStalled",
							Expr:  `time() - cpw_last_cycle_timestamp > 3600`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "No watch cycle has completed in the last hour",
								"description": "The last completed watch cycle is more than an hour old. The scheduler may be stuck.",
							},
						},
						{
							Alert: "CpwCyclesSkipped",
							Expr:  `increase(cpw_cycles_skipped_total[15m]) > 2`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Watch cycles are overrunning the interval",
								"description": "Several scheduled cycles were skipped because the previous one was still running. Consider a longer interval or fewer watchables.",
							},
						},
						{
							Alert: "CpwMarketplaceErrors",
							Expr:  `cpw:marketplace_errors:rate5m / cpw:marketplace_requests:rate5m > 0.5`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Most CardTrader requests are failing",
								"description": "More than half of marketplace listing requests failed over the last 10 minutes. Check the bearer token and API status.",
							},
						},
						{
							Alert: "CpwHighErrorRate",
							Expr:  `cpw:http_errors:rate5m / cpw:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on the status server",
								"description": "More than 5% of status server requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "CpwNotificationFailures",
							Expr:  `cpw:notification_failures:rate5m > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more notification backends have failed to deliver a message.",
							},
						},
					},
				},
			},
		},
	}
}
