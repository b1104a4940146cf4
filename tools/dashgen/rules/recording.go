package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "cpw-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "cpw-recording",
					Rules: []Rule{
						{
							Record: "cpw:http_requests:rate5m",
							Expr:   `sum(rate(cpw_http_requests_total[5m]))`,
						},
						{
							Record: "cpw:http_errors:rate5m",
							Expr:   `sum(rate(cpw_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "cpw:marketplace_requests:rate5m",
							Expr:   `rate(cpw_marketplace_requests_total[5m])`,
						},
						{
							Record: "cpw:marketplace_errors:rate5m",
							Expr:   `rate(cpw_marketplace_errors_total[5m])`,
						},
						{
							Record: "cpw:notification_failures:rate5m",
							Expr:   `sum(rate(cpw_notification_failures_total[5m]))`,
						},
						{
							Record: "cpw:notification_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(cpw_notification_duration_seconds_bucket[5m])) by (le))`,
						},
					},
				},
			},
		},
	}
}
