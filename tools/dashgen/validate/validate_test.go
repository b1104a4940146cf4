package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/card-price-watcher/tools/dashgen/rules"
)

var known = map[string]bool{
	"cpw_cycles_total":           true,
	"cpw_cycle_duration_seconds": true,
	"cpw:http_requests:rate5m":   true,
}

func TestExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		expr         string
		wantErrors   int
		wantWarnings int
	}{
		{name: "known counter", expr: `rate(cpw_cycles_total[5m])`},
		{name: "recording rule", expr: `cpw:http_requests:rate5m * 60`},
		{
			name: "histogram bucket",
			expr: `histogram_quantile(0.95, sum(rate(cpw_cycle_duration_seconds_bucket[5m])) by (le))`,
		},
		{name: "unknown metric", expr: `rate(cpw_nope_total[5m])`, wantErrors: 1},
		{name: "two unknown metrics", expr: `a_total / b_total`, wantErrors: 2},
		{name: "parse error", expr: `rate(cpw_cycles_total[5m]`, wantErrors: 1},
		{name: "empty", expr: "  ", wantErrors: 1},
		{name: "no selectors", expr: `time()`, wantWarnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Expr("test", tt.expr, known)
			assert.Len(t, res.Errors, tt.wantErrors, "errors: %v", res.Errors)
			assert.Len(t, res.Warnings, tt.wantWarnings, "warnings: %v", res.Warnings)
			assert.Equal(t, tt.wantErrors == 0, res.Ok())
		})
	}
}

func TestRules(t *testing.T) {
	t.Parallel()

	groups := []rules.RuleGroup{{
		Name: "g",
		Rules: []rules.Rule{
			{Record: "ok", Expr: `rate(cpw_cycles_total[5m])`},
			{Alert: "Bad", Expr: `missing_metric > 0`},
		},
	}}

	res := Rules(groups, known)
	assert.False(t, res.Ok())
	assert.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Error(), "rule g/Bad")
}

func TestWalk(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"title": "dash",
		"panels": []any{
			map[string]any{
				"title":   "Cycles",
				"targets": []any{map[string]any{"expr": "x"}},
			},
			map[string]any{"expr": "y"},
		},
	}

	got := map[string]string{}
	walk(tree, "root", func(panel, expr string) { got[expr] = panel })

	assert.Equal(t, map[string]string{"x": "Cycles", "y": "dash"}, got)
}
