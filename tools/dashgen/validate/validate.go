// Package validate checks generated dashboards and rules for PromQL that
// does not parse or that references metrics the service never exports.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/card-price-watcher/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings are
// reported but tolerated.
type Result struct {
	Errors   []error
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// histogramSuffixes are stripped before looking a selector up in the known
// metric set.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Expr parses a single PromQL expression and checks every metric it selects
// against known.
func Expr(context, expr string, known map[string]bool) Result {
	var res Result

	if strings.TrimSpace(expr) == "" {
		res.Errors = append(res.Errors, fmt.Errorf("%s: empty expression", context))
		return res
	}

	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Errorf("%s: parsing %q: %w", context, expr, err))
		return res
	}

	selectors := 0
	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		selectors++
		if !isKnown(vs.Name, known) {
			res.Errors = append(res.Errors, fmt.Errorf("%s: unknown metric %q", context, vs.Name))
		}
		return nil
	})

	if selectors == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %q selects no metrics", context, expr))
	}
	return res
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Dashboard checks every query target in a built dashboard. Targets are
// found by walking the dashboard's JSON form, so any panel type is covered.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Errorf("marshaling dashboard: %w", err))
		return res
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		res.Errors = append(res.Errors, fmt.Errorf("decoding dashboard: %w", err))
		return res
	}

	walk(tree, "dashboard", func(panel, expr string) {
		res.merge(Expr("panel "+panel, expr, known))
	})
	return res
}

// walk visits every object carrying an "expr" string, passing the title of
// the closest enclosing panel.
func walk(node any, title string, visit func(panel, expr string)) {
	switch v := node.(type) {
	case map[string]any:
		if t, ok := v["title"].(string); ok && t != "" {
			title = t
		}
		if expr, ok := v["expr"].(string); ok {
			visit(title, expr)
		}
		for _, child := range v {
			walk(child, title, visit)
		}
	case []any:
		for _, child := range v {
			walk(child, title, visit)
		}
	}
}

// Rules checks every recording and alerting expression in the groups.
func Rules(groups []rules.RuleGroup, known map[string]bool) Result {
	var res Result
	for _, g := range groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			res.merge(Expr(fmt.Sprintf("rule %s/%s", g.Name, name), r.Expr, known))
		}
	}
	return res
}
