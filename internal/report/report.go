package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// Evaluation is the structured outcome of one (method, target) pipeline.
// Lambda and CVRMSE are only meaningful for regularized methods (HasLambda).
// A failed pipeline carries its error and no numbers.
type Evaluation struct {
	Method    string
	Target    string
	RMSE      float64
	StdRMSE   float64
	R2        float64
	HasLambda bool
	Lambda    float64
	CVRMSE    float64
	Err       error
}

// Comparison aggregates evaluations across methods and targets.
type Comparison struct {
	Results []Evaluation

	cyan   func(a ...any) string
	yellow func(a ...any) string
	red    func(a ...any) string
}

func NewComparison(results []Evaluation) *Comparison {
	return &Comparison{
		Results: results,
		cyan:    color.New(color.FgCyan).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

// round3 formats to exactly 3 decimal places so the rendered table is
// reproducible across platforms.
func round3(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(3)
}

func (c *Comparison) methods() []string {
	var order []string
	seen := make(map[string]bool)
	for _, r := range c.Results {
		if !seen[r.Method] {
			seen[r.Method] = true
			order = append(order, r.Method)
		}
	}
	return order
}

func (c *Comparison) targets() []string {
	var order []string
	seen := make(map[string]bool)
	for _, r := range c.Results {
		if !seen[r.Target] {
			seen[r.Target] = true
			order = append(order, r.Target)
		}
	}
	return order
}

func (c *Comparison) lookup(method, target string) *Evaluation {
	for i := range c.Results {
		if c.Results[i].Method == method && c.Results[i].Target == target {
			return &c.Results[i]
		}
	}
	return nil
}

// Render builds the method x target comparison table. Each cell holds
// "RMSE | std-RMSE" rounded to 3 decimals; selected penalties for regularized
// methods follow the table.
func (c *Comparison) Render() string {
	methods := c.methods()
	targets := c.targets()

	var b strings.Builder

	colWidth := 24
	b.WriteString(fmt.Sprintf("%-8s", "Method"))
	for _, target := range targets {
		b.WriteString(fmt.Sprintf("%-*s", colWidth, c.cyan(target+" (RMSE | std)")))
	}
	b.WriteByte('\n')

	for _, method := range methods {
		b.WriteString(fmt.Sprintf("%-8s", method))
		for _, target := range targets {
			r := c.lookup(method, target)
			switch {
			case r == nil:
				b.WriteString(fmt.Sprintf("%-*s", colWidth, "-"))
			case r.Err != nil:
				b.WriteString(fmt.Sprintf("%-*s", colWidth, c.red("failed")))
			default:
				cell := round3(r.RMSE) + " | " + round3(r.StdRMSE)
				b.WriteString(fmt.Sprintf("%-*s", colWidth, cell))
			}
		}
		b.WriteByte('\n')
	}

	for _, r := range c.Results {
		if r.Err == nil && r.HasLambda {
			b.WriteString(fmt.Sprintf("%s/%s: lambda=%g cv-rmse=%s r2=%s\n",
				r.Method, r.Target, r.Lambda, round3(r.CVRMSE), round3(r.R2)))
		}
	}

	for _, r := range c.Results {
		if r.Err != nil {
			b.WriteString(c.yellow(fmt.Sprintf("warning: %s/%s failed: %v\n",
				r.Method, r.Target, r.Err)))
		}
	}

	return b.String()
}
