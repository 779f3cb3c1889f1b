// Package charts renders analytics aggregates as PNG images for the
// dashboard and analytics pages.
package charts

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"fintrack/internal/analytics"
)

// ErrNoData indicates there is nothing to plot.
var ErrNoData = errors.New("charts: no data to render")

// RenderCategoryPie writes a PNG pie chart of expense totals per category.
func RenderCategoryPie(w io.Writer, totals []analytics.CategoryTotal) error {
	var values []chart.Value
	for _, ct := range totals {
		if ct.Total.Cents <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.2f)", ct.Category, ct.Total.Dollars()),
			Value: ct.Total.Dollars(),
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	pie := chart.PieChart{
		Title:  "Spending by Category",
		Width:  600,
		Height: 600,
		Values: values,
	}

	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render category pie: %w", err)
	}
	return nil
}

// RenderMonthlyTrend writes a PNG bar chart of expense totals per month,
// oldest month first.
func RenderMonthlyTrend(w io.Writer, months []analytics.MonthTotal) error {
	var bars []chart.Value
	for _, mt := range months {
		bars = append(bars, chart.Value{
			Label: mt.Label(),
			Value: mt.Total.Dollars(),
		})
	}
	if len(bars) == 0 {
		return ErrNoData
	}

	barChart := chart.BarChart{
		Title: "Monthly Spending Trend",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    800,
		Height:   400,
		BarWidth: 40,
		Bars:     bars,
	}
	barChart.YAxis.ValueFormatter = func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return fmt.Sprintf("%.0f", vf)
		}
		return ""
	}

	if err := barChart.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render monthly trend: %w", err)
	}
	return nil
}
