package charts

import (
	"bytes"
	"errors"
	"testing"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestRenderCategoryPie(t *testing.T) {
	totals := []analytics.CategoryTotal{
		{Category: "Food", Total: core.Money{Cents: 25000}, Count: 5},
		{Category: "Transport", Total: core.Money{Cents: 9000}, Count: 3},
	}

	var buf bytes.Buffer
	if err := RenderCategoryPie(&buf, totals); err != nil {
		t.Fatalf("RenderCategoryPie() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngHeader) {
		t.Error("output is not a PNG")
	}
}

func TestRenderCategoryPieNoData(t *testing.T) {
	var buf bytes.Buffer
	err := RenderCategoryPie(&buf, nil)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}

	err = RenderCategoryPie(&buf, []analytics.CategoryTotal{
		{Category: "Food", Total: core.Money{Cents: 0}},
	})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("zero totals: error = %v, want ErrNoData", err)
	}
}

func TestRenderMonthlyTrend(t *testing.T) {
	months := []analytics.MonthTotal{
		{Year: 2025, Month: 1, Total: core.Money{Cents: 130500}},
		{Year: 2025, Month: 2, Total: core.Money{Cents: 126525}},
		{Year: 2025, Month: 3, Total: core.Money{Cents: 4550}},
	}

	var buf bytes.Buffer
	if err := RenderMonthlyTrend(&buf, months); err != nil {
		t.Fatalf("RenderMonthlyTrend() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngHeader) {
		t.Error("output is not a PNG")
	}
}

func TestRenderMonthlyTrendNoData(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderMonthlyTrend(&buf, nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
}
