package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// formatDollars formats cents as a dollar currency string (e.g., "$12.34").
func formatDollars(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	dollars := cents / 100
	rem := cents % 100
	s := strconv.FormatInt(dollars, 10) + "." + fmt.Sprintf("%02d", rem)
	if neg {
		return "-$" + s
	}
	return "$" + s
}

// formatPercent formats a percentage with one decimal place.
func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func formatMonthCount(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// parseFilter extracts listing constraints from query parameters. Invalid
// values fall back to no constraint rather than failing the request.
func parseFilter(r *http.Request) store.Filter {
	var f store.Filter

	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		if d, err := core.ParseDate(v); err == nil {
			f.From = d
		}
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		if d, err := core.ParseDate(v); err == nil {
			f.To = d
		}
	}
	if v := sanitizeInput(q.Get("category")); v != "" && v != "all" {
		f.Category = v
	}
	if v := strings.ToLower(strings.TrimSpace(q.Get("type"))); v != "" && v != "all" {
		t := core.TxType(v)
		if t.Validate() == nil {
			f.Type = t
		}
	}

	return f
}
