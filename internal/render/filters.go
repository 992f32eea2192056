package render

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/ternarybob/factsheet/internal/normalize"
)

// funcMap returns the filter set available to all page templates.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"currency":  Currency,
		"number":    Number,
		"monthYear": normalize.FormatMonthYear,
		"title":     normalize.TitleCase,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"safeHTML":  func(s string) template.HTML { return template.HTML(s) },
		"safeCSS":   func(s string) template.CSS { return template.CSS(s) },
	}
}

// Currency formats an amount as US dollars with thousands separators,
// dropping cents: 450000 -> "$450,000".
func Currency(amount float64) string {
	if amount == 0 {
		return ""
	}
	return "$" + Number(amount)
}

// Number formats a number with comma thousands separators. Fractions are
// rounded away; the fact sheet shows whole figures.
func Number(v float64) string {
	n := int64(math.Round(v))
	negative := n < 0
	if negative {
		n = -n
	}

	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}
