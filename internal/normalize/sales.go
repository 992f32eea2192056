package normalize

import (
	"sort"
	"time"

	"github.com/ternarybob/factsheet/internal/models"
)

// SortSales orders sales most-recent-first by parsed date. The sort is
// stable so ties and unparseable dates keep encounter order; unparseable
// dates sort after everything else.
func SortSales(sales []models.SaleRecord) []models.SaleRecord {
	sorted := make([]models.SaleRecord, len(sales))
	copy(sorted, sales)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, okI := parseDate(sorted[i].Date)
		tj, okJ := parseDate(sorted[j].Date)
		if okI != okJ {
			return okI
		}
		if !okI {
			return false
		}
		return ti.After(tj)
	})

	return sorted
}

// SortTaxes orders tax records ascending by year.
func SortTaxes(taxes []models.TaxRecord) []models.TaxRecord {
	sorted := make([]models.TaxRecord, len(taxes))
	copy(sorted, taxes)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Year < sorted[j].Year
	})

	return sorted
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
