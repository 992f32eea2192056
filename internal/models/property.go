package models

import (
	"strconv"
	"strings"
	"time"
)

// PropertyRecord is the flattened, denormalized view of one property handed
// to the rendering layer. It carries no graph structures; everything is
// resolved and derived by the time it is constructed.
type PropertyRecord struct {
	Property PropertySummary `json:"property"`
	Sales    []SaleRecord    `json:"sales"`
	Taxes    []TaxRecord     `json:"taxes"`
	Features FeatureList     `json:"features"`

	// Raw entity content passed through for template detail sections.
	Structure map[string]any `json:"structure,omitempty"`
	Utility   map[string]any `json:"utility,omitempty"`
}

// PropertySummary holds the headline fields of the fact sheet.
type PropertySummary struct {
	ID               string  `json:"id"`
	Address          string  `json:"address"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	County           string  `json:"county"`
	Latitude         float64 `json:"latitude,omitempty"`
	Longitude        float64 `json:"longitude,omitempty"`
	ParcelID         string  `json:"parcel_id"`
	Beds             int     `json:"beds"`
	Baths            float64 `json:"baths"`
	Sqft             float64 `json:"sqft"`
	Type             string  `json:"type"`
	YearBuilt        int     `json:"year_built"`
	LegalDescription string  `json:"legal_description"`
	LotArea          float64 `json:"lot_area"`
	LotType          string  `json:"lot_type"`
}

// SaleRecord is one ownership transfer, most recent first in
// PropertyRecord.Sales.
type SaleRecord struct {
	Date      string  `json:"date"` // ISO date as found in the source
	Amount    float64 `json:"amount"`
	OwnerName string  `json:"owner_name"`
}

// TaxRecord is one tax year assessment, chronological in
// PropertyRecord.Taxes.
type TaxRecord struct {
	Year          int     `json:"year"`
	AssessedValue float64 `json:"assessed_value"`
}

// FeatureList holds the interior/exterior feature strings shown on the fact
// sheet.
type FeatureList struct {
	Interior []string `json:"interior"`
	Exterior []string `json:"exterior"`
}

// BuildSummary reports the outcome of one batch build across properties.
type BuildSummary struct {
	RunID     string            `json:"run_id"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Errors    map[string]string `json:"errors,omitempty"` // property id -> error message
	Duration  time.Duration     `json:"duration"`
}

// ToNumber coerces a JSON value to float64. Accepts float64 (the encoding/json
// default), integer types, and numeric strings with optional commas.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
