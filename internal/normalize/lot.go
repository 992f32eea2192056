package normalize

import (
	"github.com/ternarybob/factsheet/internal/models"
)

// SquareFeetPerAcre is the conversion constant for lot classification.
const SquareFeetPerAcre = 43560.0

// ClassifyLotType buckets a lot size in square feet against acre
// thresholds. Missing or non-numeric input yields "".
func ClassifyLotType(lotSizeSqft any) string {
	sqft, ok := models.ToNumber(lotSizeSqft)
	if !ok {
		return ""
	}

	switch {
	case sqft <= SquareFeetPerAcre/4:
		return "Less than or equal to 1/4 acre"
	case sqft <= SquareFeetPerAcre/2:
		return "Less than or equal to 1/2 acre"
	case sqft <= SquareFeetPerAcre:
		return "Less than or equal to 1 acre"
	default:
		return "Greater than 1 acre"
	}
}
