// Package assemble orchestrates one property build: load documents, resolve
// the link graph, classify entities, stitch sale ownership, and flatten
// everything into the property record handed to rendering.
package assemble

import (
	"path/filepath"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/factsheet/internal/graph"
	"github.com/ternarybob/factsheet/internal/models"
	"github.com/ternarybob/factsheet/internal/normalize"
	"github.com/ternarybob/factsheet/internal/store"
)

// Assembler builds property records from property directories.
type Assembler struct {
	store  *store.Store
	logger arbor.ILogger
}

// New creates an assembler.
func New(logger arbor.ILogger) *Assembler {
	return &Assembler{
		store:  store.New(logger),
		logger: logger,
	}
}

// Assemble builds the denormalized record for one property directory. The
// directory name is the property id. Only *PropertyLoadError is returned;
// every per-document failure inside the pipeline degrades to fallback
// values.
func (a *Assembler) Assemble(dir string) (*models.PropertyRecord, error) {
	propertyID := filepath.Base(dir)

	docs, err := a.store.Load(dir)
	if err != nil {
		return nil, &PropertyLoadError{PropertyID: propertyID, Err: err}
	}

	rels := graph.Resolve(docs, a.logger)
	classified := graph.Classify(docs, a.logger)

	property := classified.FindOne(models.KindProperty)
	address := classified.FindOne(models.KindAddress)
	lot := classified.FindOne(models.KindLot)
	structure := classified.FindOne(models.KindStructure)
	utility := classified.FindOne(models.KindUtility)

	record := &models.PropertyRecord{
		Property: a.buildSummary(propertyID, property, address, lot, structure, classified),
		Sales:    a.buildSales(classified, docs, rels),
		Taxes:    a.buildTaxes(classified),
		Features: normalize.CollectFeatures(structure, utility, lot),
	}
	if structure != nil {
		record.Structure = structure.Content
	}
	if utility != nil {
		record.Utility = utility.Content
	}

	a.logger.Info().
		Str("property_id", propertyID).
		Int("documents", len(docs)).
		Int("sales", len(record.Sales)).
		Int("taxes", len(record.Taxes)).
		Msg("Property record assembled")

	return record, nil
}

func (a *Assembler) buildSummary(propertyID string, property, address, lot, structure *models.Document, classified *graph.Classified) models.PropertySummary {
	summary := models.PropertySummary{
		ID:      propertyID,
		Address: normalize.BuildAddressString(address),
		City:    normalize.TitleCase(address.Str("city_name")),
		State:   address.Str("state_code"),
		County:  address.Str("county_name"),
		Type:    property.Str("property_type"),
	}

	summary.Latitude, _ = address.Num("latitude")
	summary.Longitude, _ = address.Num("longitude")

	// Parcel id lives on the property document in newer feeds and on the
	// address document in older ones.
	summary.ParcelID = property.Str("parcel_identifier")
	if summary.ParcelID == "" {
		summary.ParcelID = address.Str("parcel_identifier")
	}
	summary.LegalDescription = property.Str("property_legal_description_text")

	if year, ok := property.Num("property_structure_built_year"); ok {
		summary.YearBuilt = int(year)
	}
	if sqft, ok := property.Num("livable_floor_area"); ok {
		summary.Sqft = sqft
	}

	counts := normalize.CountBedsBaths(classified.FindAll(models.KindLayout))
	if counts.Beds == 0 && counts.Baths == 0 {
		counts = normalize.FallbackRoomCounts(property, structure)
	}
	summary.Beds = counts.Beds
	summary.Baths = counts.Baths

	if lot != nil {
		if area, ok := lot.Num("lot_size_sqft"); ok {
			summary.LotArea = area
		}
		summary.LotType = normalize.ClassifyLotType(lot.Content["lot_size_sqft"])
	}

	return summary
}

func (a *Assembler) buildSales(classified *graph.Classified, docs map[string]*models.Document, rels graph.Relationships) []models.SaleRecord {
	sales := []models.SaleRecord{}
	for _, sale := range classified.FindAll(models.KindSale) {
		record := models.SaleRecord{
			Date:      sale.Str("ownership_transfer_date"),
			OwnerName: graph.OwnerName(sale, docs, rels, classified),
		}
		record.Amount, _ = sale.Num("purchase_price_amount")
		sales = append(sales, record)
	}
	return normalize.SortSales(sales)
}

func (a *Assembler) buildTaxes(classified *graph.Classified) []models.TaxRecord {
	taxes := []models.TaxRecord{}
	for _, tax := range classified.FindAll(models.KindTax) {
		record := models.TaxRecord{}
		if year, ok := tax.Num("tax_year"); ok {
			record.Year = int(year)
		}
		record.AssessedValue, _ = tax.Num("tax_assessed_value")
		taxes = append(taxes, record)
	}
	return normalize.SortTaxes(taxes)
}
