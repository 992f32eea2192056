package assemble

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// fullProperty writes the end-to-end fixture: a linked graph with address,
// building, lot, layouts, two sales (one stitched to a person), and taxes.
func fullProperty(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "123-main-street")
	require.NoError(t, os.MkdirAll(dir, 0755))

	writeDoc(t, dir, "address.json", `{
		"street_number": "123",
		"street_name": "main",
		"street_suffix_type": "Street",
		"city_name": "springfield",
		"state_code": "IL",
		"county_name": "Sangamon",
		"latitude": 39.78,
		"longitude": -89.65
	}`)
	writeDoc(t, dir, "building.json", `{
		"property_type": "Single Family",
		"property_structure_built_year": 1987,
		"livable_floor_area": 1650,
		"parcel_identifier": "14-33-126-007",
		"bedrooms": 3
	}`)
	writeDoc(t, dir, "lot.json", `{"lot_size_sqft": 9500}`)
	writeDoc(t, dir, "layout_1.json", `{"space_type": "Primary Bedroom"}`)
	writeDoc(t, dir, "layout_2.json", `{"space_type": "Bedroom"}`)
	writeDoc(t, dir, "layout_3.json", `{"space_type": "Full Bathroom"}`)
	writeDoc(t, dir, "layout_4.json", `{"space_type": "Half Bathroom"}`)
	writeDoc(t, dir, "sales_1.json", `{
		"purchase_price_amount": 450000,
		"ownership_transfer_date": "2023-06-15"
	}`)
	writeDoc(t, dir, "sales_2.json", `{
		"purchase_price_amount": 310000,
		"ownership_transfer_date": "2015-03-02"
	}`)
	writeDoc(t, dir, "person_1.json", `{"first_name": "Jane", "last_name": "Doe"}`)
	writeDoc(t, dir, "relationship_sales_person_1.json", `{
		"from": {"/": "./sales_1.json"},
		"to": {"/": "./person_1.json"}
	}`)
	writeDoc(t, dir, "tax_2022.json", `{"tax_year": 2022, "tax_assessed_value": 400000}`)
	writeDoc(t, dir, "tax_2023.json", `{"tax_year": 2023, "tax_assessed_value": 425000}`)

	return dir
}

func TestAssemble_EndToEnd(t *testing.T) {
	record, err := New(arbor.NewLogger()).Assemble(fullProperty(t))
	require.NoError(t, err)

	p := record.Property
	assert.Equal(t, "123-main-street", p.ID)
	assert.True(t, len(p.Address) > 0 && p.Address[:15] == "123 Main Street", "address %q", p.Address)
	assert.Equal(t, "Springfield", p.City)
	assert.Equal(t, "IL", p.State)
	assert.Equal(t, "Sangamon", p.County)
	assert.Equal(t, "14-33-126-007", p.ParcelID)
	assert.Equal(t, "Single Family", p.Type)
	assert.Equal(t, 1987, p.YearBuilt)
	assert.Equal(t, 1650.0, p.Sqft)
	assert.Equal(t, 2, p.Beds)
	assert.Equal(t, 1.5, p.Baths)
	assert.Equal(t, 9500.0, p.LotArea)
	assert.Equal(t, "Less than or equal to 1/4 acre", p.LotType)

	require.Len(t, record.Sales, 2)
	assert.Equal(t, 450000.0, record.Sales[0].Amount)
	assert.Equal(t, "2023-06-15", record.Sales[0].Date)
	assert.Equal(t, "Jane Doe", record.Sales[0].OwnerName)
	assert.Equal(t, "", record.Sales[1].OwnerName)

	require.Len(t, record.Taxes, 2)
	assert.Equal(t, 2022, record.Taxes[0].Year)
	assert.Equal(t, 2023, record.Taxes[1].Year)
	assert.Equal(t, 425000.0, record.Taxes[1].AssessedValue)
}

func TestAssemble_GracefulDegradation(t *testing.T) {
	dir := fullProperty(t)
	writeDoc(t, dir, "broken.json", `{"tax_assessed_value": 99`)

	record, err := New(arbor.NewLogger()).Assemble(dir)

	require.NoError(t, err)
	assert.Len(t, record.Taxes, 2)
	assert.Len(t, record.Sales, 2)
	assert.Equal(t, "Springfield", record.Property.City)
}

func TestAssemble_MinimalProperty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sparse")
	require.NoError(t, os.MkdirAll(dir, 0755))
	writeDoc(t, dir, "building.json", `{"property_type": "Condo", "bedrooms": 2}`)

	record, err := New(arbor.NewLogger()).Assemble(dir)

	require.NoError(t, err)
	assert.Equal(t, "Condo", record.Property.Type)
	assert.Equal(t, 2, record.Property.Beds) // fallback: no layout documents
	assert.Equal(t, "", record.Property.Address)
	assert.Equal(t, "", record.Property.LotType)
	assert.Empty(t, record.Sales)
	assert.Empty(t, record.Taxes)
	assert.Empty(t, record.Features.Interior)
}

func TestAssemble_MissingDirectory(t *testing.T) {
	_, err := New(arbor.NewLogger()).Assemble(filepath.Join(t.TempDir(), "ghost"))

	require.Error(t, err)
	var loadErr *PropertyLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "ghost", loadErr.PropertyID)
}

func TestAssemble_NoGraphLeakage(t *testing.T) {
	// The record passes through raw structure/utility content but never the
	// relationship tables; a sparse property must yield empty, non-nil
	// collections rather than intermediate state.
	dir := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.MkdirAll(dir, 0755))

	record, err := New(arbor.NewLogger()).Assemble(dir)

	require.NoError(t, err)
	assert.NotNil(t, record.Sales)
	assert.NotNil(t, record.Taxes)
	assert.Nil(t, record.Structure)
	assert.Nil(t, record.Utility)
}
