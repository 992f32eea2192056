package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigTOML = `# Factsheet site configuration
environment = "development"

[site]
title = "Property Fact Sheets"
domain = ""
data_dir = "./data"
output_dir = "./public"
assets_dir = "./assets"

[server]
host = "localhost"
port = 8080

[logging]
level = "info"
output = ["stdout"]
`

const defaultStylesCSS = `body { font-family: system-ui, sans-serif; margin: 0 auto; max-width: 48rem; padding: 1rem; color: #222; }
.hero h1 { margin-bottom: 0.25rem; }
.hero .location { color: #666; margin-top: 0; }
.stats { display: flex; gap: 1.5rem; list-style: none; padding: 0; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.4rem 0.75rem; border-bottom: 1px solid #ddd; }
footer { margin-top: 3rem; color: #999; font-size: 0.85rem; }
`

// sampleDocuments is a minimal linked property graph demonstrating the
// expected data layout, including a relationship document wiring the sale to
// its buyer.
var sampleDocuments = map[string]string{
	"property.json": `{
  "property_type": "Single Family",
  "property_structure_built_year": 1987,
  "livable_floor_area": 1650,
  "parcel_identifier": "00-0000-000-0000",
  "bedrooms": 3
}`,
	"address.json": `{
  "street_number": "123",
  "street_name": "main",
  "street_suffix_type": "Street",
  "city_name": "Springfield",
  "state_code": "IL",
  "county_name": "Sangamon"
}`,
	"lot.json": `{
  "lot_size_sqft": 9500
}`,
	"sales_1.json": `{
  "purchase_price_amount": 450000,
  "ownership_transfer_date": "2023-06-15"
}`,
	"person_1.json": `{
  "first_name": "Jane",
  "last_name": "Doe"
}`,
	"relationship_sales_person_1.json": `{
  "from": {"/": "./sales_1.json"},
  "to": {"/": "./person_1.json"}
}`,
	"tax_2023.json": `{
  "tax_year": 2023,
  "tax_assessed_value": 425000
}`,
}

func runInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	fs.Parse(args)

	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}

	if err := scaffold(dir); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Initialized factsheet site in %s\n", dir)
	fmt.Println("Next: factsheet generate, or factsheet dev to preview")
}

func scaffold(dir string) error {
	sampleDir := filepath.Join(dir, "data", "sample-property")
	for _, d := range []string{sampleDir, filepath.Join(dir, "assets")} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}

	// Never overwrite an existing config
	configPath := filepath.Join(dir, "factsheet.toml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(defaultConfigTOML), 0644); err != nil {
			return err
		}
	} else {
		fmt.Printf("factsheet.toml already exists, leaving it alone\n")
	}

	if err := os.WriteFile(filepath.Join(dir, "assets", "styles.css"), []byte(defaultStylesCSS), 0644); err != nil {
		return err
	}

	for name, content := range sampleDocuments {
		if err := os.WriteFile(filepath.Join(sampleDir, name), []byte(content), 0644); err != nil {
			return err
		}
	}

	return nil
}
