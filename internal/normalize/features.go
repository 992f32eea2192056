package normalize

import (
	"github.com/ternarybob/factsheet/internal/models"
)

// featureSource names the entity document a feature field is read from.
type featureSource int

const (
	fromStructure featureSource = iota
	fromUtility
	fromLot
)

// featureRule maps one entity field to a feature bucket and a display
// suffix. The field-to-bucket assignment is a fixed table, not inferred.
type featureRule struct {
	source   featureSource
	field    string
	exterior bool
	suffix   string
}

var featureRules = []featureRule{
	{fromStructure, "flooring_material_primary", false, " flooring"},
	{fromStructure, "interior_wall_surface_material_primary", false, " walls"},
	{fromUtility, "cooling_system_type", false, " cooling"},
	{fromUtility, "heating_system_type", false, " heating"},
	{fromStructure, "exterior_wall_material_primary", true, " exterior"},
	{fromStructure, "roof_covering_material", true, " roof"},
	{fromLot, "view", true, " view"},
	{fromLot, "fencing_type", true, " fencing"},
}

// sentinelOther is the source's "no meaningful value" marker; fields holding
// it are skipped.
const sentinelOther = "other"

// CollectFeatures assembles the interior/exterior feature lists from the
// structure, utility, and lot entities. Any of the documents may be nil.
func CollectFeatures(structure, utility, lot *models.Document) models.FeatureList {
	features := models.FeatureList{
		Interior: []string{},
		Exterior: []string{},
	}

	for _, rule := range featureRules {
		var doc *models.Document
		switch rule.source {
		case fromStructure:
			doc = structure
		case fromUtility:
			doc = utility
		case fromLot:
			doc = lot
		}

		value := doc.Str(rule.field)
		if value == "" || value == sentinelOther {
			continue
		}

		label := TitleCase(value) + rule.suffix
		if rule.exterior {
			features.Exterior = append(features.Exterior, label)
		} else {
			features.Interior = append(features.Interior, label)
		}
	}

	return features
}
