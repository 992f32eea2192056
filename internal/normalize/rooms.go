package normalize

import (
	"strings"

	"github.com/ternarybob/factsheet/internal/models"
)

// RoomCounts aggregates bedroom and bathroom counts from room layout
// documents.
type RoomCounts struct {
	Beds  int
	Baths float64
}

// CountBedsBaths inspects the space type of every layout document,
// case-insensitively. A bedroom space counts one bed; a full bathroom counts
// 1.0 baths and a half bathroom 0.5.
func CountBedsBaths(layouts []*models.Document) RoomCounts {
	var counts RoomCounts
	for _, layout := range layouts {
		space := strings.ToLower(layout.Str("space_type"))
		switch {
		case strings.Contains(space, "bedroom"):
			counts.Beds++
		case strings.Contains(space, "half bathroom"):
			counts.Baths += 0.5
		case strings.Contains(space, "bathroom"):
			counts.Baths++
		}
	}
	return counts
}

// FallbackRoomCounts derives counts when no layout documents produced any:
// beds from the property document's bedroom field, baths from the structure
// document's room-count fields (full bathrooms plus half of the half
// bathrooms).
func FallbackRoomCounts(property, structure *models.Document) RoomCounts {
	var counts RoomCounts
	if beds, ok := property.Num("bedrooms"); ok {
		counts.Beds = int(beds)
	}
	if full, ok := structure.Num("full_bathroom_count"); ok {
		counts.Baths += full
	}
	if half, ok := structure.Num("half_bathroom_count"); ok {
		counts.Baths += 0.5 * half
	}
	return counts
}
