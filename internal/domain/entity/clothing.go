// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as WardrobeItem, OutfitTemplate, Match,
// and Recommendation, along with their validation rules and domain-specific errors.
package entity

// ClothingType is the closed set of clothing categories a wardrobe item or
// outfit slot can carry. Matching only ever pairs a slot with items of the
// same type.
type ClothingType string

const (
	ClothingTypeTop       ClothingType = "top"
	ClothingTypeBottom    ClothingType = "bottom"
	ClothingTypeOuterwear ClothingType = "outerwear"
	ClothingTypeShoes     ClothingType = "shoes"
	ClothingTypeBag       ClothingType = "bag"
	ClothingTypeAccessory ClothingType = "accessory"
	ClothingTypeOther     ClothingType = "other"
)

// AllClothingTypes lists every valid clothing type, in display order.
func AllClothingTypes() []ClothingType {
	return []ClothingType{
		ClothingTypeTop,
		ClothingTypeBottom,
		ClothingTypeOuterwear,
		ClothingTypeShoes,
		ClothingTypeBag,
		ClothingTypeAccessory,
		ClothingTypeOther,
	}
}

// IsValid reports whether the clothing type is one of the known categories.
func (c ClothingType) IsValid() bool {
	switch c {
	case ClothingTypeTop, ClothingTypeBottom, ClothingTypeOuterwear,
		ClothingTypeShoes, ClothingTypeBag, ClothingTypeAccessory, ClothingTypeOther:
		return true
	default:
		return false
	}
}

// detectorLabels maps the labels produced by the upstream clothing detector
// onto the closed clothing type set. Unknown labels map to "other".
var detectorLabels = map[string]ClothingType{
	"shirt":    ClothingTypeTop,
	"pants":    ClothingTypeBottom,
	"shorts":   ClothingTypeBottom,
	"skirt":    ClothingTypeBottom,
	"jacket":   ClothingTypeOuterwear,
	"shoe":     ClothingTypeShoes,
	"bag":      ClothingTypeBag,
	"sunglass": ClothingTypeAccessory,
	"hat":      ClothingTypeAccessory,
	"dress":    ClothingTypeOther,
}

// ClothingTypeFromDetector converts a detector class label into a ClothingType.
// Labels already matching a ClothingType are passed through; anything else
// falls back to ClothingTypeOther.
func ClothingTypeFromDetector(label string) ClothingType {
	if ct, ok := detectorLabels[label]; ok {
		return ct
	}
	if ct := ClothingType(label); ct.IsValid() {
		return ct
	}
	return ClothingTypeOther
}

// Style is an optional aesthetic label attached to wardrobe items and outfit
// templates by the upstream style classifier.
type Style string

const (
	StyleFormal      Style = "formal"
	StyleStreetwear  Style = "streetwear"
	StyleMinimalist  Style = "minimalist"
	StyleAthleisure  Style = "athleisure"
	StyleOther       Style = "other"
	StyleUnspecified Style = ""
)

// IsValid reports whether the style label is known. The empty string is valid
// and means "no style assigned".
func (s Style) IsValid() bool {
	switch s {
	case StyleFormal, StyleStreetwear, StyleMinimalist, StyleAthleisure, StyleOther, StyleUnspecified:
		return true
	default:
		return false
	}
}
