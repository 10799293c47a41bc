package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClothingType_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		ct       ClothingType
		expected bool
	}{
		{"top is valid", ClothingTypeTop, true},
		{"bottom is valid", ClothingTypeBottom, true},
		{"outerwear is valid", ClothingTypeOuterwear, true},
		{"shoes is valid", ClothingTypeShoes, true},
		{"bag is valid", ClothingTypeBag, true},
		{"accessory is valid", ClothingTypeAccessory, true},
		{"other is valid", ClothingTypeOther, true},
		{"empty is invalid", ClothingType(""), false},
		{"unknown is invalid", ClothingType("hat"), false},
		{"uppercase is invalid", ClothingType("TOP"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ct.IsValid())
		})
	}
}

func TestClothingTypeFromDetector(t *testing.T) {
	tests := []struct {
		label    string
		expected ClothingType
	}{
		{"shirt", ClothingTypeTop},
		{"pants", ClothingTypeBottom},
		{"shorts", ClothingTypeBottom},
		{"skirt", ClothingTypeBottom},
		{"jacket", ClothingTypeOuterwear},
		{"shoe", ClothingTypeShoes},
		{"bag", ClothingTypeBag},
		{"sunglass", ClothingTypeAccessory},
		{"hat", ClothingTypeAccessory},
		{"dress", ClothingTypeOther},
		{"top", ClothingTypeTop},       // canonical labels pass through
		{"gibberish", ClothingTypeOther}, // unknown falls back
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClothingTypeFromDetector(tt.label))
		})
	}
}

func TestStyle_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		style    Style
		expected bool
	}{
		{"formal is valid", StyleFormal, true},
		{"streetwear is valid", StyleStreetwear, true},
		{"minimalist is valid", StyleMinimalist, true},
		{"athleisure is valid", StyleAthleisure, true},
		{"other is valid", StyleOther, true},
		{"empty means unassigned and is valid", StyleUnspecified, true},
		{"unknown is invalid", Style("grunge"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.style.IsValid())
		})
	}
}
