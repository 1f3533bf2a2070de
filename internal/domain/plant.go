package domain

import (
	"fmt"
	"strings"
)

// Light requirement values accepted from the catalog store.
const (
	LightLow    = "low"
	LightMedium = "medium"
	LightHigh   = "high"
	LightBright = "bright"
)

// Plant is a read-only catalog record. Rows are created and mutated
// out-of-band; this service only ever reads them.
type Plant struct {
	ID                 int64
	Name               string
	ScientificName     string
	Description        string
	WaterFrequencyDays int // days between waterings; 0 = unspecified
	WaterInstructions  string
	LightRequirements  string
	CareLevel          string
	CategoryID         int64 // 0 = uncategorized
	ImagePath          string
	Category           *Category
}

// Validate rejects malformed catalog rows at the store boundary rather than
// letting half-empty records propagate to callers.
func (p *Plant) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("plant: missing id")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("plant %d: missing name", p.ID)
	}
	if p.WaterFrequencyDays < 0 {
		return fmt.Errorf("plant %d: negative water frequency", p.ID)
	}
	switch p.LightRequirements {
	case "", LightLow, LightMedium, LightHigh, LightBright:
	default:
		return fmt.Errorf("plant %d: unknown light requirement %q", p.ID, p.LightRequirements)
	}
	return nil
}

// Category is read-only reference data.
type Category struct {
	ID   int64
	Name string
}
