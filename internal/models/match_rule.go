package models

import (
	"strings"

	"gorm.io/gorm"
)

// MatchRule pins bank merchant names matching a glob pattern to a vendor.
// Rules are evaluated in priority order (lower number wins); the first
// matching rule makes the matching engine treat the merchant name as a
// certain hit for that vendor.
type MatchRule struct {
	DefaultModel
	Priority uint
	Match    string // Glob pattern for the merchant name, e.g. "AMZN*"
	VendorID string // Marketplace reference of the vendor the pattern maps to
}

func (r MatchRule) Self() string {
	return "Match Rule"
}

// BeforeSave trims the pattern and vendor reference.
func (r *MatchRule) BeforeSave(_ *gorm.DB) (err error) {
	r.Match = strings.TrimSpace(r.Match)
	r.VendorID = strings.TrimSpace(r.VendorID)
	return
}
