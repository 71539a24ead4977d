package models

import "strings"

// Tier is the compression quality level chosen by the user.
type Tier string

const (
	TierLow    Tier = "Low"
	TierMedium Tier = "Medium"
	TierHigh   Tier = "High"
)

// Tier parameters. High produces the smallest pages and Low the largest.
const (
	HighQuality   = 50
	HighWidth     = 1024
	MediumQuality = 70
	MediumWidth   = 1600
	LowQuality    = 80
	LowWidth      = 2048
)

// ParseTier matches case-insensitively; anything unknown is Medium.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return TierLow
	case "high":
		return TierHigh
	default:
		return TierMedium
	}
}

// Params returns the JPEG quality and target pixel width for the tier.
func (t Tier) Params() (quality int, targetWidth int) {
	switch t {
	case TierHigh:
		return HighQuality, HighWidth
	case TierLow:
		return LowQuality, LowWidth
	default:
		return MediumQuality, MediumWidth
	}
}

func Tiers() []Tier {
	return []Tier{TierLow, TierMedium, TierHigh}
}
