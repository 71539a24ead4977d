package utils

import (
	"fmt"
	"strconv"
)

const (
	kb = 1024
	mb = kb * 1024
	gb = mb * 1024
)

// FormatStorageSize renders the storage occupied by the catalog.
func FormatStorageSize(bytes int64) string {
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatListSize is the compact size shown next to a document in a list,
// in megabytes with at most two decimals and no trailing zeros.
func FormatListSize(bytes int64) string {
	return strconv.FormatFloat(roundTo(float64(bytes)/mb, 2), 'f', -1, 64) + "mb"
}

// FormatAverage renders the average pages per document.
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}

func roundTo(v float64, places int) float64 {
	p := 1.0
	for i := 0; i < places; i++ {
		p *= 10
	}
	return float64(int64(v*p+0.5)) / p
}
