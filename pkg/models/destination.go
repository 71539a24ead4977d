package models

import "strings"

// Destination is the storage location class for generated PDFs.
type Destination string

const (
	DestinationDownloads Destination = "Downloads"
	DestinationDocuments Destination = "Documents"
	DestinationCustom    Destination = "Custom"
)

// ParseDestination matches case-insensitively. Unknown values map to
// Custom, which writes into the app sandbox.
func ParseDestination(s string) Destination {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "downloads":
		return DestinationDownloads
	case "documents":
		return DestinationDocuments
	default:
		return DestinationCustom
	}
}

// IsPublic reports whether files land in a user-visible directory.
func (d Destination) IsPublic() bool {
	return d == DestinationDownloads || d == DestinationDocuments
}

func Destinations() []Destination {
	return []Destination{DestinationDownloads, DestinationDocuments, DestinationCustom}
}
