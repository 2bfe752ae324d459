package domain

import (
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Track represents a song entry on the sheet.
type Track struct {
	// ID is content-derived; see TrackID.
	ID          string    `json:"id"`
	Artist      string    `json:"artist"`
	Title       string    `json:"title"`
	RecordLabel string    `json:"recordLabel"`
	ReleaseDate time.Time `json:"releaseDate"`

	// SubgenresNested holds the authored nested notation as raw JSON,
	// e.g. `["Dubstep", "|", "Riddim"]`. Parsed on demand.
	SubgenresNested string `json:"subgenresNested"`

	// Image is the cover artwork link. No artwork source is wired up, so
	// this is always empty.
	Image string `json:"image,omitempty"`
}

// TrackID derives the identifier for a track from the traits that make it
// unique. Only the date portion of the release date participates, so
// re-ingesting the same row always yields the same ID.
func TrackID(artist, title string, releaseDate time.Time) string {
	key := strings.Join([]string{artist, title, releaseDate.Format("2006-01-02")}, "\n")
	sum := blake2b.Sum512([]byte(key))
	return hex.EncodeToString(sum[:])
}
