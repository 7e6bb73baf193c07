package models

import (
	"errors"
	"strings"
)

// Artist is a display entity sourced from the Spotify/Last.fm proxies or
// synthesized by the room generator. Stats (Volume, Count) are assigned per
// room and carry no meaning outside the room that owns the copy.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Image      string   `json:"image"`
	Genres     []string `json:"genres,omitempty"`
	Popularity int      `json:"popularity,omitempty"`
	Volume     int      `json:"volume"` // 1-6 bar rating
	Count      int      `json:"count"`  // pick count
	IsSeed     bool     `json:"is_seed,omitempty"`
	IsSelected bool     `json:"is_selected,omitempty"`
}

var (
	ErrArtistMissingID   = errors.New("artist is missing an id")
	ErrArtistMissingName = errors.New("artist is missing a name")
)

// Validate rejects malformed artists at the API boundary. Invalid entries are
// never inserted into rooms or the similar-artist cache.
func (a Artist) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrArtistMissingID
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrArtistMissingName
	}
	return nil
}
