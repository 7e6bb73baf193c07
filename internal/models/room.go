package models

// RoomArtistCount is the fixed room roster size: three slides of six artists.
const RoomArtistCount = 18

// Room is a synthesized listing for a discoverable station near a tuner
// coordinate. Rooms are immutable once generated and never persisted.
type Room struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Volume          int      `json:"volume"`
	Similarity      float64  `json:"similarity"`
	Artists         []Artist `json:"artists"`
	Listeners       int      `json:"listeners"`
	Minutes         int      `json:"minutes"`
	Recommendations int      `json:"recommendations"`
	IsTargetRoom    bool     `json:"is_target_room"`
}
