package models

// Song is a track result from the song-search collaborator (iTunes Search,
// standing in for Apple Music).
type Song struct {
	Name       string `json:"name"`
	ArtistName string `json:"artist_name"`
	Artwork    string `json:"artwork"`
	PreviewURL string `json:"preview_url"`
}
