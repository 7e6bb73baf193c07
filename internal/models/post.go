package models

// Post is feed content consumed opaquely by the starfield generator. Fields
// mirror what the feed collaborator supplies; the core only defaults missing
// values, it never validates or transforms them.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	CreatedUTC  int64  `json:"created_utc"`
	PostType    string `json:"post_type"`
	Ups         int    `json:"ups"`
	NumComments int    `json:"num_comments"`
	Selftext    string `json:"selftext"`
	ImageURL    string `json:"image_url"`
}

// ApplyDefaults fills fields the upstream feed omitted. Upstream formats are
// not owned here, so unknown shapes degrade to displayable placeholders.
func (p *Post) ApplyDefaults() {
	if p.Title == "" {
		p.Title = "Untitled"
	}
	if p.Author == "" {
		p.Author = "unknown"
	}
	if p.PostType == "" {
		p.PostType = "text"
	}
}
