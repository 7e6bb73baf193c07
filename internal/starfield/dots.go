// Package starfield generates the social-map dot field and indexes it for
// viewport culling. A field is generated once per content set and never
// mutated; scroll events only re-query the index.
package starfield

import (
	"github.com/google/uuid"

	"github.com/frequency-social/frequency-api/internal/models"
	"github.com/frequency-social/frequency-api/internal/prng"
)

const (
	// FieldWidth and FieldHeight bound dot coordinates, in scroll units.
	FieldWidth  = 8000.0
	FieldHeight = 40000.0

	minDotSize = 1.5
	maxDotSize = 5.0

	// DefaultDotCount is used when a generation request omits a count.
	DefaultDotCount = 20000
)

var dotColors = []string{
	"#ffffff", "#ffe9c4", "#d4fbff", "#fff3a0", "#c4d7ff", "#ffd1dc",
}

// Dot is one interactive star. Post metadata is attached opaquely; missing
// fields are defaulted, nothing else is validated or transformed.
type Dot struct {
	ID    string      `json:"id"`
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	Size  float64     `json:"size"`
	Color string      `json:"color"`
	Post  models.Post `json:"post"`
}

// Generate produces count dots scattered over the field, decorating them with
// the supplied posts cycled in order. An empty post list yields placeholder
// posts; positions and sizes depend only on the seed.
func Generate(posts []models.Post, count int, seed int64) []Dot {
	if count <= 0 {
		count = DefaultDotCount
	}
	r := prng.NewSource(seed)

	dots := make([]Dot, count)
	for i := range dots {
		var post models.Post
		if len(posts) > 0 {
			post = posts[i%len(posts)]
		}
		post.ApplyDefaults()

		dots[i] = Dot{
			ID:    uuid.NewString(),
			X:     r.Float64() * FieldWidth,
			Y:     r.Float64() * FieldHeight,
			Size:  r.FloatBetween(minDotSize, maxDotSize),
			Color: dotColors[r.Intn(len(dotColors))],
			Post:  post,
		}
	}
	return dots
}
