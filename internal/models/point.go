package models

// FrequencyPoint is a generated marker within a tuner band. Points exist only
// in memory for the lifetime of a generator; they are display scaffolding, not
// data the user can act on directly.
type FrequencyPoint struct {
	Band           int     `json:"band"`
	Pos            float64 `json:"pos"`  // offset within the band, in band units
	Freq           int     `json:"freq"` // mapped display value, 0-999
	Size           float64 `json:"size"`
	VerticalOffset float64 `json:"vertical_offset"`
}
