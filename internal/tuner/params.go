// Package tuner implements the radio-tuner generation core: parameter
// clamping and band math, procedural frequency points, and room synthesis.
// Everything here is pure computation; no I/O, no shared state.
package tuner

import "math"

// Mode selects which parameter axis drives banding.
type Mode string

const (
	ModeVolume     Mode = "volume"
	ModeSimilarity Mode = "similarity"
)

const (
	MinVolume      = 0
	MaxVolume      = 3200
	VolumeBandSize = 400

	MinSimilarity      = -1000.0
	MaxSimilarity      = 1000.0
	SimilarityBandSize = 250.0

	// VolumeBandCount and SimilarityBandCount exclude the degenerate
	// single-value band at the top of each range (see VolumeBand).
	VolumeBandCount     = MaxVolume / VolumeBandSize
	SimilarityBandCount = int((MaxSimilarity - MinSimilarity) / SimilarityBandSize)

	// Drag sensitivity multipliers. The negative similarity sub-range is
	// visually denser, so it advances slower per input unit. UI feel only;
	// stored values are unaffected.
	NegativeSimilaritySensitivity = 0.6
	PositiveSimilaritySensitivity = 1.0
)

// Clamp bounds v to [lo, hi]. Idempotent; out-of-range input is silently
// clamped, never rejected.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampVolume bounds a volume to its domain.
func ClampVolume(v int) int {
	return ClampInt(v, MinVolume, MaxVolume)
}

// ClampSimilarity bounds a similarity to its domain and keeps one decimal of
// precision.
func ClampSimilarity(s float64) float64 {
	return math.Round(Clamp(s, MinSimilarity, MaxSimilarity)*10) / 10
}

// SnapVolume snaps a raw drag value to the volume grid (whole units).
// Applied on interaction end.
func SnapVolume(v float64) int {
	return ClampVolume(int(math.Round(v)))
}

// SnapSimilarity snaps a raw drag value to the similarity grid (0.1 units).
func SnapSimilarity(s float64) float64 {
	return ClampSimilarity(math.Round(s*10) / 10)
}

// VolumeBand maps a volume to its band via floor semantics: a value exactly on
// a boundary k*VolumeBandSize belongs to band k, never k-1. MaxVolume maps to
// the degenerate band VolumeBandCount.
func VolumeBand(v int) int {
	return ClampVolume(v) / VolumeBandSize
}

// SimilarityBand maps a similarity to its band, same floor semantics.
func SimilarityBand(s float64) int {
	return int(math.Floor((Clamp(s, MinSimilarity, MaxSimilarity) - MinSimilarity) / SimilarityBandSize))
}

// Band dispatches on mode.
func Band(value float64, mode Mode) int {
	if mode == ModeSimilarity {
		return SimilarityBand(value)
	}
	return VolumeBand(int(math.Round(value)))
}

// BandWidth is the width of one band in value units for the given mode.
func BandWidth(mode Mode) float64 {
	if mode == ModeSimilarity {
		return SimilarityBandSize
	}
	return VolumeBandSize
}

// BandStart is the lower edge of the band containing value.
func BandStart(value float64, mode Mode) float64 {
	if mode == ModeSimilarity {
		return MinSimilarity + float64(SimilarityBand(value))*SimilarityBandSize
	}
	return float64(VolumeBand(int(math.Round(value))) * VolumeBandSize)
}

// BandProgress is the fractional position of value within its band, in [0, 1).
// A boundary value is the start of its band, so progress 0.
func BandProgress(value float64, mode Mode) float64 {
	p := (clampForMode(value, mode) - BandStart(value, mode)) / BandWidth(mode)
	return Clamp(p, 0, 1)
}

// BandPercent is BandProgress scaled for display.
func BandPercent(value float64, mode Mode) float64 {
	return BandProgress(value, mode) * 100
}

// PixelOffset projects a value onto a strip rendered at pxPerBand pixels per
// band, measured from the start of the range.
func PixelOffset(value float64, mode Mode, pxPerBand float64) float64 {
	v := clampForMode(value, mode)
	min := 0.0
	if mode == ModeSimilarity {
		min = MinSimilarity
	}
	return (v - min) / BandWidth(mode) * pxPerBand
}

func clampForMode(value float64, mode Mode) float64 {
	if mode == ModeSimilarity {
		return Clamp(value, MinSimilarity, MaxSimilarity)
	}
	return Clamp(value, MinVolume, MaxVolume)
}
