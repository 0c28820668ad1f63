package ranked

import "math"

// Alignment classifies how a player's estimated skill compares with the
// rank they currently display.
type Alignment string

const (
	AlignmentUnderranked Alignment = "underranked"
	AlignmentOverranked  Alignment = "overranked"
	AlignmentAligned     Alignment = "aligned"
)

// Projection policy. The base gain is scaled up when the estimate sits
// well above the division's expected rating and down when it sits well
// below.
const (
	projectionBaseGain = 15.0

	strongDiffThreshold = 100.0
	mildDiffThreshold   = 50.0

	strongUnderrankedScale = 1.3
	mildUnderrankedScale   = 1.15
	strongOverrankedScale  = 0.7
	mildOverrankedScale    = 0.85
)

// Projection is the expected RP outcome of the player's next match.
type Projection struct {
	ProjectedGain int
	RatingDiff    float64
	Alignment     Alignment
}

// ProjectNext estimates the RP gain of the next match from how far the
// skill estimate sits above or below the division's expected rating.
func (e *Engine) ProjectNext(est RatingEstimate, div Division, currentRP int) (Projection, error) {
	expected, err := interpolatedRating(div, currentRP)
	if err != nil {
		return Projection{}, err
	}
	diff := est.Rating - expected
	return Projection{
		ProjectedGain: int(math.Round(projectionBaseGain * gainScale(diff))),
		RatingDiff:    diff,
		Alignment:     alignmentOf(diff),
	}, nil
}

func gainScale(diff float64) float64 {
	switch {
	case diff > strongDiffThreshold:
		return strongUnderrankedScale
	case diff > mildDiffThreshold:
		return mildUnderrankedScale
	case diff < -strongDiffThreshold:
		return strongOverrankedScale
	case diff < -mildDiffThreshold:
		return mildOverrankedScale
	default:
		return 1.0
	}
}

func alignmentOf(diff float64) Alignment {
	switch {
	case diff > mildDiffThreshold:
		return AlignmentUnderranked
	case diff < -mildDiffThreshold:
		return AlignmentOverranked
	default:
		return AlignmentAligned
	}
}
