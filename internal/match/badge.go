package match

// Badge bands. Presentation-only: the band never feeds back into scoring.
const (
	BadgeHigh   = "high"
	BadgeMedium = "medium"
	BadgeLow    = "low"
	BadgeNone   = "none"
)

// Badge classifies a match score into its display band.
func Badge(score int) string {
	switch {
	case score >= 80:
		return BadgeHigh
	case score >= 60:
		return BadgeMedium
	case score >= 40:
		return BadgeLow
	default:
		return BadgeNone
	}
}
