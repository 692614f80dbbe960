package layout

// ============================================================================
// RADIUS SCALE — rating → bubble radius
// ============================================================================
// Linear over the observed rating extent into [MinFrac, MaxFrac] × width.
// Monotonically non-decreasing in rating, always > 0 and ≤ MaxRadiusFrac × width.
// ============================================================================

// MaxRadiusFrac is the hard ceiling on radius as a fraction of width.
const MaxRadiusFrac = 0.1

// RadiusScale maps ratings to radii.
type RadiusScale struct {
	d0, d1 float64
	r0, r1 float64
}

// RatingValue returns the rating used for sizing: absent or non-positive → 1.
func RatingValue(rating float64) float64 {
	if rating > 0 {
		return rating
	}
	return 1
}

// NewRadiusScale builds a scale over the entities' rating extent.
func NewRadiusScale(entities []Entity, width float64, p Params) RadiusScale {
	minFrac, maxFrac := p.RadiusMinFrac, p.RadiusMaxFrac
	if maxFrac <= 0 {
		maxFrac = DefaultParams().RadiusMaxFrac
	}
	if maxFrac > MaxRadiusFrac {
		maxFrac = MaxRadiusFrac
	}
	if minFrac <= 0 || minFrac > maxFrac {
		minFrac = maxFrac
	}

	s := RadiusScale{r0: minFrac * width, r1: maxFrac * width}
	for i, e := range entities {
		v := RatingValue(e.Rating)
		if i == 0 || v < s.d0 {
			s.d0 = v
		}
		if i == 0 || v > s.d1 {
			s.d1 = v
		}
	}
	return s
}

// Radius returns the radius for rating, clamped to the output range.
func (s RadiusScale) Radius(rating float64) float64 {
	v := RatingValue(rating)
	var r float64
	if s.d1 == s.d0 {
		r = (s.r0 + s.r1) / 2
	} else {
		r = s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
	}
	if r < s.r0 {
		r = s.r0
	}
	if r > s.r1 {
		r = s.r1
	}
	return r
}
