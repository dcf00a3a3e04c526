package curve

// The arc is drawn as a screen-space line strip whose dash offset is used as a
// reveal length. The strip geometry carries two extra vertices, so a reveal of
// 1.0 overshoots; every visibility value is scaled by this correction.
func (a ArcSample) correction() float64 {
	n := float64(a.Len())
	return (n*3 - 3) / (n*3 - 1)
}

// FullVisibility is the reveal value that shows the whole arc.
func (a ArcSample) FullVisibility() float64 {
	return a.correction()
}

// Visibility maps a curve-local position to the reveal value that makes the
// drawn arc end exactly there. It is monotonic in (segment, offset).
func (a ArcSample) Visibility(segment int, offset float64) float64 {
	if a.Segments() == 0 {
		return 0
	}
	if segment < 0 {
		return 0
	}
	if segment >= a.Segments() {
		return a.FullVisibility()
	}

	fraction := 0.0
	if l := a.lengths[segment]; l > 0 {
		fraction = offset / l
	}
	return a.correction() * (float64(segment) + fraction) / float64(a.Segments())
}
