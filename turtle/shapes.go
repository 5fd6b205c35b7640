package turtle

// NGon draws a regular polygon with the given number of sides, clamped
// to [NGonSidesMin, NGonSidesMax]. When length is zero or negative, the
// side length is scaled down with the side count so polygons of any
// order come out roughly the same size. The turtle ends where it
// started, having turned a full 360 degrees.
func (t *Turtle) NGon(sides int, length float64) error {
	if !isFinite(length) {
		return ErrNotFinite
	}
	if sides < NGonSidesMin {
		sides = NGonSidesMin
	}
	if sides > NGonSidesMax {
		sides = NGonSidesMax
	}
	if length <= 0 {
		length = 144.0 / float64(sides)
	}
	angle := 360.0 / float64(sides)
	for i := 0; i < sides; i++ {
		if err := t.Turn(angle); err != nil {
			return err
		}
		if err := t.Move(length); err != nil {
			return err
		}
	}
	return nil
}

// Star draws a pointed star by turning past a straight line on each
// vertex. Even point counts collapse into overdrawn polygons, so counts
// below 5 are raised to 5 and even counts are bumped to the next odd.
func (t *Turtle) Star(points int, length float64) error {
	if !isFinite(length) {
		return ErrNotFinite
	}
	if points < 5 {
		points = 5
	}
	if points%2 == 0 {
		points++
	}
	if length <= 0 {
		length = 60
	}
	angle := 180 - 180.0/float64(points)
	for i := 0; i < points; i++ {
		if err := t.Move(length); err != nil {
			return err
		}
		if err := t.Turn(angle); err != nil {
			return err
		}
	}
	return nil
}
