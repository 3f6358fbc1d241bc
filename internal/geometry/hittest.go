package geometry

// HitTest returns the index of the first box containing the point, iterating
// in slice order, or -1 if no box matches. Boxes arrive in detection order
// and the first hit wins; overlapping boxes resolve to the earlier entry
// with no area or z-order tie-break. Known limitation, kept for parity with
// the gallery front end.
func HitTest(p Point, boxes []Box) int {
	for i, b := range boxes {
		if b.Contains(p) {
			return i
		}
	}
	return -1
}
