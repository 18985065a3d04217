package nestbox

// ResizeFromCorner applies a corner drag to a box's starting local rectangle.
//
// sizeDelta is the pointer delta converted with the box's own world scale and
// drives width and height. posDelta is the same delta converted with the
// parent's scale and drives the origin. When a dimension would drop below
// MinBoxSize it is clamped, and for corners on the moving edge the origin is
// shifted back so the opposite edge stays where the unclamped drag put it.
func ResizeFromCorner(start Rect, c Corner, sizeDelta, posDelta Vec2) Rect {
	r := start
	switch c {
	case CornerTL:
		r.X += posDelta.X
		r.Y += posDelta.Y
		r.W -= sizeDelta.X
		r.H -= sizeDelta.Y
	case CornerTR:
		r.Y += posDelta.Y
		r.W += sizeDelta.X
		r.H -= sizeDelta.Y
	case CornerBL:
		r.X += posDelta.X
		r.W -= sizeDelta.X
		r.H += sizeDelta.Y
	case CornerBR:
		r.W += sizeDelta.X
		r.H += sizeDelta.Y
	}

	if r.W < MinBoxSize {
		if c.leftEdge() {
			r.X += r.W - MinBoxSize
		}
		r.W = MinBoxSize
	}
	if r.H < MinBoxSize {
		if c.topEdge() {
			r.Y += r.H - MinBoxSize
		}
		r.H = MinBoxSize
	}
	return r
}

// MoveBy offsets a starting local rectangle by posDelta, keeping its size.
func MoveBy(start Rect, posDelta Vec2) Rect {
	start.X += posDelta.X
	start.Y += posDelta.Y
	return start
}

// childRectAt returns the bounds of a new child centered on local point p,
// clamped to stay within a parent of local size (w, h).
func childRectAt(p Vec2, w, h float64) Rect {
	x := clamp(p.X-NewChildW/2, 0, w-NewChildW)
	y := clamp(p.Y-NewChildH/2, 0, h-NewChildH)
	return Rect{X: x, Y: y, W: NewChildW, H: NewChildH}
}

// clamp matches max(lo, min(hi, v)): lo wins when the range is inverted.
func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
