package nestbox

// Picker hit-tests points against the flattened scene. It keeps no index:
// every query re-flattens the store into a reused buffer.
type Picker struct {
	store *Store
	buf   []Record
}

// NewPicker creates a picker over the given store.
func NewPicker(s *Store) *Picker {
	return &Picker{store: s}
}

// flatten refreshes the reused record buffer.
func (p *Picker) flatten() []Record {
	p.buf = AppendFlatten(p.buf[:0], p.store)
	return p.buf
}

// PickTopmostAt returns the topmost box whose world rectangle contains pt.
// Later siblings and deeper boxes win over earlier or shallower ones.
func (p *Picker) PickTopmostAt(pt Vec2) (Record, bool) {
	return pickTopmost(p.flatten(), pt)
}

// PickCornerAt returns the topmost open box with a corner handle within
// CornerHitPx of pt on both axes, and which corner was hit.
func (p *Picker) PickCornerAt(pt Vec2) (Record, Corner, bool) {
	return pickCorner(p.flatten(), pt)
}

func pickTopmost(records []Record, pt Vec2) (Record, bool) {
	// Iterate backward (reverse paint order): topmost box first.
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Bounds().Contains(pt) {
			return records[i], true
		}
	}
	return Record{}, false
}

func pickCorner(records []Record, pt Vec2) (Record, Corner, bool) {
	for i := len(records) - 1; i >= 0; i-- {
		if c := cornerHit(records[i], pt); c != CornerNone {
			return records[i], c, true
		}
	}
	return Record{}, CornerNone, false
}

// cornerHit tests pt against the four corners of an open box, in tl, tr, bl,
// br order. Closed boxes expose no handles.
func cornerHit(r Record, pt Vec2) Corner {
	if !r.Box.open {
		return CornerNone
	}
	b := r.Bounds()
	corners := [4]struct {
		tag  Corner
		x, y float64
	}{
		{CornerTL, b.X, b.Y},
		{CornerTR, b.Right(), b.Y},
		{CornerBL, b.X, b.Bottom()},
		{CornerBR, b.Right(), b.Bottom()},
	}
	for _, c := range corners {
		if abs(pt.X-c.x) <= CornerHitPx && abs(pt.Y-c.y) <= CornerHitPx {
			return c.tag
		}
	}
	return CornerNone
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
