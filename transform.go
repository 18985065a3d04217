package nestbox

// Frame is a resolved coordinate frame: where a box's local origin lands in
// world space and how many world units one local unit spans.
type Frame struct {
	Pos   Vec2
	Scale float64
}

// rootFrame is the parent frame of the root box.
var rootFrame = Frame{Scale: 1}

// Record is one resolved box in a flattened scene.
type Record struct {
	Box         *Box
	Depth       int
	WorldPos    Vec2
	WorldSize   Vec2
	WorldScale  float64 // parent scale times the box's zoom
	ParentScale float64 // scale of the space the box is placed in
}

// Bounds returns the record's world rectangle.
func (r Record) Bounds() Rect {
	return Rect{X: r.WorldPos.X, Y: r.WorldPos.Y, W: r.WorldSize.X, H: r.WorldSize.Y}
}

// Frame returns the frame the box's children are resolved in.
func (r Record) Frame() Frame {
	return Frame{Pos: r.WorldPos, Scale: r.WorldScale}
}

// ToLocal converts a world point into the box's own child coordinate space.
func (r Record) ToLocal(p Vec2) Vec2 {
	return p.Sub(r.WorldPos).Div(r.WorldScale)
}

// ToParentLocal converts a world point into the space the box is placed in,
// the same units as the box's X and Y.
func (r Record) ToParentLocal(p Vec2) Vec2 {
	return p.Sub(r.WorldPos).Div(r.ParentScale).Add(Vec2{r.Box.X, r.Box.Y})
}

// ToWorld converts a point in the box's child coordinate space to world space.
func (r Record) ToWorld(p Vec2) Vec2 {
	return r.WorldPos.Add(p.Mul(r.WorldScale))
}

// Resolve computes a box's world placement given its parent's frame.
//
// The box's position is placed with the parent's scale while its size uses
// the compounded scale, so changing a box's zoom grows it in place.
func Resolve(b *Box, parent Frame, depth int) Record {
	scale := parent.Scale * b.zoom
	return Record{
		Box:         b,
		Depth:       depth,
		WorldPos:    parent.Pos.Add(Vec2{b.X, b.Y}.Mul(parent.Scale)),
		WorldSize:   Vec2{b.W * scale, b.H * scale},
		WorldScale:  scale,
		ParentScale: parent.Scale,
	}
}

// Flatten resolves every box depth-first, parent before children, children in
// paint order. The result is paint order; reversed, it is pick order.
func Flatten(s *Store) []Record {
	return AppendFlatten(nil, s)
}

// AppendFlatten is like Flatten but appends to buf, letting callers reuse a
// buffer across frames.
func AppendFlatten(buf []Record, s *Store) []Record {
	if s.root == NoBox {
		return buf
	}
	return appendResolved(buf, s, s.Box(s.root), rootFrame, 0)
}

func appendResolved(buf []Record, s *Store, b *Box, parent Frame, depth int) []Record {
	rec := Resolve(b, parent, depth)
	buf = append(buf, rec)
	frame := rec.Frame()
	for _, cid := range b.children {
		buf = appendResolved(buf, s, s.Box(cid), frame, depth+1)
	}
	return buf
}

// ResolveBox computes the record for a single box by walking its ancestor
// chain from the root.
func ResolveBox(s *Store, id BoxID) Record {
	b := s.Box(id)
	if b.Parent == NoBox {
		return Resolve(b, rootFrame, 0)
	}
	parent := ResolveBox(s, b.Parent)
	return Resolve(b, parent.Frame(), parent.Depth+1)
}
