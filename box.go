package nestbox

import (
	"errors"
	"fmt"
)

// BoxID identifies a box within its Store. IDs are assigned monotonically
// starting at 1.
type BoxID uint32

// NoBox is the zero BoxID. It is the parent of the root box.
const NoBox BoxID = 0

// Box is a rectangle positioned and sized in its parent's local units.
// Fields are mutated in place by the Editor; the Store owns every Box.
type Box struct {
	ID     BoxID
	Parent BoxID

	// Local geometry in the parent's coordinate space.
	X, Y, W, H float64

	Color Color

	children []BoxID
	zoom     float64
	open     bool
}

// Children returns the child ids in paint order. The returned slice MUST NOT
// be mutated by the caller.
func (b *Box) Children() []BoxID {
	return b.children
}

// NumChildren returns the number of children.
func (b *Box) NumChildren() int {
	return len(b.children)
}

// Zoom returns the scale applied to this box's children.
func (b *Box) Zoom() float64 {
	return b.zoom
}

// IsOpen reports whether the box is open.
func (b *Box) IsOpen() bool {
	return b.open
}

// Open marks the box open and magnifies its child space by OpenZoom.
func (b *Box) Open() {
	b.open = true
	b.zoom = OpenZoom
}

// Close marks the box closed and resets its zoom to 1.
func (b *Box) Close() {
	b.open = false
	b.zoom = 1
}

// Bounds returns the box's local rectangle.
func (b *Box) Bounds() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// SetBounds assigns the box's local rectangle.
func (b *Box) SetBounds(r Rect) {
	b.X, b.Y, b.W, b.H = r.X, r.Y, r.W, r.H
}

// Store is the arena that owns all boxes. Parent and child links are ids,
// never pointers, so the map is the only owner.
type Store struct {
	boxes  map[BoxID]*Box
	root   BoxID
	nextID BoxID // plain counter, single-threaded
}

// NewStore creates an empty store. The first box created with parent NoBox
// becomes the root.
func NewStore() *Store {
	return &Store{boxes: make(map[BoxID]*Box)}
}

// CreateBox creates a box under parent with a color derived from its depth
// and returns its id. Pass NoBox to create the root.
// Panics if parent does not exist or a root already exists.
func (s *Store) CreateBox(parent BoxID, bounds Rect) BoxID {
	depth := 0
	if parent != NoBox {
		if _, ok := s.boxes[parent]; !ok {
			panic(fmt.Sprintf("nestbox: parent box %d does not exist", parent))
		}
		depth = s.Depth(parent) + 1
	}
	return s.CreateBoxWithColor(parent, bounds, ColorForDepth(depth))
}

// CreateBoxWithColor is like CreateBox but uses the given color.
func (s *Store) CreateBoxWithColor(parent BoxID, bounds Rect, c Color) BoxID {
	var p *Box
	if parent == NoBox {
		if s.root != NoBox {
			panic("nestbox: store already has a root box")
		}
	} else {
		var ok bool
		p, ok = s.boxes[parent]
		if !ok {
			panic(fmt.Sprintf("nestbox: parent box %d does not exist", parent))
		}
	}

	s.nextID++
	b := &Box{
		ID:     s.nextID,
		Parent: parent,
		X:      bounds.X,
		Y:      bounds.Y,
		W:      bounds.W,
		H:      bounds.H,
		Color:  c,
		zoom:   1,
	}
	s.boxes[b.ID] = b
	if p != nil {
		p.children = append(p.children, b.ID)
	} else {
		s.root = b.ID
	}
	return b.ID
}

// Box returns the box with the given id.
// Panics if the id is not in the store.
func (s *Store) Box(id BoxID) *Box {
	b, ok := s.boxes[id]
	if !ok {
		panic(fmt.Sprintf("nestbox: box %d does not exist", id))
	}
	return b
}

// Lookup returns the box with the given id and whether it exists.
func (s *Store) Lookup(id BoxID) (*Box, bool) {
	b, ok := s.boxes[id]
	return b, ok
}

// Root returns the root box id, or NoBox if the store is empty.
func (s *Store) Root() BoxID {
	return s.root
}

// Len returns the number of boxes in the store.
func (s *Store) Len() int {
	return len(s.boxes)
}

// Depth returns the number of ancestors of id. The root has depth 0.
func (s *Store) Depth(id BoxID) int {
	d := 0
	for b := s.Box(id); b.Parent != NoBox; b = s.Box(b.Parent) {
		d++
	}
	return d
}

// Validate checks the store invariants and returns every violation joined
// into one error, or nil.
func (s *Store) Validate() error {
	var errs []error
	if len(s.boxes) == 0 {
		return nil
	}
	if _, ok := s.boxes[s.root]; !ok {
		errs = append(errs, fmt.Errorf("root box %d missing", s.root))
	}

	seen := make(map[BoxID]BoxID, len(s.boxes)) // child -> parent that listed it
	for id, b := range s.boxes {
		if b.ID != id {
			errs = append(errs, fmt.Errorf("box %d stored under id %d", b.ID, id))
		}
		if id != s.root {
			if _, ok := s.boxes[b.Parent]; !ok {
				errs = append(errs, fmt.Errorf("box %d: parent %d missing", id, b.Parent))
			}
		} else if b.Parent != NoBox {
			errs = append(errs, fmt.Errorf("root box %d has parent %d", id, b.Parent))
		}
		if b.W < MinBoxSize || b.H < MinBoxSize {
			errs = append(errs, fmt.Errorf("box %d: size %vx%v below minimum %v", id, b.W, b.H, MinBoxSize))
		}
		if b.zoom < 1 {
			errs = append(errs, fmt.Errorf("box %d: zoom %v below 1", id, b.zoom))
		}
		if !b.open && b.zoom != 1 {
			errs = append(errs, fmt.Errorf("box %d: closed with zoom %v", id, b.zoom))
		}
		for _, cid := range b.children {
			child, ok := s.boxes[cid]
			if !ok {
				errs = append(errs, fmt.Errorf("box %d: child %d missing", id, cid))
				continue
			}
			if prev, dup := seen[cid]; dup {
				errs = append(errs, fmt.Errorf("box %d listed by %d and %d", cid, prev, id))
			}
			seen[cid] = id
			if child.Parent != id {
				errs = append(errs, fmt.Errorf("box %d: listed by %d but parent is %d", cid, id, child.Parent))
			}
		}
	}
	return errors.Join(errs...)
}
