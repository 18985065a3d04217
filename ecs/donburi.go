package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/nestbox"
)

// BoxEventType is the Donburi event type for nestbox editor events.
var BoxEventType = events.NewEventType[nestbox.BoxEvent]()

// BoxData mirrors the editable state of one box.
type BoxData struct {
	ID     nestbox.BoxID
	Parent nestbox.BoxID
	Bounds nestbox.Rect
	Open   bool
}

// BoxComponent is attached to every entity the sink mirrors a box into.
var BoxComponent = donburi.NewComponentType[BoxData]()

var boxQuery = donburi.NewQuery(filter.Contains(BoxComponent))

// DonburiSink is a nestbox.EventSink backed by a Donburi world.
type DonburiSink struct {
	world    donburi.World
	entities map[nestbox.BoxID]donburi.Entity
}

// NewDonburiSink creates an event sink backed by a Donburi world. Events are
// published to BoxEventType and can be consumed with events.Subscribe and
// ProcessEvents. Box entities are updated immediately.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{
		world:    world,
		entities: make(map[nestbox.BoxID]donburi.Entity),
	}
}

// Sync creates or refreshes an entity for every box in the store.
func (s *DonburiSink) Sync(store *nestbox.Store) {
	for _, rec := range nestbox.Flatten(store) {
		b := rec.Box
		d := BoxData{ID: b.ID, Parent: b.Parent, Bounds: b.Bounds(), Open: b.IsOpen()}
		BoxComponent.SetValue(s.upsert(d), d)
	}
}

// EmitEvent implements nestbox.EventSink.
func (s *DonburiSink) EmitEvent(event nestbox.BoxEvent) {
	entry := s.upsert(BoxData{ID: event.Box, Parent: event.Parent, Bounds: event.Bounds})
	data := BoxComponent.Get(entry)
	switch event.Type {
	case nestbox.EventBoxOpened:
		data.Open = true
	case nestbox.EventBoxClosed:
		data.Open = false
	}
	BoxEventType.Publish(s.world, event)
}

// Entity returns the entity mirroring box id.
func (s *DonburiSink) Entity(id nestbox.BoxID) (donburi.Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Box returns the mirrored state of box id.
func (s *DonburiSink) Box(id nestbox.BoxID) (BoxData, bool) {
	e, ok := s.entities[id]
	if !ok || !s.world.Valid(e) {
		return BoxData{}, false
	}
	return *BoxComponent.Get(s.world.Entry(e)), true
}

// Count returns the number of mirrored boxes in the world.
func (s *DonburiSink) Count() int {
	return boxQuery.Count(s.world)
}

// upsert writes geometry and parent for d.ID, creating the entity on first
// sight. The open flag of an existing entity is kept unless the caller
// changes it.
func (s *DonburiSink) upsert(d BoxData) *donburi.Entry {
	if e, ok := s.entities[d.ID]; ok && s.world.Valid(e) {
		entry := s.world.Entry(e)
		cur := BoxComponent.Get(entry)
		cur.Parent = d.Parent
		cur.Bounds = d.Bounds
		if d.Open {
			cur.Open = true
		}
		return entry
	}
	e := s.world.Create(BoxComponent)
	s.entities[d.ID] = e
	entry := s.world.Entry(e)
	BoxComponent.SetValue(entry, d)
	return entry
}
