// Package nestbox is a small direct-manipulation editor for nested
// rectangles.
//
// A scene is a tree of [Box] values held in a [Store]. Each box has a local
// rectangle in its parent's coordinate space, a color and a zoom factor that
// scales its children. Opening a box sets its zoom to [OpenZoom]; closing it
// resets the zoom to 1 and hides its corner handles.
//
// The [Editor] turns pointer input into edits:
//
//   - press and hold on an open box for [LongPress] to create a child at
//     the press point
//   - press and drag a box body to move it
//   - press and drag within [CornerHitPx] of an open box's corner to resize
//     it, never below [MinBoxSize]
//   - double click to open a box, secondary click to close it
//
// The package has no windowing dependency. Hosts feed surface-pixel pointer
// events into [Editor.PointerDown], [Editor.PointerMove] and
// [Editor.PointerUp], call [Editor.Update] once per frame and paint the
// records returned by [Editor.Flatten] in order. The host subpackage does
// this on top of [Ebitengine].
//
// # Coordinates
//
// The root's frame is the surface: scale 1 at the origin. A box's world
// scale is its parent's world scale times its own zoom, and its world
// position is its parent's world position plus its local position times the
// parent's world scale:
//
//	rec := nestbox.ResolveBox(store, id)
//	world := rec.Bounds()
//	local := rec.ToLocal(pointer)
//
// # Testing and automation
//
// Use a [ManualClock] to step the long-press timer deterministically, and
// the Inject methods or a [ScriptRunner] to replay input without a window:
//
//	clock := nestbox.NewManualClock(time.Time{})
//	ed := nestbox.NewEditor(nestbox.EditorConfig{Clock: clock})
//	runner, err := nestbox.LoadScript(data, nestbox.ScriptYAML)
//	if err != nil { ... }
//	runner.OnSnapshot = func(label string) {
//		img := nestbox.RenderSnapshot(ed.Flatten(), nestbox.SnapshotOptions{PixelScale: 4})
//		_ = nestbox.WriteSnapshotPNG(label+".png", img)
//	}
//	_, err = nestbox.RunScript(ed, clock, runner, 10_000)
//
// # Events
//
// [Editor.OnEvent] registers callbacks for every edit, and
// [Editor.SetEventSink] forwards the same [BoxEvent] values to a bridge such
// as the Donburi adapter in nestbox/ecs.
//
// [Ebitengine]: https://ebitengine.org
package nestbox
