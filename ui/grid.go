package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wildloop/camera"
	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/world"
)

// Zoom step per mouse wheel notch.
const wheelZoomFactor = 1.15

// GridView draws the world's cells in a screen rectangle through a pan/zoom camera.
type GridView struct {
	renderer *Renderer
	bounds   rl.Rectangle
	cam      *camera.Camera
}

// NewGridView creates a grid view filling bounds.
func NewGridView(bounds rl.Rectangle) *GridView {
	return &GridView{
		renderer: NewRenderer(),
		bounds:   bounds,
		cam:      camera.New(bounds.Width, bounds.Height, 0, 0),
	}
}

// SetBounds updates the screen rectangle the grid is drawn into.
func (v *GridView) SetBounds(bounds rl.Rectangle) {
	v.bounds = bounds
	v.cam.Resize(bounds.Width, bounds.Height)
}

// Camera returns the view's camera.
func (v *GridView) Camera() *camera.Camera { return v.cam }

// HandleInput zooms with the mouse wheel over the grid, pans with a middle-button
// drag and resets the view with C.
func (v *GridView) HandleInput() {
	mouse := rl.GetMousePosition()
	if rl.CheckCollisionPointRec(mouse, v.bounds) {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			factor := float32(wheelZoomFactor)
			if wheel < 0 {
				factor = 1 / factor
			}
			v.cam.ZoomAt(mouse.X-v.bounds.X, mouse.Y-v.bounds.Y, factor)
		}
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyC) {
		v.cam.Reset()
	}
}

// sync points the camera at w's grid.
func (v *GridView) sync(w *world.World) {
	v.cam.SetWorld(float32(w.Width()), float32(w.Height()))
}

// cellRect returns the screen rectangle of the cell at (x, y).
func (v *GridView) cellRect(x, y int) rl.Rectangle {
	sx, sy := v.cam.WorldToScreen(float32(x), float32(y))
	s := v.cam.Scale()
	return rl.Rectangle{X: v.bounds.X + sx, Y: v.bounds.Y + sy, Width: s, Height: s}
}

// CellAt maps a screen point to a grid position.
func (v *GridView) CellAt(w *world.World, p rl.Vector2) (components.Position, bool) {
	v.sync(w)
	if !rl.CheckCollisionPointRec(p, v.bounds) {
		return components.Position{}, false
	}
	x, y, ok := v.cam.CellAt(p.X-v.bounds.X, p.Y-v.bounds.Y)
	if !ok {
		return components.Position{}, false
	}
	pos := components.Position{X: x, Y: y}
	return pos, w.IsValidPosition(pos)
}

// Draw renders every visible cell, then the overlays and the selection highlight.
func (v *GridView) Draw(w *world.World, overlays *OverlayRegistry, selected *world.Animal) {
	t := v.renderer.Theme
	v.sync(w)
	size := int32(v.cam.Scale())
	fontSize := max(int32(v.cam.Scale()*0.6), 8)

	rl.BeginScissorMode(int32(v.bounds.X), int32(v.bounds.Y), int32(v.bounds.Width), int32(v.bounds.Height))
	defer rl.EndScissorMode()

	grid := w.Grid()
	for x := range grid {
		for y, a := range grid[x] {
			if !v.cam.IsVisible(float32(x)+0.5, float32(y)+0.5, 0.5) {
				continue
			}
			r := v.cellRect(x, y)
			cx, cy := int32(r.X), int32(r.Y)
			rl.DrawRectangle(cx, cy, size, size, t.CellBg)

			if a == nil {
				v.renderer.DrawCenteredText(".", cx+size/2, cy+size/2, fontSize, t.EmptyMark)
			} else {
				snap := a.Snapshot()
				if shade, ok := cellShade(overlays, &snap); ok {
					rl.DrawRectangle(cx, cy, size, size, rl.Fade(kindColor(t, snap.Kind), shade*0.45))
				}
				v.renderer.DrawCenteredText(string(snap.Kind.Symbol()), cx+size/2, cy+size/2, fontSize, kindColor(t, snap.Kind))
			}

			if overlays.IsEnabled(OverlayGridLines) {
				rl.DrawRectangleLines(cx, cy, size, size, t.CellBorder)
			}
		}
	}

	if selected == nil {
		return
	}
	pos, ok := selected.Position()
	if !ok {
		return
	}
	if overlays.IsEnabled(OverlayRanges) {
		v.drawRange(w, selected, pos)
	}
	rl.DrawRectangleLinesEx(v.cellRect(pos.X, pos.Y), 3, t.Highlight)
}

// drawRange tints every cell within the selected animal's hunt or flee range.
func (v *GridView) drawRange(w *world.World, a *world.Animal, pos components.Position) {
	t := v.renderer.Theme
	rng, fill := w.Params().FleeRange, t.FleeRangeFill
	if a.Kind() == components.KindPredator {
		rng, fill = w.Params().HuntRange, t.HuntRangeFill
	}

	for x := pos.X - rng; x <= pos.X+rng; x++ {
		for y := pos.Y - rng; y <= pos.Y+rng; y++ {
			p := components.Position{X: x, Y: y}
			if !w.IsValidPosition(p) || pos.DistanceTo(p) > rng {
				continue
			}
			rl.DrawRectangleRec(v.cellRect(x, y), fill)
		}
	}
}

// cellShade returns the fill strength for an occupied cell under the active shade overlay.
func cellShade(overlays *OverlayRegistry, s *components.Snapshot) (float32, bool) {
	switch {
	case overlays.IsEnabled(OverlayEnergyShade):
		return components.GetAnimalValue(s, "energy"), true
	case overlays.IsEnabled(OverlayAgeShade):
		return components.GetAnimalValue(s, "age"), true
	}
	return 0, false
}

func kindColor(t Theme, k components.Kind) rl.Color {
	if k == components.KindPredator {
		return t.PredatorColor
	}
	return t.PreyColor
}
