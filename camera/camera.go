// Package camera provides a 2D camera for viewing a bounded grid.
package camera

// Camera maps grid coordinates (in cells) to viewport pixels.
// At zoom 1 the whole grid fits the viewport; zooming in magnifies around the
// camera center, which is kept over the grid.
type Camera struct {
	// Position is the camera center in grid coordinates
	X, Y float32

	// Zoom level (1.0 = whole grid visible)
	Zoom float32

	// Viewport dimensions in pixels
	ViewportW, ViewportH float32

	// Grid dimensions in cells
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the grid with the whole grid visible.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	return &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   1.0,
		MaxZoom:   4.0,
	}
}

// Scale returns pixels per cell at the current zoom.
func (c *Camera) Scale() float32 {
	if c.WorldW <= 0 || c.WorldH <= 0 {
		return 0
	}
	return min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH) * c.Zoom
}

// WorldToScreen converts grid coordinates to viewport pixels.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.Scale()
	sx = c.ViewportW/2 + (wx-c.X)*s
	sy = c.ViewportH/2 + (wy-c.Y)*s
	return sx, sy
}

// ScreenToWorld converts viewport pixels to grid coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale()
	if s == 0 {
		return c.X, c.Y
	}
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y + (sy-c.ViewportH/2)/s
	return wx, wy
}

// CellAt returns the grid cell under a viewport pixel.
func (c *Camera) CellAt(sx, sy float32) (x, y int, ok bool) {
	wx, wy := c.ScreenToWorld(sx, sy)
	if wx < 0 || wy < 0 || wx >= c.WorldW || wy >= c.WorldH {
		return 0, 0, false
	}
	return int(wx), int(wy), true
}

// IsVisible returns true if a square of the given half-size centered at
// (wx, wy) overlaps the viewport (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX && wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.clampCenter()
}

// SetWorld switches to a grid of a new size and resets the view.
func (c *Camera) SetWorld(worldW, worldH float32) {
	if worldW == c.WorldW && worldH == c.WorldH {
		return
	}
	c.WorldW = worldW
	c.WorldH = worldH
	c.Reset()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	if s == 0 {
		return
	}
	c.X += dx / s
	c.Y += dy / s
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the grid point under (sx, sy) in place.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)
	s := c.Scale()
	if s == 0 {
		return
	}
	c.X = wx - (sx-c.ViewportW/2)/s
	c.Y = wy - (sy-c.ViewportH/2)/s
	c.clampCenter()
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the grid-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY); the bounds may extend past the grid.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	s := c.Scale()
	if s == 0 {
		return c.X, c.Y, c.X, c.Y
	}
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// clampCenter keeps the grid covering the viewport on every axis where it is
// larger than the view, and centered on axes where it is not.
func (c *Camera) clampCenter() {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	c.X = clampAxis(c.X, (maxX-minX)/2, c.WorldW)
	c.Y = clampAxis(c.Y, (maxY-minY)/2, c.WorldH)
}

func clampAxis(center, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
