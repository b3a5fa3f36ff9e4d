package render

// Camera translates between level coordinates and screen coordinates.
// Level X is multiplied by the tile width because emoji occupy 2 terminal columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	TileWidth  int // terminal columns per level cell
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera centered on (cx, cy).
func NewCamera(cx, cy, tileWidth, viewW, viewH int) *Camera {
	c := &Camera{TileWidth: tileWidth, ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Center repositions the camera so that level position (cx, cy) is in the middle.
// A level that fits the viewport is pinned to the top-left corner instead.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - (c.ViewWidth/2)/c.TileWidth
	c.OffsetY = cy - c.ViewHeight/2
}

// Fit centers the camera on a w×h level, or pins it to the origin when the
// whole level fits on screen.
func (c *Camera) Fit(w, h int) {
	c.Center(w/2, h/2)
	if w*c.TileWidth <= c.ViewWidth {
		c.OffsetX = 0
	}
	if h <= c.ViewHeight {
		c.OffsetY = 0
	}
}

// WorldToScreen converts level (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * c.TileWidth
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx+c.TileWidth <= c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}
