package engine

// DragController turns pointer gestures into window positions.
// All coordinates are in screen space. Positions are never clamped, so the
// window may be dragged fully off-screen.
type DragController struct {
	anchorX int
	anchorY int
	originX int
	originY int
	active  bool
}

// PointerDown starts a drag session with the pointer at (px, py) over a
// window whose origin is (wx, wy).
func (d *DragController) PointerDown(px, py, wx, wy int) {
	d.anchorX = px - wx
	d.anchorY = py - wy
	d.originX, d.originY = wx, wy
	d.active = true
}

// PointerMove returns the window origin that keeps the anchor under the
// pointer. ok is false outside a drag session.
func (d *DragController) PointerMove(px, py int) (x, y int, ok bool) {
	if !d.active {
		return 0, 0, false
	}
	return px - d.anchorX, py - d.anchorY, true
}

// PointerUp ends the drag session.
func (d *DragController) PointerUp() {
	d.active = false
}

// Origin returns the window origin recorded at pointer-down.
func (d *DragController) Origin() (x, y int) {
	return d.originX, d.originY
}

// Active reports whether a drag session is in progress.
func (d *DragController) Active() bool {
	return d.active
}
