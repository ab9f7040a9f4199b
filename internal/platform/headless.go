package platform

// Headless tracks window attributes in memory. It stands in when no X11
// server is reachable, and in tests.
type Headless struct {
	Screen      int
	Bounds      Rect
	AlwaysOnTop bool
	Opacity     float64
	Handle      uintptr

	// Moves counts Move calls.
	Moves  int
	placed bool
}

// NewHeadless creates a backend reporting the given screen width.
func NewHeadless(screenWidth int) *Headless {
	return &Headless{Screen: screenWidth, Opacity: 1}
}

func (h *Headless) ScreenWidth() int { return h.Screen }

func (h *Headless) Attach(handle uintptr) error {
	h.Handle = handle
	return nil
}

func (h *Headless) Move(x, y int) error {
	h.Bounds.X, h.Bounds.Y = x, y
	h.Moves++
	h.placed = true
	return nil
}

// Resize records the size the toolkit was asked to use.
func (h *Headless) Resize(width, height int) {
	h.Bounds.Width, h.Bounds.Height = width, height
}

// Geometry fails until the first Move, since no origin is known before it.
func (h *Headless) Geometry() (Rect, error) {
	if !h.placed {
		return Rect{}, ErrNoWindow
	}
	return h.Bounds, nil
}

func (h *Headless) SetAlwaysOnTop(on bool) error {
	h.AlwaysOnTop = on
	return nil
}

func (h *Headless) SetOpacity(alpha float64) error {
	h.Opacity = alpha
	return nil
}

// PointerPosition is not tracked; callers derive it from event positions.
func (h *Headless) PointerPosition() (int, int, error) {
	return 0, 0, ErrNoPointer
}

func (h *Headless) Close() {}
