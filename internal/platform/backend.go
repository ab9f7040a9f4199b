// Package platform exposes the window-system operations Fyne does not offer
// portably: stacking, opacity, absolute placement and pointer queries.
package platform

import (
	"errors"

	"github.com/tartampluch/nepal-clock/internal/config"
)

var (
	// ErrNoWindow is returned by window operations before Attach.
	ErrNoWindow = errors.New(config.ErrX11NoWindow)
	// ErrNoPointer is returned when the backend cannot report the pointer.
	ErrNoPointer = errors.New(config.ErrNoPointer)
)

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// WindowManager abstracts window-system operations on the overlay window.
type WindowManager interface {
	// ScreenWidth is available before any window is attached.
	ScreenWidth() int
	// Attach binds the manager to a native window handle.
	Attach(handle uintptr) error
	Move(x, y int) error
	Geometry() (Rect, error)
	SetAlwaysOnTop(on bool) error
	SetOpacity(alpha float64) error
	// PointerPosition returns the pointer in screen coordinates.
	PointerPosition() (x, y int, err error)
	Close()
}
