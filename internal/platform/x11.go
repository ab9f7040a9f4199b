package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/tartampluch/nepal-clock/internal/config"
)

// X11 drives the overlay window through EWMH requests on its own X
// connection. The window itself is created and painted by Fyne.
type X11 struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
	win   xproto.Window
}

// ConnectX11 establishes a connection to the X11 server.
func ConnectX11() (*X11, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrX11Connect, err)
	}
	return &X11{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// ScreenWidth returns the width of the default screen in pixels.
func (x *X11) ScreenWidth() int {
	screen := x.XUtil.Screen()
	if screen == nil {
		return config.FallbackScreenWidth
	}
	return int(screen.WidthInPixels)
}

// Attach binds the X window id reported by the toolkit.
func (x *X11) Attach(handle uintptr) error {
	if handle == 0 {
		return ErrNoWindow
	}
	x.win = xproto.Window(handle)
	return nil
}

// Move places the window origin at (px, py) in root coordinates.
func (x *X11) Move(px, py int) error {
	if x.win == 0 {
		return ErrNoWindow
	}

	// EWMH moves need the current size; fall back to a raw configure.
	if rect, err := x.Geometry(); err == nil {
		if err := ewmh.MoveresizeWindow(x.XUtil, x.win, px, py, rect.Width, rect.Height); err == nil {
			return nil
		}
	}

	err := xproto.ConfigureWindowChecked(x.XUtil.Conn(), x.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(px)), uint32(int32(py))},
	).Check()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrX11Move, err)
	}
	return nil
}

// Geometry reports the window origin in root coordinates and its size.
func (x *X11) Geometry() (Rect, error) {
	if x.win == 0 {
		return Rect{}, ErrNoWindow
	}

	geom, err := xproto.GetGeometry(x.XUtil.Conn(), xproto.Drawable(x.win)).Reply()
	if err != nil {
		return Rect{}, fmt.Errorf("%s: %w", config.ErrX11Geometry, err)
	}

	translate, err := xproto.TranslateCoordinates(
		x.XUtil.Conn(),
		x.win,
		x.Root,
		0, 0,
	).Reply()
	if err != nil {
		return Rect{}, fmt.Errorf("%s: %w", config.ErrX11Geometry, err)
	}

	return Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// SetAlwaysOnTop adds or removes _NET_WM_STATE_ABOVE.
func (x *X11) SetAlwaysOnTop(on bool) error {
	if x.win == 0 {
		return ErrNoWindow
	}

	action := config.NetWMStateRm
	if on {
		action = config.NetWMStateAdd
	}
	if err := ewmh.WmStateReq(x.XUtil, x.win, action, config.NetWMStateAbove); err != nil {
		return fmt.Errorf("%s: %w", config.ErrX11Above, err)
	}
	return nil
}

// SetOpacity sets _NET_WM_WINDOW_OPACITY; compositors honor it, others ignore it.
func (x *X11) SetOpacity(alpha float64) error {
	if x.win == 0 {
		return ErrNoWindow
	}

	alpha = min(max(alpha, 0), 1)
	value := uint(alpha * config.OpacityMaxX11)
	if err := xprop.ChangeProp32(x.XUtil, x.win, config.OpacityX11Prop, config.PropTypeCard, value); err != nil {
		return fmt.Errorf("%s: %w", config.ErrX11Opacity, err)
	}
	return nil
}

// PointerPosition queries the pointer on the root window.
func (x *X11) PointerPosition() (int, int, error) {
	pointer, err := xproto.QueryPointer(x.XUtil.Conn(), x.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", config.ErrX11Pointer, err)
	}
	return int(pointer.RootX), int(pointer.RootY), nil
}

// Close cleanly disconnects from the X11 server.
func (x *X11) Close() {
	x.XUtil.Conn().Close()
}
