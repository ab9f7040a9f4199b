package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/nepal-clock/internal/config"
	"github.com/tartampluch/nepal-clock/internal/engine"
	"github.com/tartampluch/nepal-clock/internal/platform"
	"github.com/tartampluch/nepal-clock/internal/settings"
)

// SettingsStore loads and saves the window placement.
type SettingsStore interface {
	Load(screenWidth int) settings.WindowSettings
	Save(ws settings.WindowSettings) error
}

// ClockOverlay owns every piece of mutable UI state: the placement record,
// the drag session, the tick scheduler and the widgets it updates.
type ClockOverlay struct {
	App       fyne.App
	Window    fyne.Window
	Store     SettingsStore
	WM        platform.WindowManager
	Formatter *engine.Formatter
	Clock     engine.Clock     // Injected clock for testability
	AfterFunc engine.AfterFunc // Injected timer factory for testability

	I18nBundle *i18n.Bundle
	Localizer  *i18n.Localizer

	Scheduler *engine.TickScheduler
	Drag      engine.DragController

	// Settings is the live placement; it reaches disk on close and reset.
	Settings settings.WindowSettings
	opacity  float64

	Menu        *fyne.Menu
	TopmostItem *fyne.MenuItem

	timeText   *canvas.Text
	ampmText   *canvas.Text
	dateText   *canvas.Text
	offsetText *canvas.Text
	statusDot  *canvas.Text

	bindings map[binding]Handler
	closing  bool
}

// NewClockOverlay constructs the overlay and wires dependencies.
func NewClockOverlay(a fyne.App, store SettingsStore, wm platform.WindowManager, formatter *engine.Formatter) *ClockOverlay {
	o := &ClockOverlay{
		App:       a,
		Store:     store,
		WM:        wm,
		Formatter: formatter,
		Clock:     engine.RealClock{}, // Default to real clock in production
		AfterFunc: uiAfterFunc,
		opacity:   config.OpacityIdle,
	}
	o.bindHandlers()
	return o
}

// uiAfterFunc arms a wall-clock timer whose callback runs on the Fyne thread.
func uiAfterFunc(d time.Duration, f func()) engine.Timer {
	return time.AfterFunc(d, func() { fyne.Do(f) })
}

// Run shows the overlay and blocks in the Fyne event loop.
func (o *ClockOverlay) Run() {
	o.Show()
	o.App.Run()
}

// Show builds the window from the stored placement, shows it and starts
// ticking. Window-manager attributes are applied once the loop has started
// and the native window exists.
func (o *ClockOverlay) Show() {
	if o.Localizer == nil {
		o.SetupI18n()
	}

	o.Settings = o.Store.Load(o.WM.ScreenWidth())

	o.Window = o.newWindow()
	o.Window.SetPadded(false)
	o.Window.SetContent(o.buildContent())
	o.resize()
	o.buildMenu()
	o.registerWindowEvents()

	o.Scheduler = engine.NewTickScheduler(config.TickInterval, o.AfterFunc, o.tick)

	o.Window.Show()
	o.Scheduler.Start()
}

// newWindow prefers a borderless splash window when the driver offers one.
func (o *ClockOverlay) newWindow() fyne.Window {
	if drv, ok := o.App.Driver().(desktop.Driver); ok {
		w := drv.CreateSplashWindow()
		w.SetTitle(o.GetMsg(config.TKeyWinTitle))
		return w
	}
	return o.App.NewWindow(o.GetMsg(config.TKeyWinTitle))
}

func (o *ClockOverlay) buildContent() fyne.CanvasObject {
	secondary := config.ColorSecondary

	location := newText(o.GetMsg(config.TKeyLblLocation), secondary, config.TextSizeHeader, true)
	location.Alignment = fyne.TextAlignLeading

	closeGlyph := newText(config.GlyphClose, secondary, config.TextSizeClose, true)
	closeBtn := NewCloseButton(closeGlyph, hexColor(config.ColorCloseHovered), func() {
		o.Dispatch(EventTap, RoleCloseButton, Event{})
	})
	header := container.NewHBox(location, layout.NewSpacer(), closeBtn)

	o.timeText = newText(config.PlaceholderTime, config.ColorPrimary, config.TextSizeTime, true)
	o.ampmText = newText(config.PlaceholderAMPM, secondary, config.TextSizeAMPM, false)
	o.dateText = newText(config.PlaceholderDate, config.ColorText, config.TextSizeDate, false)
	o.offsetText = newText(config.PlaceholderOffset, secondary, config.TextSizeOffset, false)

	o.statusDot = newText(config.GlyphStatus, config.ColorAccent, config.TextSizeStatus, false)
	live := newText(o.GetMsg(config.TKeyLblLive), secondary, config.TextSizeStatus, false)
	status := container.NewCenter(container.NewHBox(o.statusDot, live))

	face := container.NewVBox(header, o.timeText, o.ampmText, o.dateText, o.offsetText, status)
	background := canvas.NewRectangle(hexColor(config.ColorBackground))

	return NewDragSurface(container.NewStack(background, container.NewPadded(face)), o.pointer)
}

func (o *ClockOverlay) registerWindowEvents() {
	o.Window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		o.Dispatch(EventKey, RoleWindow, Event{Key: ev.Name})
	})
	o.Window.SetCloseIntercept(func() {
		o.Dispatch(EventCloseRequest, RoleWindow, Event{})
	})

	lc := o.App.Lifecycle()
	lc.SetOnEnteredForeground(func() { o.Dispatch(EventFocusIn, RoleWindow, Event{}) })
	lc.SetOnExitedForeground(func() { o.Dispatch(EventFocusOut, RoleWindow, Event{}) })
	lc.SetOnStarted(o.attachNative)
}

// attachNative hands the X11 window id to the window manager and applies
// the stored placement, stacking and opacity.
func (o *ClockOverlay) attachNative() {
	log := slog.With(config.LogKeyComponent, config.CompUI)

	if nw, ok := o.Window.(driver.NativeWindow); ok {
		nw.RunNative(func(ctx any) {
			var handle uintptr
			switch c := ctx.(type) {
			case driver.X11WindowContext:
				handle = c.WindowHandle
			case *driver.X11WindowContext:
				handle = c.WindowHandle
			default:
				log.Debug(config.MsgNativeSkip)
				return
			}
			if err := o.WM.Attach(handle); err != nil {
				log.Warn(config.ErrWMApply, config.LogKeyError, err)
				return
			}
			log.Info(config.MsgX11Attached)
		})
	}

	o.applyPlacement()
}

func (o *ClockOverlay) applyPlacement() {
	o.applyWM(o.WM.Move(o.Settings.X, o.Settings.Y))
	o.applyWM(o.WM.SetAlwaysOnTop(o.Settings.AlwaysOnTop))
	o.applyWM(o.WM.SetOpacity(o.opacity))
}

// applyWM logs a failed window-manager request; the overlay keeps running
// on its tracked state.
func (o *ClockOverlay) applyWM(err error) {
	if err == nil {
		return
	}
	level := slog.LevelWarn
	if errors.Is(err, platform.ErrNoWindow) {
		level = slog.LevelDebug
	}
	slog.Log(context.Background(), level, config.ErrWMApply,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyError, err)
}

func (o *ClockOverlay) resize() {
	o.Window.Resize(fyne.NewSize(float32(o.Settings.Width), float32(o.Settings.Height)))
	if h, ok := o.WM.(*platform.Headless); ok {
		h.Resize(o.Settings.Width, o.Settings.Height)
	}
}

// tick renders the current instant. Errors skip this tick only.
func (o *ClockOverlay) tick(phase bool) error {
	d, err := o.Formatter.Format(o.Clock.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrTickFailed, err)
	}
	o.render(engine.ClockState{Display: d, StatusPhase: phase})
	return nil
}

func (o *ClockOverlay) render(state engine.ClockState) {
	setText(o.timeText, state.TimeText)
	setText(o.ampmText, state.AMPMText)
	setText(o.dateText, state.DateText)
	setText(o.offsetText, state.OffsetText)

	dot := config.ColorAccent
	if state.StatusPhase {
		dot = config.ColorPrimary
	}
	o.statusDot.Color = hexColor(dot)
	o.statusDot.Refresh()
}

func setText(t *canvas.Text, s string) {
	if t.Text == s {
		return
	}
	t.Text = s
	t.Refresh()
}

// pointer converts a canvas position into screen coordinates and dispatches.
func (o *ClockOverlay) pointer(kind EventKind, pos fyne.Position) {
	x, y := o.toScreen(pos)
	o.Dispatch(kind, RoleSurface, Event{X: x, Y: y, Position: pos})
}

func (o *ClockOverlay) toScreen(pos fyne.Position) (int, int) {
	if x, y, err := o.WM.PointerPosition(); err == nil {
		return x, y
	}
	scale := float32(1)
	if o.Window != nil {
		scale = o.Window.Canvas().Scale()
	}
	// Canvas positions are relative to where the window sat when the drag
	// began; the tracked origin moves with every drag event.
	ox, oy := o.Settings.X, o.Settings.Y
	if o.Drag.Active() {
		ox, oy = o.Drag.Origin()
	}
	return ox + int(pos.X*scale), oy + int(pos.Y*scale)
}

// syncPosition adopts the window-manager origin when it is known, in case
// the window was moved by something other than a drag.
func (o *ClockOverlay) syncPosition() {
	if rect, err := o.WM.Geometry(); err == nil {
		o.Settings.X, o.Settings.Y = rect.X, rect.Y
	}
}

func (o *ClockOverlay) onPointerDown(ev Event) {
	o.syncPosition()
	o.Drag.PointerDown(ev.X, ev.Y, o.Settings.X, o.Settings.Y)
}

func (o *ClockOverlay) onPointerMove(ev Event) {
	x, y, ok := o.Drag.PointerMove(ev.X, ev.Y)
	if !ok {
		return
	}
	o.Settings.X, o.Settings.Y = x, y
	o.applyWM(o.WM.Move(x, y))
}

func (o *ClockOverlay) onPointerUp(Event) {
	if !o.Drag.Active() {
		return
	}
	o.Drag.PointerUp()
	slog.Debug(config.MsgDragEnd,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyX, o.Settings.X,
		config.LogKeyY, o.Settings.Y)
}

func (o *ClockOverlay) onSecondaryTap(ev Event) {
	if o.Window == nil || o.Menu == nil {
		return
	}
	widget.ShowPopUpMenuAtPosition(o.Menu, o.Window.Canvas(), ev.Position)
}

func (o *ClockOverlay) onKey(ev Event) {
	if ev.Key == fyne.KeyEscape {
		o.Close("key")
	}
}

// Focus always wins over the transparency toggle: leaving focus restores the
// idle level whatever the user selected.
func (o *ClockOverlay) onFocusIn(Event)  { o.setOpacity(config.OpacityOpaque) }
func (o *ClockOverlay) onFocusOut(Event) { o.setOpacity(config.OpacityIdle) }

// Opacity returns the level last requested from the window manager.
func (o *ClockOverlay) Opacity() float64 {
	return o.opacity
}

func (o *ClockOverlay) setOpacity(alpha float64) {
	o.opacity = alpha
	o.applyWM(o.WM.SetOpacity(alpha))
	slog.Debug(config.MsgOpacityChanged,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyOpacity, alpha)
}

// Close saves the placement exactly once, then stops the timer and tears
// the window down. Later calls are ignored.
func (o *ClockOverlay) Close(trigger string) {
	log := slog.With(config.LogKeyComponent, config.CompUI, config.LogKeyTrigger, trigger)
	if o.closing {
		log.Debug(config.MsgCloseRepeat)
		return
	}
	o.closing = true
	log.Info(config.MsgClosing)

	o.syncPosition()
	// Save logs its own failure; closing continues regardless.
	_ = o.Store.Save(o.Settings)

	if o.Scheduler != nil {
		o.Scheduler.Stop()
	}
	if o.Window != nil {
		o.Window.Close()
	}
	o.WM.Close()
	o.App.Quit()
}

// Closed reports whether Close has run.
func (o *ClockOverlay) Closed() bool {
	return o.closing
}
