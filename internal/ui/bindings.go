package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/nepal-clock/internal/config"
)

// EventKind identifies what happened.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventSecondaryTap
	EventTap
	EventKey
	EventFocusIn
	EventFocusOut
	EventActivate     // menu item chosen
	EventCloseRequest // window manager asked the window to close
)

var eventNames = [...]string{
	"pointer_down", "pointer_move", "pointer_up", "secondary_tap", "tap",
	"key", "focus_in", "focus_out", "activate", "close_request",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Role identifies which part of the overlay received the event.
type Role int

const (
	RoleSurface Role = iota // the whole clock face
	RoleCloseButton
	RoleWindow
	RoleMenuTopmost
	RoleMenuReset
	RoleMenuTransparency
	RoleMenuExit
)

var roleNames = [...]string{
	"surface", "close_button", "window", "menu_topmost", "menu_reset",
	"menu_transparency", "menu_exit",
}

func (r Role) String() string {
	if r >= 0 && int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Event carries the payload of a dispatched event.
// X and Y are screen coordinates; Position is relative to the canvas.
type Event struct {
	X, Y     int
	Position fyne.Position
	Key      fyne.KeyName
}

// Handler reacts to one dispatched event.
type Handler func(Event)

type binding struct {
	kind EventKind
	role Role
}

// bindHandlers builds the dispatch table. Every toolkit callback goes
// through Dispatch, so this table is the whole input surface of the overlay.
func (o *ClockOverlay) bindHandlers() {
	o.bindings = map[binding]Handler{
		{EventPointerDown, RoleSurface}:  o.onPointerDown,
		{EventPointerMove, RoleSurface}:  o.onPointerMove,
		{EventPointerUp, RoleSurface}:    o.onPointerUp,
		{EventSecondaryTap, RoleSurface}: o.onSecondaryTap,

		{EventTap, RoleCloseButton}: o.closeHandler("button"),

		{EventKey, RoleWindow}:          o.onKey,
		{EventFocusIn, RoleWindow}:      o.onFocusIn,
		{EventFocusOut, RoleWindow}:     o.onFocusOut,
		{EventCloseRequest, RoleWindow}: o.closeHandler("window"),

		{EventActivate, RoleMenuTopmost}:      func(Event) { o.ToggleAlwaysOnTop() },
		{EventActivate, RoleMenuReset}:        func(Event) { o.ResetPosition() },
		{EventActivate, RoleMenuTransparency}: func(Event) { o.ToggleTransparency() },
		{EventActivate, RoleMenuExit}:         o.closeHandler("menu"),
	}
}

// Dispatch routes an event to its bound handler. It reports whether a
// handler was found.
func (o *ClockOverlay) Dispatch(kind EventKind, role Role, ev Event) bool {
	h, ok := o.bindings[binding{kind, role}]
	if !ok {
		slog.Debug(config.MsgUnboundEvent,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyEvent, kind.String(),
			config.LogKeyRole, role.String())
		return false
	}
	h(ev)
	return true
}

func (o *ClockOverlay) closeHandler(trigger string) Handler {
	return func(Event) { o.Close(trigger) }
}
