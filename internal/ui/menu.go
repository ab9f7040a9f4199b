package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/nepal-clock/internal/config"
	"github.com/tartampluch/nepal-clock/internal/settings"
)

// buildMenu constructs the context menu shown on secondary tap.
func (o *ClockOverlay) buildMenu() {
	o.TopmostItem = fyne.NewMenuItem(o.GetMsg(config.TKeyMenuTopmost), func() {
		o.Dispatch(EventActivate, RoleMenuTopmost, Event{})
	})
	o.TopmostItem.Checked = o.Settings.AlwaysOnTop

	reset := fyne.NewMenuItem(o.GetMsg(config.TKeyMenuReset), func() {
		o.Dispatch(EventActivate, RoleMenuReset, Event{})
	})
	transparency := fyne.NewMenuItem(o.GetMsg(config.TKeyMenuTransparent), func() {
		o.Dispatch(EventActivate, RoleMenuTransparency, Event{})
	})
	exit := fyne.NewMenuItem(o.GetMsg(config.TKeyMenuExit), func() {
		o.Dispatch(EventActivate, RoleMenuExit, Event{})
	})

	o.Menu = fyne.NewMenu(o.GetMsg(config.TKeyMenuTitle),
		o.TopmostItem,
		fyne.NewMenuItemSeparator(),
		reset,
		transparency,
		fyne.NewMenuItemSeparator(),
		exit,
	)
}

// ToggleAlwaysOnTop flips the stacking flag and the menu check mark.
func (o *ClockOverlay) ToggleAlwaysOnTop() {
	o.Settings.AlwaysOnTop = !o.Settings.AlwaysOnTop
	o.applyWM(o.WM.SetAlwaysOnTop(o.Settings.AlwaysOnTop))

	if o.TopmostItem != nil {
		o.TopmostItem.Checked = o.Settings.AlwaysOnTop
		o.Menu.Refresh()
	}

	slog.Info(config.MsgTopmostToggled,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyTopmost, o.Settings.AlwaysOnTop)
}

// ToggleTransparency switches between fully opaque and the dimmed level.
func (o *ClockOverlay) ToggleTransparency() {
	if o.opacity < config.OpacityOpaque {
		o.setOpacity(config.OpacityOpaque)
		return
	}
	o.setOpacity(config.OpacityDimmed)
}

// ResetPosition moves the window back to the default top-right placement
// and persists it. The always-on-top flag is kept.
func (o *ClockOverlay) ResetPosition() {
	def := settings.Default(o.WM.ScreenWidth())
	def.AlwaysOnTop = o.Settings.AlwaysOnTop
	o.Settings = def

	if o.Window != nil {
		o.resize()
	}
	o.applyWM(o.WM.Move(o.Settings.X, o.Settings.Y))

	slog.Info(config.MsgPositionReset,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyX, o.Settings.X,
		config.LogKeyY, o.Settings.Y)

	_ = o.Store.Save(o.Settings)
}
