package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/lucasb-eyer/go-colorful"
)

// hexColor converts a "#rrggbb" theme constant.
func hexColor(hex string) color.Color {
	return colorful.MustParseHex(hex)
}

// newText creates a styled canvas.Text.
func newText(text, hex string, size float32, bold bool) *canvas.Text {
	t := canvas.NewText(text, hexColor(hex))
	t.TextSize = size
	t.TextStyle = fyne.TextStyle{Bold: bold}
	t.Alignment = fyne.TextAlignCenter
	return t
}

// DragSurface wraps the clock face and reports primary-button drags and
// secondary taps. Positions are relative to the canvas.
type DragSurface struct {
	widget.BaseWidget
	content   fyne.CanvasObject
	onPointer func(kind EventKind, pos fyne.Position)
}

// NewDragSurface creates a surface around content.
func NewDragSurface(content fyne.CanvasObject, onPointer func(EventKind, fyne.Position)) *DragSurface {
	s := &DragSurface{content: content, onPointer: onPointer}
	s.ExtendBaseWidget(s)
	return s
}

func (s *DragSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.content)
}

// MouseDown anchors a drag on the primary button only.
func (s *DragSurface) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary {
		s.onPointer(EventPointerDown, ev.AbsolutePosition)
	}
}

func (s *DragSurface) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary {
		s.onPointer(EventPointerUp, ev.AbsolutePosition)
	}
}

func (s *DragSurface) Dragged(ev *fyne.DragEvent) {
	s.onPointer(EventPointerMove, ev.AbsolutePosition)
}

func (s *DragSurface) DragEnd() {
	s.onPointer(EventPointerUp, fyne.Position{})
}

// TappedSecondary opens the context menu.
func (s *DragSurface) TappedSecondary(ev *fyne.PointEvent) {
	s.onPointer(EventSecondaryTap, ev.AbsolutePosition)
}

// CloseButton is the header glyph that closes the overlay. It turns red
// while hovered.
type CloseButton struct {
	widget.BaseWidget
	glyph   *canvas.Text
	normal  color.Color
	hovered color.Color
	onTap   func()
}

// NewCloseButton creates a close glyph.
func NewCloseButton(glyph *canvas.Text, hovered color.Color, onTap func()) *CloseButton {
	b := &CloseButton{
		glyph:   glyph,
		normal:  glyph.Color,
		hovered: hovered,
		onTap:   onTap,
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *CloseButton) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.glyph)
}

func (b *CloseButton) Tapped(*fyne.PointEvent) {
	b.onTap()
}

func (b *CloseButton) MouseIn(*desktop.MouseEvent) {
	b.glyph.Color = b.hovered
	b.glyph.Refresh()
}

func (b *CloseButton) MouseMoved(*desktop.MouseEvent) {}

func (b *CloseButton) MouseOut() {
	b.glyph.Color = b.normal
	b.glyph.Refresh()
}

// Cursor shows a pointing hand over the glyph.
func (b *CloseButton) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}
