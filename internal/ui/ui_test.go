package ui

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/nepal-clock/internal/config"
	"github.com/tartampluch/nepal-clock/internal/engine"
	"github.com/tartampluch/nepal-clock/internal/platform"
	"github.com/tartampluch/nepal-clock/internal/settings"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockStore simulates the settings file using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(screenWidth int) settings.WindowSettings {
	args := m.Called(screenWidth)
	return args.Get(0).(settings.WindowSettings)
}

func (m *MockStore) Save(ws settings.WindowSettings) error {
	args := m.Called(ws)
	return args.Error(0)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// fakeTimers records armed timers so tests fire ticks without waiting.
type fakeTimers struct {
	armed []func()
}

type fakeTimer struct{}

func (fakeTimer) Stop() bool { return true }

func (f *fakeTimers) After(_ time.Duration, fn func()) engine.Timer {
	f.armed = append(f.armed, fn)
	return fakeTimer{}
}

func (f *fakeTimers) fireLast(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, f.armed)
	f.armed[len(f.armed)-1]()
}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

const testScreenWidth = 1920

var storedSettings = settings.WindowSettings{X: 100, Y: 200, Width: 280, Height: 180, AlwaysOnTop: true}

// 06:20:30 UTC is 12:05:30 PM in Kathmandu.
var testInstant = time.Date(2025, time.March, 10, 6, 20, 30, 0, time.UTC)

type testRig struct {
	overlay *ClockOverlay
	store   *MockStore
	wm      *platform.Headless
	timers  *fakeTimers
}

// setupTestOverlay shows a headless overlay with mocked dependencies.
func setupTestOverlay(t *testing.T) *testRig {
	a := test.NewApp()

	store := new(MockStore)
	store.On("Load", testScreenWidth).Return(storedSettings)

	wm := platform.NewHeadless(testScreenWidth)

	formatter, err := engine.NewFormatter(config.TimeZone)
	require.NoError(t, err)

	o := NewClockOverlay(a, store, wm, formatter)
	o.Clock = MockClock{CurrentTime: testInstant}

	timers := &fakeTimers{}
	o.AfterFunc = timers.After

	o.Show()
	// The lifecycle start hook does not run under the test driver.
	o.attachNative()

	return &testRig{overlay: o, store: store, wm: wm, timers: timers}
}

// -----------------------------------------------------------------------------
// Startup & Rendering
// -----------------------------------------------------------------------------

func TestShow_AppliesStoredPlacement(t *testing.T) {
	rig := setupTestOverlay(t)

	assert.Equal(t, storedSettings, rig.overlay.Settings)
	assert.Equal(t, platform.Rect{X: 100, Y: 200, Width: 280, Height: 180}, rig.wm.Bounds)
	assert.True(t, rig.wm.AlwaysOnTop)
	assert.InDelta(t, config.OpacityIdle, rig.wm.Opacity, 1e-9)
	assert.True(t, rig.overlay.TopmostItem.Checked)
	rig.store.AssertCalled(t, "Load", testScreenWidth)
}

func TestShow_RendersFirstTickImmediately(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay

	assert.Equal(t, engine.Running, o.Scheduler.State())
	assert.Equal(t, "12:05:30", o.timeText.Text)
	assert.Equal(t, "PM", o.ampmText.Text)
	assert.Equal(t, "Monday, March 10, 2025", o.dateText.Text)
	assert.Equal(t, "GMT +5:45", o.offsetText.Text)
}

func TestTick_UpdatesLabelsAndPulsesStatusDot(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay

	first := o.statusDot.Color
	o.Clock = MockClock{CurrentTime: testInstant.Add(time.Second)}
	rig.timers.fireLast(t)

	assert.Equal(t, "12:05:31", o.timeText.Text)
	second := o.statusDot.Color
	assert.NotEqual(t, first, second)

	rig.timers.fireLast(t)
	assert.Equal(t, first, o.statusDot.Color, "dot must alternate between two colors")
}

func TestTick_FormattingErrorSkipsTickOnly(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay

	before := o.timeText.Text
	o.Formatter = &engine.Formatter{} // no location
	o.Clock = MockClock{CurrentTime: testInstant.Add(time.Hour)}

	armed := len(rig.timers.armed)
	rig.timers.fireLast(t)

	assert.Equal(t, before, o.timeText.Text)
	assert.Equal(t, engine.Running, o.Scheduler.State())
	assert.Len(t, rig.timers.armed, armed+1, "next tick must still be armed")
}

// -----------------------------------------------------------------------------
// Dragging
// -----------------------------------------------------------------------------

func TestDrag_MovesWindowByPointerDelta(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay

	require.True(t, o.Dispatch(EventPointerDown, RoleSurface, Event{X: 150, Y: 210}))
	o.Dispatch(EventPointerMove, RoleSurface, Event{X: 450, Y: -90})

	assert.Equal(t, 400, o.Settings.X)
	assert.Equal(t, -100, o.Settings.Y)
	assert.Equal(t, 400, rig.wm.Bounds.X)
	assert.Equal(t, -100, rig.wm.Bounds.Y)

	o.Dispatch(EventPointerUp, RoleSurface, Event{})
	o.Dispatch(EventPointerMove, RoleSurface, Event{X: 0, Y: 0})
	assert.Equal(t, 400, o.Settings.X, "moves after release are ignored")
}

func TestDrag_FromCanvasPositions(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay

	// Headless has no pointer query, so screen coordinates come from the
	// tracked origin plus the canvas position.
	o.pointer(EventPointerDown, fyne.NewPos(50, 10))
	o.pointer(EventPointerMove, fyne.NewPos(60, 30))

	assert.Equal(t, 110, o.Settings.X)
	assert.Equal(t, 220, o.Settings.Y)
}

func TestDrag_RepeatedCanvasMovesDoNotAccumulate(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay

	o.pointer(EventPointerDown, fyne.NewPos(50, 10))
	for range 3 {
		o.pointer(EventPointerMove, fyne.NewPos(60, 30))
	}
	assert.Equal(t, 110, o.Settings.X)
	assert.Equal(t, 220, o.Settings.Y)

	o.pointer(EventPointerMove, fyne.NewPos(20, 0))
	assert.Equal(t, 70, o.Settings.X)
	assert.Equal(t, 190, o.Settings.Y)

	o.pointer(EventPointerUp, fyne.Position{})
	rig.store.On("Save", mock.Anything).Return(nil)
	o.Close("button")
	rig.store.AssertCalled(t, "Save", settings.WindowSettings{X: 70, Y: 190, Width: 280, Height: 180, AlwaysOnTop: true})
}

// -----------------------------------------------------------------------------
// Context Menu Actions
// -----------------------------------------------------------------------------

func TestMenu_Layout(t *testing.T) {
	rig := setupTestOverlay(t)
	items := rig.overlay.Menu.Items

	require.Len(t, items, 6)
	assert.Equal(t, "Always on Top", items[0].Label)
	assert.True(t, items[1].IsSeparator)
	assert.Equal(t, "Reset Position", items[2].Label)
	assert.Equal(t, "Toggle Transparency", items[3].Label)
	assert.True(t, items[4].IsSeparator)
	assert.Equal(t, "Exit", items[5].Label)
}

func TestSecondaryTap_ShowsContextMenu(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay

	o.Dispatch(EventSecondaryTap, RoleSurface, Event{Position: fyne.NewPos(20, 20)})

	assert.NotNil(t, o.Window.Canvas().Overlays().Top())
}

func TestToggleAlwaysOnTop(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay

	o.TopmostItem.Action()

	assert.False(t, o.Settings.AlwaysOnTop)
	assert.False(t, rig.wm.AlwaysOnTop)
	assert.False(t, o.TopmostItem.Checked)

	o.ToggleAlwaysOnTop()
	assert.True(t, rig.wm.AlwaysOnTop)
	assert.True(t, o.TopmostItem.Checked)

	rig.store.AssertNotCalled(t, "Save", mock.Anything)
}

func TestResetPosition_AppliesAndSavesDefault(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay

	o.ToggleAlwaysOnTop() // flag survives the reset
	want := settings.Default(testScreenWidth)
	want.AlwaysOnTop = false
	rig.store.On("Save", want).Return(nil).Once()

	o.Dispatch(EventActivate, RoleMenuReset, Event{})

	assert.Equal(t, want, o.Settings)
	assert.Equal(t, platform.Rect{X: 1620, Y: 50, Width: 280, Height: 180}, rig.wm.Bounds)
	rig.store.AssertExpectations(t)
}

func TestTransparency_FocusWins(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay

	o.Dispatch(EventActivate, RoleMenuTransparency, Event{})
	assert.InDelta(t, config.OpacityOpaque, rig.wm.Opacity, 1e-9)

	o.Dispatch(EventActivate, RoleMenuTransparency, Event{})
	assert.InDelta(t, config.OpacityDimmed, rig.wm.Opacity, 1e-9)

	o.Dispatch(EventFocusIn, RoleWindow, Event{})
	assert.InDelta(t, config.OpacityOpaque, o.Opacity(), 1e-9)

	o.Dispatch(EventFocusOut, RoleWindow, Event{})
	assert.InDelta(t, config.OpacityIdle, rig.wm.Opacity, 1e-9, "focus loss discards the toggled level")
}

// -----------------------------------------------------------------------------
// Closing
// -----------------------------------------------------------------------------

func TestClose_SavesExactlyOnceBeforeTeardown(t *testing.T) {
	triggers := []struct {
		name string
		fire func(o *ClockOverlay)
	}{
		{"CloseButton", func(o *ClockOverlay) { o.Dispatch(EventTap, RoleCloseButton, Event{}) }},
		{"MenuExit", func(o *ClockOverlay) { o.Menu.Items[len(o.Menu.Items)-1].Action() }},
		{"EscapeKey", func(o *ClockOverlay) { o.Dispatch(EventKey, RoleWindow, Event{Key: fyne.KeyEscape}) }},
		{"WindowManager", func(o *ClockOverlay) { o.Dispatch(EventCloseRequest, RoleWindow, Event{}) }},
		{"Signal", func(o *ClockOverlay) { o.Close("signal") }},
	}

	for _, tt := range triggers {
		t.Run(tt.name, func(t *testing.T) {
			rig := setupTestOverlay(t)
			o := rig.overlay

			rig.store.On("Save", storedSettings).Run(func(mock.Arguments) {
				assert.Equal(t, engine.Running, o.Scheduler.State(), "save must precede teardown")
			}).Return(nil).Once()

			tt.fire(o)
			// Every other trigger afterwards is a no-op.
			o.Close("again")
			o.Dispatch(EventTap, RoleCloseButton, Event{})

			rig.store.AssertNumberOfCalls(t, "Save", 1)
			assert.Equal(t, engine.Idle, o.Scheduler.State())
			assert.True(t, o.Closed())
		})
	}
}

func TestClose_PersistsDraggedPosition(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay

	o.Dispatch(EventPointerDown, RoleSurface, Event{X: 110, Y: 210})
	o.Dispatch(EventPointerMove, RoleSurface, Event{X: -1490, Y: 260})
	o.Dispatch(EventPointerUp, RoleSurface, Event{})

	want := storedSettings
	want.X, want.Y = -1500, 250
	rig.store.On("Save", want).Return(nil).Once()

	o.Close("button")

	rig.store.AssertExpectations(t)
}

func TestClose_SaveFailureStillTearsDown(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay
	rig.store.On("Save", mock.Anything).Return(errors.New("disk full")).Once()

	assert.NotPanics(t, func() { o.Close("menu") })

	assert.Equal(t, engine.Idle, o.Scheduler.State())
	assert.True(t, o.Closed())
}

func TestKey_OtherKeysIgnored(t *testing.T) {
	rig := setupTestOverlay(t)
	o := rig.overlay

	o.Dispatch(EventKey, RoleWindow, Event{Key: fyne.KeyReturn})

	assert.False(t, o.Closed())
	rig.store.AssertNotCalled(t, "Save", mock.Anything)
}

// -----------------------------------------------------------------------------
// Localization
// -----------------------------------------------------------------------------

func TestGetMsg_FallsBackToKey(t *testing.T) {
	o := &ClockOverlay{}
	assert.Equal(t, config.TKeyMenuExit, o.GetMsg(config.TKeyMenuExit), "no localizer yet")

	o.SetupI18n()
	assert.Equal(t, "Exit", o.GetMsg(config.TKeyMenuExit))
	assert.Equal(t, "missing_key", o.GetMsg("missing_key"))
}
