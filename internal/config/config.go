package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName      = "Nepal Clock"
	AppID        = "com.github.tartampluch.nepal-clock"
	LogFileName  = "app.log"
	SettingsFile = "nepal_clock_settings.json"

	// TimeZone is the IANA zone rendered by the widget (UTC+5:45).
	TimeZone = "Asia/Kathmandu"

	// DefaultLanguage is the only message catalog shipped.
	DefaultLanguage = "en"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for log files.
	FilePermUserRW fs.FileMode = 0600

	// FilePermUserRWOthersR represents -rw-r--r--.
	// Used for the settings file, which holds nothing sensitive.
	FilePermUserRWOthersR fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// Window Geometry & Defaults
// -----------------------------------------------------------------------------

const (
	DefaultWidth  = 280
	DefaultHeight = 180

	// DefaultRightMargin is subtracted from the screen width to place the
	// window in the top-right corner.
	DefaultRightMargin = 300
	DefaultTop         = 50

	// Per-key fallbacks for settings files missing a field.
	FallbackX = 50
	FallbackY = 50

	DefaultAlwaysOnTop = true

	// FallbackScreenWidth is used when no window system reports a screen size.
	FallbackScreenWidth = 1920
)

// -----------------------------------------------------------------------------
// Opacity Levels
// -----------------------------------------------------------------------------

const (
	OpacityOpaque  = 1.0
	OpacityIdle    = 0.95 // Initial level and level restored on focus loss
	OpacityDimmed  = 0.85 // Level selected by "Toggle Transparency"
	OpacityMaxX11  = 0xffffffff
	OpacityX11Prop = "_NET_WM_WINDOW_OPACITY"
)

// -----------------------------------------------------------------------------
// Scheduling
// -----------------------------------------------------------------------------

const (
	TickInterval = 1000 * time.Millisecond
)

// -----------------------------------------------------------------------------
// Display Formats
// -----------------------------------------------------------------------------

const (
	FormatTime   = "3:04:05"
	FormatAMPM   = "PM"
	FormatDate   = "Monday, January 02, 2006"
	FormatOffset = "GMT %s%d:%02d"

	// Placeholders shown before the first tick.
	PlaceholderTime   = "00:00:00"
	PlaceholderAMPM   = "AM"
	PlaceholderDate   = "January 1, 2025"
	PlaceholderOffset = "GMT +5:45"

	GlyphClose  = "✕"
	GlyphStatus = "●"
)

// -----------------------------------------------------------------------------
// Theme Colors (hex RGB)
// -----------------------------------------------------------------------------

const (
	ColorBackground   = "#1a1a1a"
	ColorPrimary      = "#00d4aa"
	ColorSecondary    = "#888888"
	ColorText         = "#ffffff"
	ColorAccent       = "#4CAF50"
	ColorCloseHovered = "#ff4444"
)

// -----------------------------------------------------------------------------
// Text Sizes
// -----------------------------------------------------------------------------

const (
	TextSizeHeader = 10
	TextSizeClose  = 12
	TextSizeTime   = 32
	TextSizeAMPM   = 14
	TextSizeDate   = 13
	TextSizeOffset = 9
	TextSizeStatus = 8
)

// -----------------------------------------------------------------------------
// Window Manager (EWMH)
// -----------------------------------------------------------------------------

const (
	NetWMStateAbove = "_NET_WM_STATE_ABOVE"
	NetWMStateRm    = 0
	NetWMStateAdd   = 1
	PropTypeCard    = "CARDINAL"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle        = "win_title"
	TKeyLblLocation     = "lbl_location"
	TKeyLblLive         = "lbl_live"
	TKeyMenuTitle       = "menu_title"
	TKeyMenuTopmost     = "menu_always_on_top"
	TKeyMenuReset       = "menu_reset_position"
	TKeyMenuTransparent = "menu_toggle_transparency"
	TKeyMenuExit        = "menu_exit"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrLoadLocation   = "failed to load timezone"
	ErrNoLocation     = "timezone location is not set"
	ErrSettingsRead   = "failed to read settings file"
	ErrSettingsParse  = "failed to parse settings file"
	ErrSettingsNull   = "null value"
	ErrSettingsValid  = "invalid settings"
	ErrSettingsEncode = "failed to encode settings"
	ErrSettingsWrite  = "failed to write settings file"
	ErrX11Connect     = "could not connect to X11 server"
	ErrX11NoWindow    = "no native window attached"
	ErrX11Move        = "failed to move window"
	ErrX11Geometry    = "failed to query window geometry"
	ErrX11Above       = "failed to change always-on-top state"
	ErrX11Opacity     = "failed to change window opacity"
	ErrX11Pointer     = "failed to query pointer"
	ErrNoPointer      = "pointer position not available"
	ErrTickFailed     = "clock update failed"
	ErrWMApply        = "window manager request failed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, closing overlay"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgSettingsMissing = "Settings file not found, using defaults"
	MsgSettingsLoaded  = "Settings loaded"
	MsgSettingsSaved   = "Settings saved"
	MsgSettingsDefault = "Falling back to default settings"
	MsgHeadlessWM      = "Window manager integration unavailable, using headless backend"
	MsgX11Attached     = "Attached to native X11 window"
	MsgNativeSkip      = "Native window context is not X11"
	MsgSchedulerStart  = "Tick scheduler started"
	MsgSchedulerStop   = "Tick scheduler stopped"
	MsgTickSkipped     = "Skipping clock update for this tick"
	MsgClosing         = "Closing overlay"
	MsgCloseRepeat     = "Close already in progress, ignoring"
	MsgTopmostToggled  = "Always-on-top toggled"
	MsgOpacityChanged  = "Opacity changed"
	MsgPositionReset   = "Position reset to default"
	MsgDragEnd         = "Drag finished"
	MsgUnboundEvent    = "No handler bound for event"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyX         = "x"
	LogKeyY         = "y"
	LogKeyWidth     = "width"
	LogKeyHeight    = "height"
	LogKeyTopmost   = "topmost"
	LogKeyOpacity   = "opacity"
	LogKeyInterval  = "interval"
	LogKeyTick      = "tick"
	LogKeyEvent     = "event"
	LogKeyRole      = "role"
	LogKeyTrigger   = "trigger"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompEngine   = "engine"
	CompSettings = "settings"
	CompPlatform = "platform"
	CompMain     = "main"
	CompI18n     = "i18n"
)
