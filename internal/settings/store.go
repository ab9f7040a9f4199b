// Package settings persists the overlay window placement as a flat JSON record.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/nepal-clock/internal/config"
)

// WindowSettings is the persisted window placement.
// Field order fixes the JSON key order on disk.
type WindowSettings struct {
	X           int  `json:"x"`
	Y           int  `json:"y"`
	Width       int  `json:"width" validate:"gt=0"`
	Height      int  `json:"height" validate:"gt=0"`
	AlwaysOnTop bool `json:"topmost"`
}

// Default returns the top-right placement for a screen of the given width.
func Default(screenWidth int) WindowSettings {
	return WindowSettings{
		X:           screenWidth - config.DefaultRightMargin,
		Y:           config.DefaultTop,
		Width:       config.DefaultWidth,
		Height:      config.DefaultHeight,
		AlwaysOnTop: config.DefaultAlwaysOnTop,
	}
}

// fallback seeds decoding so keys absent from the file keep these values.
func fallback() WindowSettings {
	return WindowSettings{
		X:           config.FallbackX,
		Y:           config.FallbackY,
		Width:       config.DefaultWidth,
		Height:      config.DefaultHeight,
		AlwaysOnTop: config.DefaultAlwaysOnTop,
	}
}

// Store reads and writes WindowSettings at a fixed path.
// Neither Load nor the UI's use of Save ever fails the caller.
type Store struct {
	Path     string
	validate *validator.Validate
}

// NewStore creates a store for the file at path.
func NewStore(path string) *Store {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Store{Path: path, validate: v}
}

// Load returns the stored settings, or Default(screenWidth) when the file is
// missing, unreadable, malformed, or invalid. Failures are logged only.
func (s *Store) Load(screenWidth int) WindowSettings {
	log := slog.With(
		config.LogKeyComponent, config.CompSettings,
		config.LogKeyFile, s.Path,
	)

	loaded, err := s.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info(config.MsgSettingsMissing)
		} else {
			log.Warn(config.MsgSettingsDefault, config.LogKeyError, err)
		}
		return Default(screenWidth)
	}

	log.Info(config.MsgSettingsLoaded,
		config.LogKeyX, loaded.X,
		config.LogKeyY, loaded.Y,
		config.LogKeyWidth, loaded.Width,
		config.LogKeyHeight, loaded.Height,
		config.LogKeyTopmost, loaded.AlwaysOnTop)
	return loaded
}

func (s *Store) read() (WindowSettings, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return WindowSettings{}, fmt.Errorf("%s: %w", config.ErrSettingsRead, err)
	}

	// Decode keys first: a null document or a null value is malformed,
	// not absent.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return WindowSettings{}, fmt.Errorf("%s: %w", config.ErrSettingsParse, err)
	}
	if fields == nil {
		return WindowSettings{}, fmt.Errorf("%s: %s", config.ErrSettingsParse, config.ErrSettingsNull)
	}
	for key, raw := range fields {
		if string(bytes.TrimSpace(raw)) == "null" {
			return WindowSettings{}, fmt.Errorf("%s: %s %q", config.ErrSettingsParse, config.ErrSettingsNull, key)
		}
	}

	ws := fallback()
	if err := json.Unmarshal(data, &ws); err != nil {
		return WindowSettings{}, fmt.Errorf("%s: %w", config.ErrSettingsParse, err)
	}

	if err := s.Validate(ws); err != nil {
		return WindowSettings{}, err
	}
	return ws, nil
}

// Validate checks the WindowSettings invariants.
func (s *Store) Validate(ws WindowSettings) error {
	if err := s.validate.Struct(ws); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fmt.Sprintf("%s must be %s %s", fe.Field(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("%s: %s", config.ErrSettingsValid, strings.Join(fields, "; "))
		}
		return fmt.Errorf("%s: %w", config.ErrSettingsValid, err)
	}
	return nil
}

// Save overwrites the settings file. The error is returned for callers that
// care; the overlay only logs it.
func (s *Store) Save(ws WindowSettings) error {
	log := slog.With(
		config.LogKeyComponent, config.CompSettings,
		config.LogKeyFile, s.Path,
	)

	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		err = fmt.Errorf("%s: %w", config.ErrSettingsEncode, err)
		log.Error(config.ErrSettingsWrite, config.LogKeyError, err)
		return err
	}

	if err := os.WriteFile(s.Path, data, config.FilePermUserRWOthersR); err != nil {
		err = fmt.Errorf("%s: %w", config.ErrSettingsWrite, err)
		log.Error(config.ErrSettingsWrite, config.LogKeyError, err)
		return err
	}

	log.Info(config.MsgSettingsSaved,
		config.LogKeyX, ws.X,
		config.LogKeyY, ws.Y,
		config.LogKeyWidth, ws.Width,
		config.LogKeyHeight, ws.Height,
		config.LogKeyTopmost, ws.AlwaysOnTop)
	return nil
}
