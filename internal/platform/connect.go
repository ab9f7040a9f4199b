package platform

import (
	"log/slog"

	"github.com/tartampluch/nepal-clock/internal/config"
)

// Connect returns an X11 backend when a server is reachable, otherwise a
// Headless backend sized to the fallback screen width.
func Connect() WindowManager {
	x, err := ConnectX11()
	if err != nil {
		slog.Warn(config.MsgHeadlessWM,
			config.LogKeyComponent, config.CompPlatform,
			config.LogKeyError, err)
		return NewHeadless(config.FallbackScreenWidth)
	}
	return x
}
