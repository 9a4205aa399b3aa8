package gpu

import (
	"log/slog"

	"github.com/duskhall/render"
)

// slogger returns the module-wide logger. The gpu package shares the
// logger installed through render.SetLogger so that callers configure
// logging in one place.
func slogger() *slog.Logger {
	return render.Logger()
}
