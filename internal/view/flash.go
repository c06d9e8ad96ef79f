package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/signin/internal/middleware"
)

const (
	flashSessionName = "flash-session"
	flashKeyNotice   = "notice"
	flashKeyError    = "error"
)

// FlashData holds the one-shot messages to show above the page content.
type FlashData struct {
	Notice []string
	Error  []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool { return len(f.Notice) == 0 && len(f.Error) == 0 }

func setFlash(c echo.Context, key, message string) {
	logger := middleware.FromContext(c.Request().Context())
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		logger.Warn("Flash session unavailable", "error", err)
		return
	}
	sess.AddFlash(message, key)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		logger.Warn("Could not save flash session", "error", err)
	}
}

// SetFlashNotice queues an informational message for the next page render.
func SetFlashNotice(c echo.Context, message string) {
	setFlash(c, flashKeyNotice, message)
}

// SetFlashError queues an error message for the next page render.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// GetFlashData retrieves and clears the queued messages.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return data
	}

	data.Notice = toStrings(sess.Flashes(flashKeyNotice))
	data.Error = toStrings(sess.Flashes(flashKeyError))

	// Flashes() clears the values; persist that only when something was read.
	if !data.Empty() {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

func toStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
