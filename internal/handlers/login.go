package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/signin/internal/events"
	"github.com/nfrund/signin/internal/login"
	"github.com/nfrund/signin/internal/middleware"
	"github.com/nfrund/signin/internal/view"
	"github.com/nfrund/signin/web/src/templates/layouts"
	"github.com/nfrund/signin/web/src/templates/pages"
)

const (
	// SessionName is the cookie session that binds a browser to its form.
	SessionName      = "signin-session"
	sessionKeyFormID = "form_id"
)

// Flash texts for plain (non-htmx) posts that are refused.
const (
	flashInFlight      = "A sign-in is already in progress."
	flashAlreadyDone   = "You are already signed in."
	flashTooLongFields = "The email or password is too long."
)

// LoginHandler serves the sign-in page and its form submissions.
type LoginHandler struct {
	forms    *login.Sessions
	recorder events.Recorder
	now      func() time.Time
}

// NewLoginHandler creates a LoginHandler. A nil recorder discards attempts.
func NewLoginHandler(forms *login.Sessions, recorder events.Recorder) *LoginHandler {
	if recorder == nil {
		recorder = events.Discard{}
	}
	return &LoginHandler{
		forms:    forms,
		recorder: recorder,
		now:      time.Now,
	}
}

// LoginGet renders the sign-in page (GET /login) for the session's form,
// creating the form on the first visit.
func (h *LoginHandler) LoginGet(c echo.Context) error {
	form, err := h.formFor(c)
	if err != nil {
		return err
	}

	flashes := view.GetFlashData(c)
	content := view.AdaptGomponentToTempl(pages.SignIn(form.Present()))
	return c.Render(http.StatusOK, "", layouts.Base("Login", flashes, content))
}

// LoginPost handles the form submission (POST /login). htmx requests get the
// re-rendered sign-in fragment; plain posts are redirected back to the page.
func (h *LoginHandler) LoginPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid sign-in form.")
	}
	if err := c.Validate(&req); err != nil {
		logger.Warn("Rejected oversized sign-in form", "error", err)
		if !isHTMX(c) {
			view.SetFlashError(c, flashTooLongFields)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return echo.NewHTTPError(http.StatusBadRequest, flashTooLongFields)
	}

	form, err := h.formFor(c)
	if err != nil {
		return err
	}
	form.SetEmail(req.Email)
	form.SetPassword(req.Password)

	status := http.StatusOK
	st, err := form.Submit(ctx)
	switch {
	case errors.Is(err, login.ErrInFlight):
		logger.Info("Ignored sign-in submit while one is in flight", "form_id", form.ID())
		status = http.StatusConflict
		if !isHTMX(c) {
			view.SetFlashError(c, flashInFlight)
		}
	case errors.Is(err, login.ErrAlreadySignedIn):
		logger.Debug("Ignored sign-in submit after success", "form_id", form.ID())
		if !isHTMX(c) {
			view.SetFlashNotice(c, flashAlreadyDone)
		}
	case err != nil:
		// The request was cancelled, so there is no one to render for.
		logger.Info("Sign-in aborted", "form_id", form.ID(), "error", err)
		return nil
	default:
		if attempt, ok := events.NewAttempt(form.ID(), req.Email, st, h.now()); ok {
			h.recorder.Record(ctx, attempt)
		}
		logger.Debug("Sign-in submit finished", "form_id", form.ID(), "phase", st.Phase.String())
	}

	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Render(status, "", pages.SignIn(form.Present()))
}

// formFor returns the form bound to the request's session, binding a new one
// when the session has none or refers to a form that no longer exists.
func (h *LoginHandler) formFor(c echo.Context) (*login.Form, error) {
	sess, err := session.Get(SessionName, c)
	if sess == nil {
		return nil, fmt.Errorf("load sign-in session: %w", err)
	}
	if err != nil {
		// A cookie that no longer decodes yields a fresh session.
		middleware.FromContext(c.Request().Context()).Warn("Discarding unreadable sign-in session", "error", err)
	}

	if id, ok := sess.Values[sessionKeyFormID].(string); ok {
		if form, ok := h.forms.Get(id); ok {
			return form, nil
		}
	}

	form := h.forms.Create()
	sess.Values[sessionKeyFormID] = form.ID()
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		h.forms.Delete(form.ID())
		return nil, fmt.Errorf("save sign-in session: %w", err)
	}
	return form, nil
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
