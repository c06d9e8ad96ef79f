package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/signin/internal/events"
	"github.com/nfrund/signin/internal/handlers"
	"github.com/nfrund/signin/internal/login"
	"github.com/nfrund/signin/internal/rendering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

// fakeRecorder collects recorded attempts.
type fakeRecorder struct {
	mu       sync.Mutex
	attempts []events.Attempt
}

func (r *fakeRecorder) Record(ctx context.Context, a events.Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, a)
}

func (r *fakeRecorder) all() []events.Attempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Attempt(nil), r.attempts...)
}

type testEnv struct {
	e        *echo.Echo
	recorder *fakeRecorder
	calls    *atomic.Int32
}

func setupLoginTest(t *testing.T, op login.OperationFunc) *testEnv {
	t.Helper()

	calls := &atomic.Int32{}
	counted := login.OperationFunc(func(ctx context.Context, creds login.Credentials) error {
		calls.Add(1)
		return op(ctx, creds)
	})

	e := echo.New()
	e.Renderer = rendering.New()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))

	recorder := &fakeRecorder{}
	h := handlers.NewLoginHandler(login.NewSessions(counted), recorder)
	e.GET("/login", h.LoginGet)
	e.POST("/login", h.LoginPost)

	return &testEnv{e: e, recorder: recorder, calls: calls}
}

// browser carries cookies between requests like a user agent would.
type browser struct {
	mu      sync.Mutex
	cookies map[string]*http.Cookie
}

func newBrowser() *browser {
	return &browser{cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(env *testEnv, req *http.Request) *httptest.ResponseRecorder {
	b.mu.Lock()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	b.mu.Unlock()

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	b.mu.Lock()
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	b.mu.Unlock()
	return rec
}

func (b *browser) get(env *testEnv) *httptest.ResponseRecorder {
	return b.do(env, httptest.NewRequest(http.MethodGet, "/login", nil))
}

func (b *browser) post(env *testEnv, email, password string, htmx bool) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return b.do(env, req)
}

func succeed(ctx context.Context, creds login.Credentials) error { return nil }

func TestLoginGet_RendersForm(t *testing.T) {
	env := setupLoginTest(t, succeed)
	b := newBrowser()

	rec := b.get(env)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Login - Sign In</title>")
	assert.Contains(t, body, `id="signin"`)
	assert.Contains(t, body, `type="email"`)
	assert.Contains(t, body, `>Sign In</button>`)
	assert.NotContains(t, body, `role="alert"`)
	assert.Contains(t, b.cookies, handlers.SessionName)
}

func TestLoginPost_HTMX(t *testing.T) {
	t.Run("invalid email", func(t *testing.T) {
		env := setupLoginTest(t, succeed)
		b := newBrowser()

		rec := b.post(env, "a@b", "x", true)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, login.MsgInvalidEmail)
		assert.Contains(t, body, "autofocus")
		assert.Contains(t, body, `value="a@b"`)
		assert.NotContains(t, body, "<html", "htmx responses are fragments")
		assert.Zero(t, env.calls.Load())

		attempts := env.recorder.all()
		require.Len(t, attempts, 1)
		assert.Equal(t, events.OutcomeInvalid, attempts[0].Outcome)
	})

	t.Run("invalid password", func(t *testing.T) {
		env := setupLoginTest(t, succeed)
		b := newBrowser()

		rec := b.post(env, "a@b.com", "short1A", true)

		assert.Contains(t, rec.Body.String(), login.MsgInvalidPassword)
		assert.Zero(t, env.calls.Load())
	})

	t.Run("empty fields report the email", func(t *testing.T) {
		env := setupLoginTest(t, succeed)
		b := newBrowser()

		rec := b.post(env, "", "", true)

		assert.Contains(t, rec.Body.String(), login.MsgInvalidEmail)
	})

	t.Run("success", func(t *testing.T) {
		env := setupLoginTest(t, succeed)
		b := newBrowser()

		rec := b.post(env, "a@b.com", "Passw0rd", true)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Login successful!")
		assert.NotContains(t, body, "<form")
		assert.Equal(t, int32(1), env.calls.Load())

		attempts := env.recorder.all()
		require.Len(t, attempts, 1)
		assert.Equal(t, events.OutcomeSucceeded, attempts[0].Outcome)
		assert.Equal(t, "a@b.com", attempts[0].Email)
	})

	t.Run("network failure", func(t *testing.T) {
		env := setupLoginTest(t, func(ctx context.Context, creds login.Credentials) error {
			return errors.New("connection refused")
		})
		b := newBrowser()

		rec := b.post(env, "a@b.com", "Passw0rd", true)

		body := rec.Body.String()
		assert.Contains(t, body, login.MsgNetworkError)
		assert.Contains(t, body, `>Sign In</button>`)
		assert.NotContains(t, body, `type="submit" disabled`)

		attempts := env.recorder.all()
		require.Len(t, attempts, 1)
		assert.Equal(t, events.OutcomeFailed, attempts[0].Outcome)
		assert.Equal(t, login.MsgNetworkError, attempts[0].Reason)
	})
}

func TestLoginPost_PlainFormRedirects(t *testing.T) {
	env := setupLoginTest(t, succeed)
	b := newBrowser()

	rec := b.post(env, "a@b", "x", false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	// The error is shown, and focused, on the page the browser lands on.
	page := b.get(env).Body.String()
	assert.Contains(t, page, login.MsgInvalidEmail)
	assert.Contains(t, page, "autofocus")

	// Reloading shows the same error without moving focus again.
	page = b.get(env).Body.String()
	assert.Contains(t, page, login.MsgInvalidEmail)
	assert.NotContains(t, page, "autofocus")
}

func TestLoginPost_SessionsAreIndependent(t *testing.T) {
	env := setupLoginTest(t, succeed)
	alice := newBrowser()
	bob := newBrowser()

	alice.post(env, "a@b", "x", false)

	assert.Contains(t, alice.get(env).Body.String(), login.MsgInvalidEmail)
	assert.NotContains(t, bob.get(env).Body.String(), login.MsgInvalidEmail)
}

func TestLoginPost_AfterSuccess(t *testing.T) {
	env := setupLoginTest(t, succeed)
	b := newBrowser()

	b.post(env, "a@b.com", "Passw0rd", false)
	require.Contains(t, b.get(env).Body.String(), "Login successful!")

	rec := b.post(env, "other@b.com", "Passw0rd", false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	page := b.get(env).Body.String()
	assert.Contains(t, page, "Login successful!")
	assert.Contains(t, page, "You are already signed in.")
	assert.Equal(t, int32(1), env.calls.Load())
}

func TestLoginPost_RefusedWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	env := setupLoginTest(t, func(ctx context.Context, creds login.Credentials) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	})
	b := newBrowser()
	b.get(env)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() { done <- b.post(env, "a@b.com", "Passw0rd", true) }()
	<-started

	// A GET during the submit shows the in-flight button.
	page := b.get(env).Body.String()
	assert.Contains(t, page, `type="submit" disabled`)
	assert.Contains(t, page, "Signing in...")

	rec := b.post(env, "a@b.com", "Passw0rd", true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = b.post(env, "a@b.com", "Passw0rd", false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	close(release)
	first := <-done
	assert.Contains(t, first.Body.String(), "Login successful!")
	assert.Equal(t, int32(1), env.calls.Load())
	assert.Contains(t, b.get(env).Body.String(), "A sign-in is already in progress.")
}

func TestLoginPost_RejectsOversizedFields(t *testing.T) {
	env := setupLoginTest(t, succeed)
	b := newBrowser()

	rec := b.post(env, strings.Repeat("a", 400)+"@b.com", "Passw0rd", true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, env.calls.Load())
	assert.Empty(t, env.recorder.all())
}
