package layouts

import (
	"context"
	"strings"
	"testing"

	"github.com/nfrund/signin/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func TestBase(t *testing.T) {
	content := view.AdaptGomponentToTempl(h.P(g.Text("page body")))
	flashes := view.FlashData{Error: []string{"A sign-in is already in progress."}}

	var b strings.Builder
	require.NoError(t, Base("Login", flashes, content).Render(context.Background(), &b))
	out := b.String()

	assert.True(t, strings.HasPrefix(strings.ToLower(out), "<!doctype html>"))
	assert.Contains(t, out, "<title>Login - Sign In</title>")
	assert.Contains(t, out, `<main class="page"><p>page body</p></main>`)
	assert.Contains(t, out, `class="flash flash-error"`)
	assert.Contains(t, out, HTMXScript)
}

func TestBase_NoFlashes(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Base("", view.FlashData{}, view.AdaptGomponentToTempl(h.P())).Render(context.Background(), &b))

	assert.NotContains(t, b.String(), "flashes")
	assert.Contains(t, b.String(), "<title>Sign In</title>")
}
