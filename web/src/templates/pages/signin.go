package pages

import (
	"github.com/nfrund/signin/internal/login"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// IDs referenced by htmx targets and tests.
const (
	RootID  = "signin"
	ErrorID = "signin-error"
)

// Static asset paths.
const (
	LogoPath    = "/static/logo.svg"
	SuccessPath = "/static/success.svg"
)

// SuccessText is shown once sign-in has completed.
const SuccessText = "Login successful!"

// SignIn renders the sign-in root: the logo followed by either the success
// view or the form. htmx swaps this whole element after a submit.
func SignIn(v login.View) g.Node {
	var content g.Node
	if v.Succeeded() {
		content = success()
	} else {
		content = form(v)
	}

	return h.Div(h.ID(RootID), h.Class("signin"),
		h.Div(h.Class("logo"),
			h.Img(h.Src(LogoPath), h.Alt("Logo")),
		),
		content,
	)
}

func success() g.Node {
	return h.Div(h.Class("success-message"),
		h.Img(h.Src(SuccessPath), h.Alt("Success")),
		h.Span(g.Text(SuccessText)),
	)
}

func form(v login.View) g.Node {
	return h.FormEl(
		h.Action("/login"),
		h.Method("post"),
		h.Class("signin-form"),
		h.Aria("live", "assertive"),
		hx.Post("/login"),
		hx.Target("#"+RootID),
		hx.Swap("outerHTML"),
		g.Attr("hx-disabled-elt", "find button[type='submit']"),
		g.Attr("hx-on::before-request", "this.querySelector(\"button[type='submit']\").textContent = '"+login.LabelSigningIn+"'"),

		h.Div(
			h.H1(h.Class("signin-title"), g.Text("Sign In")),
			errorRegion(v),
			h.Label(h.For("email"), g.Text("Email:")),
			h.Input(
				h.Type("email"),
				h.ID("email"),
				h.Name("email"),
				h.Value(v.Email),
				h.AutoComplete("email"),
				h.Required(),
			),
		),
		h.Div(
			h.Label(h.For("password"), g.Text("Password:")),
			h.Input(
				h.Type("password"),
				h.ID("password"),
				h.Name("password"),
				h.Value(v.Password),
				h.AutoComplete("current-password"),
				h.Required(),
			),
		),
		h.Button(
			h.Type("submit"),
			g.If(v.InFlight(), h.Disabled()),
			g.Text(v.ButtonLabel()),
		),
	)
}

// errorRegion is the alert that announces the current error. It takes
// autofocus only on the first render of a new message.
func errorRegion(v login.View) g.Node {
	if v.Error == "" {
		return nil
	}
	return h.Div(
		h.ID(ErrorID),
		h.Class("error-message"),
		h.Role("alert"),
		h.TabIndex("-1"),
		g.If(v.FocusError, h.AutoFocus()),
		g.Text(v.Error),
	)
}
