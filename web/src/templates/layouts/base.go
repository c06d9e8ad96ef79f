package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/signin/internal/view"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// HTMXScript is loaded with defer; the page works without it as a plain form post.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps content in the HTML document shared by every page.
func Base(title string, flashes view.FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return document(title, flashes, view.AdaptTemplToGomponent(ctx, content)).Render(w)
	})
}

func document(title string, flashes view.FlashData, body g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []g.Node{
			h.Link(h.Rel("icon"), h.Href("/static/logo.svg"), h.Type("image/svg+xml")),
			h.Link(h.Rel("stylesheet"), h.Href("/static/signin.css")),
			h.Script(h.Src(HTMXScript), h.Defer()),
		},
		Body: []g.Node{
			flashList(flashes),
			h.Main(h.Class("page"), body),
		},
	})
}

func flashList(flashes view.FlashData) g.Node {
	if flashes.Empty() {
		return nil
	}
	return h.Ul(h.Class("flashes"),
		g.Map(flashes.Notice, func(msg string) g.Node {
			return h.Li(h.Class("flash flash-notice"), g.Text(msg))
		}),
		g.Map(flashes.Error, func(msg string) g.Node {
			return h.Li(h.Class("flash flash-error"), g.Text(msg))
		}),
	)
}
