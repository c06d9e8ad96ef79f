package rendering

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// nodeRenderer matches gomponents.Node without importing it.
type nodeRenderer interface {
	Render(w io.Writer) error
}

// Renderer renders templ components and gomponents nodes. It implements
// echo.Renderer, so handlers call c.Render(status, "", component); the
// template name is ignored.
type Renderer struct{}

// New returns a Renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)
	case nodeRenderer:
		return c.Render(w)
	case nil:
		return fmt.Errorf("nothing to render")
	default:
		return fmt.Errorf("unsupported component type %T: want templ.Component or a gomponents.Node", component)
	}
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, _ string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(c.Request().Context(), data, w)
}
