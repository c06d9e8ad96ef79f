package storage

import (
	"fmt"
	"io/fs"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/signin/web"
	"github.com/spf13/afero"
)

// Assets serves the static files of the sign-in page (logo, success icon,
// stylesheet) from an afero filesystem.
type Assets struct {
	fs afero.Fs
}

// NewAssets wraps fsys.
func NewAssets(fsys afero.Fs) *Assets {
	return &Assets{fs: fsys}
}

// NewEmbeddedAssets serves the files compiled into the binary.
func NewEmbeddedAssets() (*Assets, error) {
	sub, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, fmt.Errorf("open embedded static dir: %w", err)
	}
	return NewAssets(afero.NewReadOnlyFs(afero.FromIOFS{FS: sub})), nil
}

// NewDirAssets serves files from dir on disk, read on every request.
func NewDirAssets(dir string) *Assets {
	return NewAssets(afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir)))
}

// Open selects the directory when dir is set and the embedded files otherwise.
func Open(dir string) (*Assets, error) {
	if dir != "" {
		return NewDirAssets(dir), nil
	}
	return NewEmbeddedAssets()
}

// Exists reports whether name is present.
func (a *Assets) Exists(name string) bool {
	ok, err := afero.Exists(a.fs, name)
	return err == nil && ok
}

// Handler serves the file named by the route's wildcard parameter, so it
// must be mounted on a path ending in "/*".
func (a *Assets) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		name := path.Clean(c.Param("*"))
		if name == "." || !fs.ValidPath(name) {
			return echo.ErrNotFound
		}

		f, err := a.fs.Open(name)
		if err != nil {
			return echo.ErrNotFound
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			return echo.ErrNotFound
		}

		http.ServeContent(c.Response(), c.Request(), info.Name(), info.ModTime(), f)
		return nil
	}
}
