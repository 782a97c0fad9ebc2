package settings

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/giantswarm/microerror"
)

var (
	//go:embed static
	embedded embed.FS
)

type Renderer struct {
	tpl    *template.Template
	static fs.FS
}

func NewRenderer() (*Renderer, error) {
	tpl, err := template.ParseFS(embedded, "static/layout.tmpl", "static/settings.tmpl")
	if err != nil {
		return nil, microerror.Mask(err)
	}
	static, err := fs.Sub(embedded, "static")
	if err != nil {
		return nil, microerror.Mask(err)
	}
	return &Renderer{tpl: tpl, static: static}, nil
}

// Render writes the page as a complete HTML document.
func (r *Renderer) Render(w io.Writer, page Page) error {
	if err := r.tpl.ExecuteTemplate(w, "layout", page); err != nil {
		return microerror.Maskf(renderFailedError, "failed to render page %q: %s", page.Title, err)
	}
	return nil
}

// RenderGroup writes a single group as an HTML fragment.
func (r *Renderer) RenderGroup(w io.Writer, group Group) error {
	if err := r.tpl.ExecuteTemplate(w, "group", group); err != nil {
		return microerror.Maskf(renderFailedError, "failed to render group %q: %s", group.ID, err)
	}
	return nil
}

// Static holds the assets referenced by the layout, rooted at the asset
// directory.
func (r *Renderer) Static() fs.FS {
	return r.static
}
