// Package templates holds the templ components of the status page.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/openedx-plugin/internal/adapter/driving/web/viewmodel"
)

// Layout wraps body in the HTML document shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body>`,
			templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// StatusPage lists installed plugin apps and stored waffle switches.
func StatusPage(page vm.StatusPageViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := &errWriter{w: w}

		e.printf(`<header><h1>%s plugins</h1><p>%s &middot; %s</p></header>`,
			templ.EscapeString(page.PlatformName),
			templ.EscapeString(page.ProjectType),
			templ.EscapeString(page.Environment))

		e.printf(`<section id="apps">`)
		for _, app := range page.Apps {
			e.printf(`<article class="app" id="%s"><h2>%s <small>%s</small></h2><p><code>%s</code> mounted at <code>%s</code></p><div class="description">`,
				templ.EscapeString(app.Label),
				templ.EscapeString(app.VerboseName),
				templ.EscapeString(app.Version),
				templ.EscapeString(app.Name),
				templ.EscapeString(app.URLPrefix))
			if e.err == nil {
				e.err = templ.Raw(app.DescriptionHTML).Render(ctx, w)
			}
			e.printf(`</div></article>`)
		}
		e.printf(`</section>`)

		e.printf(`<section id="switches"><h2>Waffle switches</h2>`)
		switch {
		case !page.StoreReady:
			e.printf(`<p class="warning">Waffle switch store is not ready.</p>`)
		case len(page.Switches) == 0:
			e.printf(`<p>No waffle switches are set.</p>`)
		default:
			e.printf(`<table><thead><tr><th>Switch</th><th>State</th><th>Note</th><th>Modified</th></tr></thead><tbody>`)
			for _, s := range page.Switches {
				state := "off"
				if s.Active {
					state = "on"
				}
				e.printf(`<tr class="switch-%s"><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
					state,
					templ.EscapeString(s.Name),
					state,
					templ.EscapeString(s.Note),
					templ.EscapeString(s.Modified))
			}
			e.printf(`</tbody></table>`)
		}
		e.printf(`</section>`)

		return e.err
	})
}

// errWriter stops writing after the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
