// Package views is the default cleanblog page renderer. Pages are
// html/template files embedded in the binary and exposed as templ components.
//
// Every page receives a data context with "site" and "page" plus the keys it
// needs: "all_posts" and "flashes" for the index, "post" for a post page,
// "form" and "is_edit" for the create/edit form.
package views

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"

	"github.com/eringen/cleanblog"
)

//go:embed templates/*.html
var files embed.FS

// Renderer holds one parsed template set per page.
type Renderer struct {
	site  cleanblog.SiteConfig
	pages map[string]*template.Template
}

var pageFiles = []string{
	"index.html",
	"post.html",
	"make-post.html",
	"about.html",
	"contact.html",
	"not-found.html",
	"server-error.html",
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer(site cleanblog.SiteConfig) (*Renderer, error) {
	r := &Renderer{site: site, pages: make(map[string]*template.Template, len(pageFiles))}
	for _, name := range pageFiles {
		t, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, err
		}
		r.pages[name] = t
	}
	return r, nil
}

// Must is like NewRenderer but panics on a template parse error. The
// templates are embedded, so an error is a build defect.
func Must(site cleanblog.SiteConfig) *Renderer {
	r, err := NewRenderer(site)
	if err != nil {
		panic(err)
	}
	return r
}

// Page renders the named page file with data merged over the site context.
func (r *Renderer) Page(name, title string, data map[string]any) templ.Component {
	ctx := map[string]any{
		"site": r.site,
		"page": title,
	}
	for k, v := range data {
		ctx[k] = v
	}
	return templ.FromGoHTML(r.pages[name].Lookup("base"), ctx)
}

// ViewFuncs adapts the renderer to the handler contract.
func (r *Renderer) ViewFuncs() cleanblog.ViewFuncs {
	return cleanblog.ViewFuncs{
		Index: func(allPosts []cleanblog.BlogPost, flashes []string) templ.Component {
			return r.Page("index.html", "", map[string]any{"all_posts": allPosts, "flashes": flashes})
		},
		Post: func(post cleanblog.BlogPost, flashes []string) templ.Component {
			return r.Page("post.html", post.Title, map[string]any{"post": post, "flashes": flashes})
		},
		MakePost: func(form cleanblog.PostForm, isEdit bool) templ.Component {
			title := "New Post"
			if isEdit {
				title = "Edit Post"
			}
			return r.Page("make-post.html", title, map[string]any{"form": form, "is_edit": isEdit})
		},
		About: func() templ.Component {
			return r.Page("about.html", "About Me", nil)
		},
		Contact: func() templ.Component {
			return r.Page("contact.html", "Contact Me", nil)
		},
		NotFound: func() templ.Component {
			return r.Page("not-found.html", "Not Found", nil)
		},
		ServerError: func() templ.Component {
			return r.Page("server-error.html", "Server Error", nil)
		},
	}
}

// Default returns the built-in views for site.
func Default(site cleanblog.SiteConfig) cleanblog.ViewFuncs {
	return Must(site).ViewFuncs()
}
