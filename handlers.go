package cleanblog

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleListPosts(c echo.Context) error {
	posts, err := a.Store.ListPosts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Index(posts, popFlashes(c)))
}

func (a *App) handleShowPost(c echo.Context) error {
	post, err := a.postFromPath(c)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(post, popFlashes(c)))
}

func (a *App) handleNewPost(c echo.Context) error {
	form := PostForm{CSRFToken: CsrfToken(c)}
	if c.Request().Method != http.MethodPost {
		return Render(c, a.Views.MakePost(form, false))
	}

	fields, errs := ValidatePostForm(formValues(c.FormValue))
	form.Fields = fields
	if errs == nil {
		post, err := a.Store.CreatePost(fields, FormatPostDate(a.now()))
		switch {
		case err == nil:
			c.Logger().Infof("created post %d %q", post.ID, post.Title)
			addFlash(c, "Post published.")
			return c.Redirect(http.StatusSeeOther, post.Link)
		case errors.Is(err, ErrDuplicateTitle):
			errs = FieldErrors{FieldTitle: "A post with this title already exists."}
		default:
			return err
		}
	}
	form.Errors = errs
	return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.MakePost(form, false))
}

func (a *App) handleEditPost(c echo.Context) error {
	post, err := a.postFromPath(c)
	if err != nil {
		return err
	}
	form := PostForm{Fields: fieldsOf(post), CSRFToken: CsrfToken(c)}
	if c.Request().Method != http.MethodPost {
		return Render(c, a.Views.MakePost(form, true))
	}

	fields, errs := ValidatePostForm(formValues(c.FormValue))
	form.Fields = fields
	if errs == nil {
		err := a.Store.UpdatePost(post.ID, fields)
		switch {
		case err == nil:
			c.Logger().Infof("updated post %d", post.ID)
			addFlash(c, "Post updated.")
			return c.Redirect(http.StatusSeeOther, post.Link)
		case errors.Is(err, ErrDuplicateTitle):
			errs = FieldErrors{FieldTitle: "A post with this title already exists."}
		default:
			return err
		}
	}
	form.Errors = errs
	return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.MakePost(form, true))
}

func (a *App) handleDeletePost(c echo.Context) error {
	id, err := ParsePostID(c.Param("id"))
	if err != nil {
		return err
	}
	if err := a.Store.DeletePost(id); err != nil {
		return err
	}
	c.Logger().Infof("deleted post %d", id)
	addFlash(c, "Post deleted.")
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, a.Views.About())
}

func (a *App) handleContact(c echo.Context) error {
	return Render(c, a.Views.Contact())
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Store.ListPosts()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Store.ListPosts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) postFromPath(c echo.Context) (BlogPost, error) {
	id, err := ParsePostID(c.Param("id"))
	if err != nil {
		return BlogPost{}, err
	}
	return a.Store.GetPost(id)
}

// httpErrorHandler renders the NotFound page for unknown routes and missing
// posts, and the ServerError page for anything at or above 500.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, ErrNotFound) {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
