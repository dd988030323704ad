package cleanblog

// BlogPost is the single record stored in the posts table and rendered by templates.
type BlogPost struct {
	ID       int64
	Title    string
	Subtitle string
	Date     string // display date stamped at creation, e.g. "April 05, 2024"
	Body     string // rich text, stored verbatim
	Author   string
	ImgURL   string
	Link     string // canonical path, "/post/{id}"
}

// PostFields is the editable part of a BlogPost. Create and update take it;
// ID and Date are never part of it.
type PostFields struct {
	Title    string
	Subtitle string
	Author   string
	ImgURL   string
	Body     string
}

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// PostForm is the state of the create/edit form handed to the renderer:
// the values to pre-fill and any per-field errors from the last submission.
type PostForm struct {
	Fields    PostFields
	Errors    FieldErrors
	CSRFToken string
}

// Has reports whether field has a validation error.
func (f PostForm) Has(field string) bool {
	_, ok := f.Errors[field]
	return ok
}

// Error returns the validation message for field, or "".
func (f PostForm) Error(field string) string {
	return f.Errors[field]
}

func fieldsOf(p BlogPost) PostFields {
	return PostFields{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Author:   p.Author,
		ImgURL:   p.ImgURL,
		Body:     p.Body,
	}
}
