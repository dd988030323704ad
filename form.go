package cleanblog

import (
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Form field names shared by the handlers and the templates.
const (
	FieldTitle    = "title"
	FieldSubtitle = "subtitle"
	FieldAuthor   = "author"
	FieldImgURL   = "img_url"
	FieldBody     = "body"
)

// maxFieldLen is the column width of every short text column.
const maxFieldLen = 250

var reScheme = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*$`)

// ValidatePostForm checks a raw form submission. It returns the trimmed
// fields and a nil error map when the submission is valid. It has no side
// effects and never touches the store.
func ValidatePostForm(raw map[string]string) (PostFields, FieldErrors) {
	f := PostFields{
		Title:    strings.TrimSpace(raw[FieldTitle]),
		Subtitle: strings.TrimSpace(raw[FieldSubtitle]),
		Author:   strings.TrimSpace(raw[FieldAuthor]),
		ImgURL:   strings.TrimSpace(raw[FieldImgURL]),
		Body:     raw[FieldBody],
	}
	errs := FieldErrors{}

	short := []struct {
		name  string
		value string
	}{
		{FieldTitle, f.Title},
		{FieldSubtitle, f.Subtitle},
		{FieldAuthor, f.Author},
		{FieldImgURL, f.ImgURL},
	}
	for _, sf := range short {
		switch {
		case sf.value == "":
			errs[sf.name] = "This field is required."
		case utf8.RuneCountInString(sf.value) > maxFieldLen:
			errs[sf.name] = "Field cannot be longer than 250 characters."
		}
	}
	if strings.TrimSpace(f.Body) == "" {
		errs[FieldBody] = "This field is required."
	}
	if _, bad := errs[FieldImgURL]; !bad && !IsValidURL(f.ImgURL) {
		errs[FieldImgURL] = "Invalid URL."
	}

	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}

// IsValidURL reports whether s is an absolute URL with a scheme and a host
// that is either an IP address or a dotted hostname.
func IsValidURL(s string) bool {
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Opaque != "" {
		return false
	}
	if !reScheme.MatchString(u.Scheme) || u.Host == "" {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	if net.ParseIP(host) != nil {
		return true
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" || strings.HasPrefix(l, "-") || strings.HasSuffix(l, "-") {
			return false
		}
	}
	return true
}

// formValues collects the post form fields from a lookup such as
// echo.Context.FormValue.
func formValues(get func(string) string) map[string]string {
	return map[string]string{
		FieldTitle:    get(FieldTitle),
		FieldSubtitle: get(FieldSubtitle),
		FieldAuthor:   get(FieldAuthor),
		FieldImgURL:   get(FieldImgURL),
		FieldBody:     get(FieldBody),
	}
}
