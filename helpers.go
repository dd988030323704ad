package cleanblog

import (
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

// PostDateLayout is the display format stamped on new posts, e.g. "April 05, 2024".
const PostDateLayout = "January 02, 2006"

// FormatPostDate renders t as a post display date.
func FormatPostDate(t time.Time) string {
	return t.Format(PostDateLayout)
}

// PostPath returns the canonical path of post id.
func PostPath(id int64) string {
	return "/post/" + strconv.FormatInt(id, 10)
}

// EditPath returns the path of the edit form for post id.
func EditPath(id int64) string {
	return "/edit-post/" + strconv.FormatInt(id, 10)
}

// DeletePath returns the path that deletes post id.
func DeletePath(id int64) string {
	return "/delete/" + strconv.FormatInt(id, 10)
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) == 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}
