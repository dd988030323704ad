package views

import (
	"encoding/json"
	"html/template"
	"strconv"
	"time"

	"github.com/eringen/cleanblog"
)

var funcs = template.FuncMap{
	"richText":   richText,
	"editPath":   cleanblog.EditPath,
	"deletePath": cleanblog.DeletePath,
	"jsonLD":     BlogPostingJsonLD,
	"year":       func() int { return time.Now().Year() },
}

// richText marks a post body as trusted HTML. Bodies come from the editor
// form and are stored verbatim.
func richText(body string) template.HTML {
	return template.HTML(body)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(site cleanblog.SiteConfig, post cleanblog.BlogPost) template.JS {
	postURL := cleanblog.BuildURL(site.URL, "post", strconv.FormatInt(post.ID, 10))
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    post.Title,
		"description": post.Subtitle,
		"image":       post.ImgURL,
		"url":         postURL,
		"author": map[string]string{
			"@type": "Person",
			"name":  post.Author,
		},
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  site.Name,
		},
	}
	if t, err := time.Parse(cleanblog.PostDateLayout, post.Date); err == nil {
		data["datePublished"] = t.Format("2006-01-02")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}
