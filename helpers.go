package pagedesk

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/pagedesk/page"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PagePath is the site path of the page with id.
func PagePath(id string) string {
	return "/page/" + url.PathEscape(id) + "/"
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJsonLD(data)
}

// PageJsonLD returns a JSON-LD string describing p. Posts are a
// BlogPosting, quizzes a Quiz, media pages their object type.
func PageJsonLD(p page.Page, cfg SiteConfig) string {
	pageURL := BuildURL(cfg.URL, "page", p.ID)
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"name":     p.Title,
		"url":      pageURL,
	}
	switch p.Type {
	case page.TypePost:
		data["@type"] = "BlogPosting"
		data["headline"] = p.Title
		if p.Created != "" {
			data["datePublished"] = p.Created
		}
	case page.TypeImage:
		data["@type"] = "ImageObject"
		data["contentUrl"] = p.Src
	case page.TypeVideo:
		data["@type"] = "VideoObject"
		data["contentUrl"] = p.Src
		data["encodingFormat"] = p.ContentType
	case page.TypeSlideshow:
		data["@type"] = "ImageGallery"
	case page.TypeQuiz:
		data["@type"] = "Quiz"
		data["description"] = p.Description
	default:
		data["@type"] = "WebPage"
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJsonLD(data)
}

func marshalJsonLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
