package portfolio

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
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

// KebabCase lowercases s and joins its words with hyphens: "Web Dev",
// "webDev" and "web_dev" all become "web-dev". Punctuation separates words.
func KebabCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}
	return strcase.ToKebab(strings.Join(words, " "))
}

// smallWords stay lowercase in titles unless they lead.
var smallWords = map[string]struct{}{
	"a": {}, "amid": {}, "an": {}, "and": {}, "anti": {}, "as": {}, "at": {},
	"but": {}, "by": {}, "down": {}, "for": {}, "from": {}, "in": {}, "into": {},
	"like": {}, "near": {}, "nor": {}, "of": {}, "off": {}, "on": {}, "onto": {},
	"or": {}, "over": {}, "past": {}, "per": {}, "plus": {}, "save": {}, "so": {},
	"than": {}, "the": {}, "to": {}, "up": {}, "upon": {}, "via": {}, "with": {},
	"without": {}, "yet": {},
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// PathToTitle turns an article path into a readable title:
// "/articles/the-state-of-go/" becomes "The State of Go".
func PathToTitle(p string) string {
	p = strings.Replace(p, "/articles/", "", 1)
	p = strings.ReplaceAll(p, "/", "")
	words := strings.Fields(strings.ReplaceAll(p, "-", " "))
	for i, w := range words {
		if _, small := smallWords[strings.ToLower(w)]; small && i > 0 {
			continue
		}
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
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

// AbsoluteURL resolves a site-relative path like "/articles/x/" against base.
func AbsoluteURL(base, p string) string {
	return strings.TrimRight(base, "/") + p
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ArticleJsonLD returns a JSON-LD string for a BlogPosting schema.
func ArticleJsonLD(a Article, cfg SiteConfig) string {
	articleURL := BuildURL(cfg.URL, "articles", a.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      a.Title,
		"description":   a.Summary(),
		"datePublished": a.Date,
		"url":           articleURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   articleURL,
		},
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if a.CoverImage != "" {
		data["image"] = AbsoluteURL(cfg.URL, a.CoverImage)
	}
	if len(a.Tags) > 0 {
		data["keywords"] = strings.Join(a.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
