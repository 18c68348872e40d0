package portfolio

import (
	"strings"

	"github.com/eringen/portfolio/pager"
	"github.com/eringen/portfolio/theme"
)

// Article is the core content type stored in SQLite and rendered by templates.
type Article struct {
	Title       string
	Slug        string
	Date        string
	Description string
	Excerpt     string
	Tags        []string
	Content     string // markdown
	CoverImage  string // public URL of the listing image, may be empty
	Featured    bool
	Published   bool
	Link        string
}

// Summary is the card text: the author's description, falling back to the excerpt.
func (a Article) Summary() string {
	if a.Description != "" {
		return a.Description
	}
	return a.Excerpt
}

// CardTags returns the tags shown on listing cards (at most three).
func (a Article) CardTags() []string {
	if len(a.Tags) > 3 {
		return a.Tags[:3]
	}
	return a.Tags
}

// TagCount is the number of published articles carrying a tag.
type TagCount struct {
	Tag   string
	Count int
}

// Href is the tag page for the tag.
func (t TagCount) Href() string {
	return TagURL(t.Tag)
}

// TagURL returns the path of the listing page for tag.
func TagURL(tag string) string {
	return "/tags/" + KebabCase(tag) + "/"
}

// ArticleURL returns the path of an article.
func ArticleURL(slug string) string {
	return "/articles/" + slug + "/"
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	SocialCard  string // image name under /public/social/, without extension
	Video       string // optional og:video file under /public/video/
	JSONLD      string
}

// Chrome is the data every full page needs: site settings, head metadata
// and the visitor's theme state.
type Chrome struct {
	Site   SiteConfig
	Meta   PageMeta
	Theme  string
	Picker ThemePickerView
}

// ThemePickerView is the theme picker widget, also rendered alone for HTMX swaps.
type ThemePickerView struct {
	Current  string
	Controls []theme.Control
	CSRF     string
	Small    bool
}

// ImageVariant is a resized copy of a source image served from the static dir.
type ImageVariant struct {
	URL    string
	Width  int
	Height int
}

// HeroView is the home page banner.
type HeroView struct {
	Name     string
	Intro    string // markdown
	AboutURL string
	Socials  []SocialLink
	Body     ImageVariant
	Torso    ImageVariant
	Bulb     ImageVariant
}

// HomePage is the data for "/".
type HomePage struct {
	Chrome
	Hero   HeroView
	Recent []Article
}

// PopularLink is an entry in the "popular content" sidebar.
type PopularLink struct {
	Path  string
	Title string
}

// ArticlesPage is one page of the article listing.
type ArticlesPage struct {
	Chrome
	Articles []Article
	Pager    pager.Pager
	Popular  []PopularLink
	TopTags  []TagCount
}

// ArticlePage is a single article.
type ArticlePage struct {
	Chrome
	Article Article
	Related []Article
}

// TagPage lists the articles carrying one tag.
type TagPage struct {
	Chrome
	Tag      string
	Articles []Article
}

// NotFoundPage is the 404 page. Suggestion is empty when nothing was close enough.
type NotFoundPage struct {
	Chrome
	Path       string
	Suggestion string
	Rating     float64
}

// HasSuggestion reports whether a nearby path was found.
func (p NotFoundPage) HasSuggestion() bool {
	return p.Suggestion != ""
}

// UpperTag formats a tag the way cards display it.
func UpperTag(tag string) string {
	return strings.ToUpper(tag)
}
