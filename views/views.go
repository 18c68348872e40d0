// Package views provides the default page components. Pages are
// html/template files embedded in the binary and exposed as templ
// components, so callers can swap any of them for their own templ code.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/portfolio"
	"github.com/eringen/portfolio/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"upper":    portfolio.UpperTag,
	"tagURL":   portfolio.TagURL,
	"markdown": markdown.HTML,
	"absURL":   portfolio.AbsoluteURL,
	"jsonld":   func(s string) template.JS { return template.JS(s) },
	"year":     func() int { return time.Now().Year() },
	"date":     formatDate,
}

var base = template.Must(template.New("").Funcs(funcs).ParseFS(templateFS,
	"templates/layout.html", "templates/partials.html"))

// page returns the layout combined with the content block of file.
func page(file string) *template.Template {
	return template.Must(template.Must(base.Clone()).ParseFS(templateFS, "templates/"+file))
}

var (
	homeTmpl     = page("home.html").Lookup("layout")
	articlesTmpl = page("articles.html").Lookup("layout")
	articleTmpl  = page("article.html").Lookup("layout")
	tagTmpl      = page("tag.html").Lookup("layout")
	notFoundTmpl = page("404.html").Lookup("layout")
	errorTmpl    = page("500.html").Lookup("layout")
	pickerTmpl   = base.Lookup("picker")
)

// Default returns the built-in view functions.
func Default() portfolio.ViewFuncs {
	return portfolio.ViewFuncs{
		Home:        Home,
		Articles:    Articles,
		Article:     Article,
		Tag:         Tag,
		ThemePicker: ThemePicker,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

type homeData struct {
	portfolio.HomePage
	Intro template.HTML
}

// Home renders the landing page. The hero intro is markdown rendered through
// the markdown component.
func Home(p portfolio.HomePage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		intro, err := templ.ToGoHTML(ctx, markdown.Markdown(p.Hero.Intro))
		if err != nil {
			return err
		}
		return templ.FromGoHTML(homeTmpl, homeData{HomePage: p, Intro: intro}).Render(ctx, w)
	})
}

// Articles renders one page of the article listing.
func Articles(p portfolio.ArticlesPage) templ.Component {
	return templ.FromGoHTML(articlesTmpl, p)
}

// Article renders a single article.
func Article(p portfolio.ArticlePage) templ.Component {
	return templ.FromGoHTML(articleTmpl, p)
}

// Tag renders the articles carrying one tag.
func Tag(p portfolio.TagPage) templ.Component {
	return templ.FromGoHTML(tagTmpl, p)
}

// ThemePicker renders the picker alone, for in-place swaps.
func ThemePicker(p portfolio.ThemePickerView) templ.Component {
	return templ.FromGoHTML(pickerTmpl, p)
}

// NotFound renders the 404 page.
func NotFound(p portfolio.NotFoundPage) templ.Component {
	return templ.FromGoHTML(notFoundTmpl, p)
}

// ServerError renders the 500 page.
func ServerError(c portfolio.Chrome) templ.Component {
	return templ.FromGoHTML(errorTmpl, c)
}

// formatDate turns "2024-03-01" into "March 1, 2024".
func formatDate(s string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return t.Format("January 2, 2006")
}
