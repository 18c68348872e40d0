package portfolio

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/analytics"
	"github.com/eringen/portfolio/pager"
	"github.com/eringen/portfolio/suggest"
)

const relatedArticles = 3

func (a *App) handleHome(c echo.Context) error {
	articles, err := a.Cache.ListArticles("")
	if err != nil {
		return err
	}
	if len(articles) > a.Config.RecentArticles {
		articles = articles[:a.Config.RecentArticles]
	}
	chrome := a.chrome(c, PageMeta{
		Description: a.Config.Description,
		URL:         BuildURL(a.Config.URL),
		OGType:      "website",
		SocialCard:  "social-card",
		JSONLD:      WebsiteJsonLD(a.Config),
	})
	return Render(c, a.Views.Home(HomePage{Chrome: chrome, Hero: a.hero, Recent: articles}))
}

func (a *App) handleArticles(c echo.Context) error {
	return a.renderArticlesPage(c, 1)
}

// handleArticlesParam serves both "/articles/<n>/" pager pages and
// "/articles/<slug>/" article pages. An all-digit param is always a page
// number; "/articles/1/" and zero-padded numbers redirect to the canonical
// page URL.
func (a *App) handleArticlesParam(c echo.Context) error {
	param := c.Param("param")
	if !IsPageNumber(param) {
		return a.renderArticle(c, param)
	}
	n, err := strconv.Atoi(param)
	if err != nil || n < 1 {
		return echo.ErrNotFound
	}
	if n == 1 {
		return c.Redirect(http.StatusMovedPermanently, "/articles/")
	}
	if canonical := strconv.Itoa(n); canonical != param {
		return c.Redirect(http.StatusMovedPermanently, "/articles/"+canonical+"/")
	}
	return a.renderArticlesPage(c, n)
}

// IsPageNumber reports whether s is made of ASCII digits only. Such
// segments under /articles/ are pager pages, so they cannot be slugs.
func IsPageNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (a *App) renderArticlesPage(c echo.Context, n int) error {
	articles, total, err := a.Cache.Page(n, a.Config.ArticlesPerPage)
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	topTags, err := a.Cache.TopTags(a.Config.TopTags)
	if err != nil {
		return err
	}
	popular, err := a.popular()
	if err != nil {
		c.Logger().Errorf("popular content: %v", err)
	}

	p := pager.New(n, total, "/articles/")
	title := "Articles"
	if n > 1 {
		title = "Articles - Page " + strconv.Itoa(n)
	}
	chrome := a.chrome(c, PageMeta{
		Title:       title,
		Description: "Articles by " + a.Config.Hero.Name,
		URL:         AbsoluteURL(a.Config.URL, p.PageURL(n)),
		OGType:      "website",
		SocialCard:  "social-card-articles",
	})
	return Render(c, a.Views.Articles(ArticlesPage{
		Chrome:   chrome,
		Articles: articles,
		Pager:    p,
		Popular:  popular,
		TopTags:  topTags,
	}))
}

// popular returns the most viewed article pages, titled from the article
// when it still exists.
func (a *App) popular() ([]PopularLink, error) {
	if a.Analytics == nil {
		return nil, nil
	}
	stats, err := a.Analytics.Popular("/articles/", analytics.PagerPath, a.Config.PopularLimit)
	if err != nil {
		return nil, err
	}
	links := make([]PopularLink, 0, len(stats))
	for _, s := range stats {
		title := PathToTitle(s.Path)
		slug := strings.Trim(strings.TrimPrefix(s.Path, "/articles/"), "/")
		if art, err := a.Cache.GetArticle(slug); err == nil {
			title = art.Title
		}
		links = append(links, PopularLink{Path: s.Path, Title: title})
	}
	return links, nil
}

func (a *App) renderArticle(c echo.Context, slug string) error {
	article, err := a.Cache.GetArticle(slug)
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	related, err := a.Cache.Related(article, relatedArticles)
	if err != nil {
		return err
	}
	chrome := a.chrome(c, PageMeta{
		Title:       article.Title,
		Description: article.Summary(),
		URL:         BuildURL(a.Config.URL, "articles", article.Slug),
		OGType:      "article",
		SocialCard:  "social-card-articles",
		JSONLD:      ArticleJsonLD(article, a.Config),
	})
	return Render(c, a.Views.Article(ArticlePage{Chrome: chrome, Article: article, Related: related}))
}

func (a *App) handleTag(c echo.Context) error {
	slug := c.Param("tag")
	articles, err := a.Cache.ListArticles(slug)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		return echo.ErrNotFound
	}
	tag := slug
	for _, t := range articles[0].Tags {
		if KebabCase(t) == KebabCase(slug) {
			tag = t
			break
		}
	}
	chrome := a.chrome(c, PageMeta{
		Title:       "Articles tagged " + UpperTag(tag),
		Description: strconv.Itoa(len(articles)) + " articles tagged " + tag,
		URL:         AbsoluteURL(a.Config.URL, TagURL(tag)),
		OGType:      "website",
		SocialCard:  "social-card-articles",
	})
	return Render(c, a.Views.Tag(TagPage{Chrome: chrome, Tag: tag, Articles: articles}))
}

func (a *App) handleSitemap(c echo.Context) error {
	paths, err := a.SitePaths()
	if err != nil {
		return err
	}
	articles, err := a.Cache.ListArticles("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, paths, articles)
}

func (a *App) handleFeed(c echo.Context) error {
	articles, err := a.Cache.ListArticles("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, articles)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

// SitePaths lists every page the site serves: the home page, the article
// listing and its numbered pages, each article, each tag page and the
// configured extra paths. These are the 404 suggestion candidates.
func (a *App) SitePaths() ([]string, error) {
	articles, err := a.Cache.ListArticles("")
	if err != nil {
		return nil, err
	}
	tags, err := a.Cache.TagCounts()
	if err != nil {
		return nil, err
	}
	paths := []string{"/", "/articles/"}
	total := pager.PageCount(len(articles), a.Config.ArticlesPerPage)
	for n := 2; n <= total; n++ {
		paths = append(paths, "/articles/"+strconv.Itoa(n)+"/")
	}
	for _, art := range articles {
		paths = append(paths, art.Link)
	}
	for _, t := range tags {
		paths = append(paths, t.Href())
	}
	paths = append(paths, a.Config.ExtraPaths...)
	return paths, nil
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		if rerr := a.renderNotFound(c); rerr != nil {
			c.Logger().Errorf("render 404: %v", rerr)
		}
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.chrome(c, PageMeta{Title: "Something went wrong"})))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func (a *App) renderNotFound(c echo.Context) error {
	path := c.Request().URL.Path
	page := NotFoundPage{
		Chrome: a.chrome(c, PageMeta{
			Title:      "404",
			SocialCard: "social-card-404",
			Video:      "404.mp4",
		}),
		Path: path,
	}
	candidates, err := a.SitePaths()
	if err != nil {
		c.Logger().Errorf("site paths: %v", err)
	}
	if m, ok := suggest.Suggest(path, candidates, a.Config.SuggestThreshold); ok {
		page.Suggestion = m.Target
		page.Rating = m.Rating
	}
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(page))
}
