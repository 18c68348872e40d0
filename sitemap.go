package portfolio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists every site path; article entries carry their date.
func (a *App) renderSitemap(c echo.Context, paths []string, articles []Article) error {
	lastMod := make(map[string]string, len(articles))
	for _, art := range articles {
		lastMod[art.Link] = art.Date
	}
	urls := make([]sitemapURL, 0, len(paths))
	for _, p := range paths {
		urls = append(urls, sitemapURL{
			Loc:     AbsoluteURL(a.Config.URL, p),
			LastMod: lastMod[p],
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
