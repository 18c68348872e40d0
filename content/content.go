// Package content loads articles from markdown files with YAML frontmatter
// and syncs them into the article store.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/eringen/portfolio"
	"github.com/eringen/portfolio/markdown"
)

// frontMatter is the header block of an article file.
type frontMatter struct {
	Title     string   `yaml:"title"`
	Date      string   `yaml:"date"`
	Desc      string   `yaml:"desc"`
	Tags      []string `yaml:"tags"`
	Type      string   `yaml:"type"`
	Featured  bool     `yaml:"featured"`
	CoverImg  string   `yaml:"coverimg"`
	Path      string   `yaml:"path"`
	Slug      string   `yaml:"slug"`
	Published *bool    `yaml:"published"`
}

// Options controls how articles are loaded.
type Options struct {
	// Images generates cover image variants. Covers are skipped when nil.
	Images *portfolio.ImagePipeline
	// ExcerptLength is the excerpt size in runes (default markdown.ExcerptLength).
	ExcerptLength int
}

// ErrDuplicateSlug is returned when two files resolve to the same slug.
var ErrDuplicateSlug = errors.New("content: duplicate slug")

// ErrNumericSlug is returned for an all-digit slug, which would collide with
// the article listing's page URLs.
var ErrNumericSlug = errors.New("content: numeric slug")

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

// Load walks dir and parses every .md file into an article. Files whose
// type is set to something other than "article" are skipped. Articles are
// returned newest first.
func Load(dir string, opts Options) ([]portfolio.Article, error) {
	renderer := markdown.New()
	seen := make(map[string]string)
	var articles []portfolio.Article

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		a, ok, err := loadFile(path, renderer, opts)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if prev, dup := seen[a.Slug]; dup {
			return fmt.Errorf("%w %q in %s and %s", ErrDuplicateSlug, a.Slug, prev, path)
		}
		seen[a.Slug] = path
		articles = append(articles, a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].Date != articles[j].Date {
			return articles[i].Date > articles[j].Date
		}
		return articles[i].Slug < articles[j].Slug
	})
	return articles, nil
}

func loadFile(path string, renderer *markdown.Renderer, opts Options) (portfolio.Article, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return portfolio.Article{}, false, fmt.Errorf("content: read %s: %w", path, err)
	}
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return portfolio.Article{}, false, fmt.Errorf("content: frontmatter %s: %w", path, err)
	}
	if t := strings.ToLower(strings.TrimSpace(fm.Type)); t != "" && t != "article" {
		return portfolio.Article{}, false, nil
	}
	if strings.TrimSpace(fm.Title) == "" {
		return portfolio.Article{}, false, fmt.Errorf("content: %s: title is required", path)
	}
	date, err := parseDate(fm.Date)
	if err != nil {
		return portfolio.Article{}, false, fmt.Errorf("content: %s: %w", path, err)
	}

	text := strings.TrimSpace(string(body))
	a := portfolio.Article{
		Title:       strings.TrimSpace(fm.Title),
		Slug:        slugFor(path, fm),
		Date:        date,
		Description: strings.TrimSpace(fm.Desc),
		Excerpt:     renderer.Excerpt(text, opts.ExcerptLength),
		Tags:        portfolio.FilterEmpty(fm.Tags),
		Content:     text,
		Featured:    fm.Featured,
		Published:   fm.Published == nil || *fm.Published,
	}
	if a.Slug == "" {
		return portfolio.Article{}, false, fmt.Errorf("content: %s: cannot derive a slug", path)
	}
	if portfolio.IsPageNumber(a.Slug) {
		return portfolio.Article{}, false, fmt.Errorf("%w: %s: %q is a listing page number", ErrNumericSlug, path, a.Slug)
	}
	a.Link = portfolio.ArticleURL(a.Slug)

	if fm.CoverImg != "" && opts.Images != nil {
		src := fm.CoverImg
		if !filepath.IsAbs(src) {
			src = filepath.Join(filepath.Dir(path), src)
		}
		v, err := opts.Images.Variant(src, portfolio.CoverWidth)
		if err != nil {
			return portfolio.Article{}, false, fmt.Errorf("content: %s: cover: %w", path, err)
		}
		a.CoverImage = v.URL
	}
	return a, true, nil
}

// slugFor picks the slug from the frontmatter slug, then the last segment
// of the frontmatter path, then the file name. A file named index.md takes
// its directory's name.
func slugFor(path string, fm frontMatter) string {
	if fm.Slug != "" {
		return portfolio.Slugify(fm.Slug)
	}
	if p := strings.Trim(fm.Path, "/"); p != "" {
		return portfolio.Slugify(p[strings.LastIndex(p, "/")+1:])
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.EqualFold(name, "index") {
		name = filepath.Base(filepath.Dir(path))
	}
	return portfolio.Slugify(name)
}

func parseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}
