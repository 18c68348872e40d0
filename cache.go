package portfolio

import (
	"database/sql"
	"sync"
	"time"

	"github.com/eringen/portfolio/pager"
)

// ErrNotFound is returned when a requested article does not exist.
var ErrNotFound = sql.ErrNoRows

// ArticleCache is an in-memory cache of published articles and tag counts with TTL.
type ArticleCache struct {
	mu       sync.RWMutex
	articles []Article
	tags     []TagCount
	fetched  time.Time
	ttl      time.Duration
	store    *Store
}

// NewArticleCache creates an ArticleCache backed by the given Store.
func NewArticleCache(s *Store, ttl time.Duration) *ArticleCache {
	return &ArticleCache{store: s, ttl: ttl}
}

func (c *ArticleCache) valid() bool {
	return c.articles != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ArticleCache) Invalidate() {
	c.mu.Lock()
	c.articles = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *ArticleCache) load() error {
	if c.valid() {
		return nil
	}
	articles, err := c.store.ListArticles()
	if err != nil {
		return err
	}
	tags, err := c.store.TagCounts()
	if err != nil {
		return err
	}
	if articles == nil {
		articles = []Article{}
	}
	c.articles = articles
	c.tags = tags
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached articles and tags after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ArticleCache) ensureLoaded() ([]Article, []TagCount, error) {
	c.mu.RLock()
	if c.valid() {
		articles, tags := c.articles, c.tags
		c.mu.RUnlock()
		return articles, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.articles, c.tags, nil
}

// ListArticles returns published articles, optionally filtered by tag. Tags
// match on their kebab-cased form so "/tags/web-dev/" finds "Web Dev".
func (c *ArticleCache) ListArticles(tag string) ([]Article, error) {
	articles, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return articles, nil
	}
	want := KebabCase(tag)
	var filtered []Article
	for _, a := range articles {
		for _, t := range a.Tags {
			if KebabCase(t) == want {
				filtered = append(filtered, a)
				break
			}
		}
	}
	return filtered, nil
}

// Page returns the articles on page n (1-based) and the total number of pages.
func (c *ArticleCache) Page(n, perPage int) ([]Article, int, error) {
	articles, _, err := c.ensureLoaded()
	if err != nil {
		return nil, 0, err
	}
	total := pager.PageCount(len(articles), perPage)
	if n < 1 || n > total {
		return nil, total, ErrNotFound
	}
	start := (n - 1) * perPage
	end := start + perPage
	if end > len(articles) {
		end = len(articles)
	}
	return articles[start:end], total, nil
}

// TagCounts returns tag counts ordered by count, then name.
func (c *ArticleCache) TagCounts() ([]TagCount, error) {
	_, tags, err := c.ensureLoaded()
	return tags, err
}

// TopTags returns at most n of the most used tags.
func (c *ArticleCache) TopTags(n int) ([]TagCount, error) {
	tags, err := c.TagCounts()
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(tags) > n {
		tags = tags[:n]
	}
	return tags, nil
}

// GetArticle returns a single published article by slug from the cache.
func (c *ArticleCache) GetArticle(slug string) (Article, error) {
	articles, _, err := c.ensureLoaded()
	if err != nil {
		return Article{}, err
	}
	for _, a := range articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Article{}, ErrNotFound
}

// Related returns up to n other articles sharing a tag with a, newest first.
func (c *ArticleCache) Related(a Article, n int) ([]Article, error) {
	articles, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	tags := make(map[string]struct{}, len(a.Tags))
	for _, t := range a.Tags {
		tags[normalizeTag(t)] = struct{}{}
	}
	var related []Article
	for _, other := range articles {
		if other.Slug == a.Slug {
			continue
		}
		for _, t := range other.Tags {
			if _, ok := tags[normalizeTag(t)]; ok {
				related = append(related, other)
				break
			}
		}
		if len(related) == n {
			break
		}
	}
	return related, nil
}
