package portfolio

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func seedArticles(t *testing.T, s *Store, n int, tags ...string) {
	t.Helper()
	for i := 1; i <= n; i++ {
		a := Article{
			Slug:      fmt.Sprintf("post-%02d", i),
			Title:     fmt.Sprintf("Post %d", i),
			Date:      fmt.Sprintf("2024-01-%02d", i),
			Tags:      tags,
			Published: true,
		}
		if err := s.SaveArticle(a); err != nil {
			t.Fatalf("SaveArticle: %v", err)
		}
	}
}

func TestCachePage(t *testing.T) {
	s := setupTestStore(t)
	seedArticles(t, s, 8)
	c := NewArticleCache(s, time.Minute)

	first, total, err := c.Page(1, 6)
	if err != nil {
		t.Fatalf("Page(1): %v", err)
	}
	if total != 2 || len(first) != 6 {
		t.Fatalf("Page(1) = %d articles of %d pages, want 6 of 2", len(first), total)
	}
	if first[0].Slug != "post-08" {
		t.Errorf("first article = %s, want newest post-08", first[0].Slug)
	}

	second, _, err := c.Page(2, 6)
	if err != nil {
		t.Fatalf("Page(2): %v", err)
	}
	if len(second) != 2 || second[1].Slug != "post-01" {
		t.Errorf("Page(2) = %+v", second)
	}

	for _, n := range []int{0, 3} {
		if _, _, err := c.Page(n, 6); !errors.Is(err, ErrNotFound) {
			t.Errorf("Page(%d) error = %v, want ErrNotFound", n, err)
		}
	}
}

func TestCacheEmptySiteHasOnePage(t *testing.T) {
	c := NewArticleCache(setupTestStore(t), time.Minute)
	articles, total, err := c.Page(1, 6)
	if err != nil {
		t.Fatalf("Page(1) on empty store: %v", err)
	}
	if total != 1 || len(articles) != 0 {
		t.Errorf("got %d articles of %d pages", len(articles), total)
	}
}

func TestCacheInvalidate(t *testing.T) {
	s := setupTestStore(t)
	seedArticles(t, s, 1)
	c := NewArticleCache(s, time.Hour)

	if list, _ := c.ListArticles(""); len(list) != 1 {
		t.Fatalf("expected 1 article, got %d", len(list))
	}
	seedArticles(t, s, 2)
	if list, _ := c.ListArticles(""); len(list) != 1 {
		t.Errorf("cache should still hold 1 article before invalidation, got %d", len(list))
	}
	c.Invalidate()
	if list, _ := c.ListArticles(""); len(list) != 2 {
		t.Errorf("expected 2 articles after invalidation, got %d", len(list))
	}
}

func TestCacheListArticlesByKebabTag(t *testing.T) {
	s := setupTestStore(t)
	s.SaveArticle(Article{Slug: "a", Title: "A", Date: "2024-01-01", Tags: []string{"Web Dev"}, Published: true})
	s.SaveArticle(Article{Slug: "b", Title: "B", Date: "2024-01-02", Tags: []string{"go"}, Published: true})
	c := NewArticleCache(s, time.Minute)

	list, err := c.ListArticles("web-dev")
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(list) != 1 || list[0].Slug != "a" {
		t.Errorf("ListArticles(web-dev) = %+v", list)
	}
}

func TestCacheTopTags(t *testing.T) {
	s := setupTestStore(t)
	seedArticles(t, s, 3, "go")
	s.SaveArticle(Article{Slug: "x", Title: "X", Date: "2023-01-01", Tags: []string{"css", "apple"}, Published: true})
	c := NewArticleCache(s, time.Minute)

	top, err := c.TopTags(2)
	if err != nil {
		t.Fatalf("TopTags: %v", err)
	}
	want := []TagCount{{"go", 3}, {"apple", 1}}
	if len(top) != 2 || top[0] != want[0] || top[1] != want[1] {
		t.Errorf("TopTags(2) = %+v, want %+v", top, want)
	}
}

func TestCacheRelated(t *testing.T) {
	s := setupTestStore(t)
	s.SaveArticle(Article{Slug: "a", Title: "A", Date: "2024-01-01", Tags: []string{"go"}, Published: true})
	s.SaveArticle(Article{Slug: "b", Title: "B", Date: "2024-01-02", Tags: []string{"go", "web"}, Published: true})
	s.SaveArticle(Article{Slug: "c", Title: "C", Date: "2024-01-03", Tags: []string{"css"}, Published: true})
	c := NewArticleCache(s, time.Minute)

	a, err := c.GetArticle("a")
	if err != nil {
		t.Fatalf("GetArticle: %v", err)
	}
	related, err := c.Related(a, 3)
	if err != nil {
		t.Fatalf("Related: %v", err)
	}
	if len(related) != 1 || related[0].Slug != "b" {
		t.Errorf("Related = %+v, want [b]", related)
	}
	if _, err := c.GetArticle("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetArticle(missing) error = %v", err)
	}
}
