package portfolio

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides CRUD operations for articles.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the importer write while the server reads; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    excerpt TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL,
    content TEXT NOT NULL,
    cover_image TEXT NOT NULL DEFAULT '',
    featured INTEGER NOT NULL DEFAULT 0,
    published INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_articles_date ON articles(date);
`)
	return err
}

const articleColumns = `slug, title, date, description, excerpt, tags, content, cover_image, featured, published`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (Article, error) {
	var slug, title, date, description, excerpt, tags, content, cover string
	var featured, published int
	if err := row.Scan(&slug, &title, &date, &description, &excerpt, &tags, &content, &cover, &featured, &published); err != nil {
		return Article{}, err
	}
	return Article{
		Slug:        slug,
		Title:       title,
		Date:        date,
		Description: description,
		Excerpt:     excerpt,
		Tags:        ParseTags(tags),
		Content:     content,
		CoverImage:  cover,
		Featured:    featured == 1,
		Published:   published == 1,
		Link:        ArticleURL(slug),
	}, nil
}

func (s *Store) queryArticles(query string, args ...any) ([]Article, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// ListArticles returns all published articles ordered by date descending.
// Tag filtering happens in ArticleCache, which matches tags by their
// kebab-cased form.
func (s *Store) ListArticles() ([]Article, error) {
	return s.queryArticles(`SELECT ` + articleColumns + ` FROM articles WHERE published = 1 ORDER BY date DESC, slug`)
}

// CountArticles returns the number of published articles.
func (s *Store) CountArticles() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM articles WHERE published = 1`).Scan(&n)
	return n, err
}

// ListAllArticles returns every article (published and drafts) ordered by date descending.
func (s *Store) ListAllArticles() ([]Article, error) {
	return s.queryArticles(`SELECT ` + articleColumns + ` FROM articles ORDER BY date DESC, slug`)
}

// GetArticle returns a single published article by slug.
func (s *Store) GetArticle(slug string) (Article, error) {
	return scanArticle(s.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE slug = ? AND published = 1`, slug))
}

// TagCounts returns every tag of a published article with the number of
// articles carrying it, most used first; ties are ordered by name.
func (s *Store) TagCounts() ([]TagCount, error) {
	rows, err := s.db.Query(`SELECT tags FROM articles WHERE published = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			counts[t]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result := make([]TagCount, 0, len(counts))
	for t, n := range counts {
		result = append(result, TagCount{Tag: t, Count: n})
	}
	SortTagCounts(result)
	return result, nil
}

// SaveArticle upserts an article. Tags are normalized to lowercase.
func (s *Store) SaveArticle(a Article) error {
	return saveArticle(s.db, a)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func saveArticle(db execer, a Article) error {
	normalizedTags := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		if t = normalizeTag(t); t != "" {
			normalizedTags = append(normalizedTags, t)
		}
	}
	tagString := "," + strings.Join(normalizedTags, ",") + ","
	_, err := db.Exec(`INSERT OR REPLACE INTO articles (`+articleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Slug, a.Title, a.Date, a.Description, a.Excerpt, tagString, a.Content, a.CoverImage, boolInt(a.Featured), boolInt(a.Published))
	return err
}

// ReplaceArticles makes the stored set of articles equal to articles in a
// single transaction: every article is upserted and stored slugs missing
// from the set are deleted. It returns the number of deleted articles.
func (s *Store) ReplaceArticles(articles []Article) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	keep := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		if err := saveArticle(tx, a); err != nil {
			return 0, err
		}
		keep[a.Slug] = struct{}{}
	}

	rows, err := tx.Query(`SELECT slug FROM articles`)
	if err != nil {
		return 0, err
	}
	var stale []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			rows.Close()
			return 0, err
		}
		if _, ok := keep[slug]; !ok {
			stale = append(stale, slug)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}
	for _, slug := range stale {
		if _, err := tx.Exec(`DELETE FROM articles WHERE slug = ?`, slug); err != nil {
			return 0, err
		}
	}
	return len(stale), tx.Commit()
}

// DeleteArticle removes an article by slug.
func (s *Store) DeleteArticle(slug string) error {
	_, err := s.db.Exec(`DELETE FROM articles WHERE slug = ?`, slug)
	return err
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// SortTagCounts orders tag counts by count descending, then tag ascending.
func SortTagCounts(tags []TagCount) {
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
