package content

import (
	"fmt"

	"github.com/eringen/portfolio"
)

// Result summarizes an import.
type Result struct {
	Saved   int
	Deleted int
}

// Import makes the store hold exactly articles: each is upserted and
// stored articles missing from the set are deleted.
func Import(store *portfolio.Store, articles []portfolio.Article) (Result, error) {
	deleted, err := store.ReplaceArticles(articles)
	if err != nil {
		return Result{}, fmt.Errorf("content: import: %w", err)
	}
	return Result{Saved: len(articles), Deleted: deleted}, nil
}

// Sync loads dir and imports it into store.
func Sync(dir string, store *portfolio.Store, opts Options) (Result, error) {
	articles, err := Load(dir, opts)
	if err != nil {
		return Result{}, err
	}
	return Import(store, articles)
}
