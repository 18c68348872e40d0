package content

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/eringen/portfolio"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

const goArticle = `---
title: Concurrency in Go
date: 2024-03-01
desc: Goroutines and channels.
tags:
  - go
  - Concurrency
featured: true
---
# Intro

Goroutines are cheap.
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "concurrency-in-go.md"), goArticle)
	writeFile(t, filepath.Join(dir, "older", "index.md"), "---\ntitle: Older\ndate: 2023-05-10\n---\nSome older text.\n")
	writeFile(t, filepath.Join(dir, "project.md"), "---\ntitle: A Project\ndate: 2024-01-01\ntype: Project\n---\nnot an article\n")
	writeFile(t, filepath.Join(dir, "draft.md"), "---\ntitle: Draft\ndate: 2024-04-01\npublished: false\npath: /articles/my-draft/\n---\nwip\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	articles, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("Load returned %d articles, want 3: %+v", len(articles), articles)
	}

	if articles[0].Slug != "my-draft" || articles[0].Published {
		t.Errorf("first article = %+v, want unpublished my-draft", articles[0])
	}
	a := articles[1]
	if a.Slug != "concurrency-in-go" {
		t.Errorf("Slug = %q", a.Slug)
	}
	if a.Title != "Concurrency in Go" || a.Date != "2024-03-01" || a.Description != "Goroutines and channels." {
		t.Errorf("unexpected article fields: %+v", a)
	}
	if !a.Featured || !a.Published {
		t.Errorf("Featured/Published = %v/%v", a.Featured, a.Published)
	}
	if len(a.Tags) != 2 || a.Tags[1] != "Concurrency" {
		t.Errorf("Tags = %v", a.Tags)
	}
	if a.Excerpt != "Intro Goroutines are cheap." {
		t.Errorf("Excerpt = %q", a.Excerpt)
	}
	if !strings.HasPrefix(a.Content, "# Intro") {
		t.Errorf("Content = %q", a.Content)
	}
	if a.Link != "/articles/concurrency-in-go/" {
		t.Errorf("Link = %q", a.Link)
	}
	if articles[2].Slug != "older" {
		t.Errorf("index.md slug = %q, want older", articles[2].Slug)
	}
}

func TestLoadDuplicateSlug(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "---\ntitle: A\ndate: 2024-01-01\nslug: same\n---\n")
	writeFile(t, filepath.Join(dir, "b.md"), "---\ntitle: B\ndate: 2024-01-02\nslug: same\n---\n")

	if _, err := Load(dir, Options{}); !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("Load error = %v, want ErrDuplicateSlug", err)
	}
}

func TestLoadNumericSlug(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2024.md"), "---\ntitle: A year in review\ndate: 2024-12-31\n---\n")

	if _, err := Load(dir, Options{}); !errors.Is(err, ErrNumericSlug) {
		t.Errorf("Load error = %v, want ErrNumericSlug", err)
	}
}

func TestLoadInvalidDate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.md"), "---\ntitle: Bad\ndate: yesterday\n---\n")

	if _, err := Load(dir, Options{}); err == nil {
		t.Error("expected an error for an invalid date")
	}
}

func TestLoadCoverImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "articles", "cover.png")
	if err := os.MkdirAll(filepath.Dir(src), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 900, 300))); err != nil {
		t.Fatal(err)
	}
	f.Close()
	writeFile(t, filepath.Join(dir, "articles", "pic.md"), "---\ntitle: Pic\ndate: 2024-01-01\ncoverimg: ./cover.png\n---\nbody\n")

	articles, err := Load(filepath.Join(dir, "articles"), Options{Images: portfolio.NewImagePipeline(filepath.Join(dir, "public"))})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := articles[0].CoverImage; !strings.HasPrefix(got, "/public/generated/cover-") || !strings.HasSuffix(got, "-450.png") {
		t.Errorf("CoverImage = %q", got)
	}
}

func TestLoadCoverImagesPerArticleDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"red", "blue"} {
		src := filepath.Join(dir, "articles", name, "cover.png")
		if err := os.MkdirAll(filepath.Dir(src), 0o755); err != nil {
			t.Fatal(err)
		}
		f, err := os.Create(src)
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 600, 300))); err != nil {
			t.Fatal(err)
		}
		f.Close()
		writeFile(t, filepath.Join(dir, "articles", name, "index.md"),
			"---\ntitle: "+name+"\ndate: 2024-01-01\ncoverimg: ./cover.png\n---\nbody\n")
	}

	articles, err := Load(filepath.Join(dir, "articles"), Options{Images: portfolio.NewImagePipeline(filepath.Join(dir, "public"))})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("loaded %d articles, want 2", len(articles))
	}
	if articles[0].CoverImage == articles[1].CoverImage {
		t.Errorf("articles in different directories share cover %q", articles[0].CoverImage)
	}
}

func TestSync(t *testing.T) {
	dir := t.TempDir()
	store, err := portfolio.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if err := store.SaveArticle(portfolio.Article{Slug: "removed", Title: "Removed", Date: "2020-01-01", Published: true}); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "concurrency-in-go.md"), goArticle)

	res, err := Sync(dir, store, Options{})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if res.Saved != 1 || res.Deleted != 1 {
		t.Errorf("Result = %+v, want 1 saved 1 deleted", res)
	}
	got, err := store.GetArticle("concurrency-in-go")
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if len(got.Tags) != 2 || got.Tags[1] != "concurrency" {
		t.Errorf("stored tags = %v", got.Tags)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, 50*time.Millisecond, func() { calls.Add(1) })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		writeFile(t, filepath.Join(dir, "a.md"), goArticle)
	}

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if calls.Load() != 1 {
		t.Errorf("onChange called %d times, want 1 (debounced)", calls.Load())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Watch did not return after cancel")
	}
}
