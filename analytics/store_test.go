package analytics

import (
	"path/filepath"
	"testing"
	"time"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func record(t *testing.T, s *Store, path string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := s.RecordView(path, time.Now()); err != nil {
			t.Fatalf("RecordView(%s) failed: %v", path, err)
		}
	}
}

func TestSettings(t *testing.T) {
	s := setupStore(t)

	v, err := s.GetSetting("missing")
	if err != nil || v != "" {
		t.Errorf("GetSetting(missing) = %q, %v", v, err)
	}
	if err := s.SetSetting("k", "one"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting("k", "two"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.GetSetting("k"); v != "two" {
		t.Errorf("GetSetting(k) = %q, want two", v)
	}
	if v, _ := s.GetSetting("schema_version"); v != "1" {
		t.Errorf("schema_version = %q, want 1", v)
	}
}

func TestRecordView(t *testing.T) {
	s := setupStore(t)
	record(t, s, "/articles/go/", 3)

	n, err := s.Views("/articles/go/")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Views = %d, want 3", n)
	}
	if n, _ := s.Views("/nowhere/"); n != 0 {
		t.Errorf("Views(unknown) = %d, want 0", n)
	}
}

func TestPopular(t *testing.T) {
	s := setupStore(t)
	record(t, s, "/articles/", 50)
	record(t, s, "/articles/2/", 40)
	record(t, s, "/articles/go/", 5)
	record(t, s, "/articles/rust/", 9)
	record(t, s, "/articles/zig/", 5)
	record(t, s, "/about/", 100)

	got, err := s.Popular("/articles/", PagerPath, 8)
	if err != nil {
		t.Fatalf("Popular failed: %v", err)
	}
	want := []PageStat{{"/articles/rust/", 9}, {"/articles/go/", 5}, {"/articles/zig/", 5}}
	if len(got) != len(want) {
		t.Fatalf("Popular = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Popular[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	limited, err := s.Popular("/articles/", PagerPath, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Path != "/articles/rust/" {
		t.Errorf("Popular limit 1 = %v", limited)
	}
}

func TestForget(t *testing.T) {
	s := setupStore(t)
	record(t, s, "/articles/kept/", 1)
	record(t, s, "/articles/gone/", 1)

	n, err := s.Forget(func(p string) bool { return p == "/articles/kept/" })
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Forget removed %d, want 1", n)
	}
	if v, _ := s.Views("/articles/gone/"); v != 0 {
		t.Errorf("gone still has %d views", v)
	}
}

func TestCleanupStale(t *testing.T) {
	s := setupStore(t)
	if err := s.RecordView("/old/", time.Now().AddDate(0, 0, -400)); err != nil {
		t.Fatal(err)
	}
	record(t, s, "/new/", 1)

	if err := s.CleanupStale(365); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Views("/old/"); v != 0 {
		t.Errorf("old path should be removed, has %d views", v)
	}
	if v, _ := s.Views("/new/"); v != 1 {
		t.Errorf("new path views = %d, want 1", v)
	}
}
