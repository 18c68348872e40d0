package suggest

import "testing"

var sitePaths = []string{
	"/",
	"/articles/",
	"/articles/2/",
	"/articles/go-concurrency-patterns/",
	"/articles/building-a-theme-picker/",
	"/tags/go/",
	"/about/",
}

func TestBestMatchExact(t *testing.T) {
	m, ok := BestMatch("/articles/go-concurrency-patterns/", sitePaths)
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Target != "/articles/go-concurrency-patterns/" || m.Rating != 1 {
		t.Errorf("BestMatch = %+v, want exact match with rating 1", m)
	}
}

func TestSuggestTypo(t *testing.T) {
	m, ok := Suggest("/articles/go-concurency-pattern/", sitePaths, Threshold)
	if !ok {
		t.Fatal("expected a suggestion for a near miss")
	}
	if m.Target != "/articles/go-concurrency-patterns/" {
		t.Errorf("Target = %q", m.Target)
	}
	if m.Rating <= Threshold {
		t.Errorf("Rating = %v, want > %v", m.Rating, Threshold)
	}
}

func TestSuggestBelowThreshold(t *testing.T) {
	if m, ok := Suggest("/zzzz-qqqq/", sitePaths, Threshold); ok {
		t.Errorf("unexpected suggestion %+v", m)
	}
}

func TestSuggestThresholdIsExclusive(t *testing.T) {
	m, ok := BestMatch("/articles/go-concurrency-patterns/", sitePaths)
	if !ok {
		t.Fatal("expected a match")
	}
	if _, ok := Suggest("/articles/go-concurrency-patterns/", sitePaths, m.Rating); ok {
		t.Error("a rating equal to the threshold must not be suggested")
	}
}

func TestBestMatchSkipsExcluded(t *testing.T) {
	if m, ok := BestMatch("/404/", []string{"/404/", "/404", "/404.html", "/dev-404-page"}); ok {
		t.Errorf("excluded paths should not match, got %+v", m)
	}
	m, ok := BestMatch("/404/", []string{"/404/", "/about/"})
	if !ok || m.Target != "/about/" {
		t.Errorf("BestMatch = %+v, %v", m, ok)
	}
}

func TestBestMatchEmpty(t *testing.T) {
	if _, ok := BestMatch("/anything/", nil); ok {
		t.Error("no candidates should yield no match")
	}
}

func TestBestMatchTieKeepsFirst(t *testing.T) {
	m, ok := BestMatch("/x/", []string{"/a/", "/b/"})
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Target != "/a/" {
		t.Errorf("tie should keep the first candidate, got %q", m.Target)
	}
}

func TestRateIsCaseSensitive(t *testing.T) {
	if r := Rate("/articles/go/", "/articles/go/"); r != 1 {
		t.Errorf("Rate of identical paths = %v, want 1", r)
	}
	if r := Rate("/ARTICLES/GO/", "/articles/go/"); r >= 0.5 {
		t.Errorf("Rate across case = %v, want a low score", r)
	}
}
