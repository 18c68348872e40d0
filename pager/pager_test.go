package pager

import (
	"reflect"
	"testing"
)

func pages(links []Link) []int {
	var out []int
	for _, l := range links {
		out = append(out, l.Page)
	}
	return out
}

func TestWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 1, []int{1}},
		{1, 2, []int{1, 2}},
		{1, 3, []int{1, 2, 3}},
		{1, 4, []int{1, 2, 3, 4}},
		{1, 10, []int{1, 2, 3, 4}},
		{2, 10, []int{1, 2, 3, 4}},
		{3, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{9, 10, []int{7, 8, 9, 10}},
		{10, 10, []int{7, 8, 9, 10}},
		{3, 3, []int{1, 2, 3}},
		{2, 2, []int{1, 2}},
	}
	for _, tt := range tests {
		got := pages(New(tt.current, tt.total, "/articles/").Window())
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Window(%d of %d) = %v, want %v", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestWindowLinks(t *testing.T) {
	links := New(2, 5, "/articles/").Window()
	want := []Link{
		{Page: 1, Href: "/articles/"},
		{Page: 2, Href: "#", Active: true},
		{Page: 3, Href: "/articles/3/"},
		{Page: 4, Href: "/articles/4/"},
	}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("Window() = %+v, want %+v", links, want)
	}
}

func TestPrevNext(t *testing.T) {
	p := New(1, 3, "/articles/")
	if p.HasPrev() {
		t.Error("page 1 has no previous page")
	}
	if !p.HasNext() || p.NextURL() != "/articles/2/" {
		t.Errorf("NextURL = %q", p.NextURL())
	}

	p = New(2, 3, "/articles/")
	if p.PrevURL() != "/articles/" {
		t.Errorf("PrevURL from page 2 = %q, want /articles/", p.PrevURL())
	}

	p = New(3, 3, "/articles/")
	if p.HasNext() {
		t.Error("last page has no next page")
	}
	if p.PrevURL() != "/articles/2/" {
		t.Errorf("PrevURL = %q", p.PrevURL())
	}
}

func TestPageCountAndOffset(t *testing.T) {
	tests := []struct {
		total, per, want int
	}{
		{0, 6, 1},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{13, 6, 3},
		{5, 0, 1},
	}
	for _, tt := range tests {
		if got := PageCount(tt.total, tt.per); got != tt.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tt.total, tt.per, got, tt.want)
		}
	}
	if got := Offset(3, 6); got != 12 {
		t.Errorf("Offset(3, 6) = %d, want 12", got)
	}
	if got := Offset(0, 6); got != 0 {
		t.Errorf("Offset(0, 6) = %d, want 0", got)
	}
}

func TestNewClamps(t *testing.T) {
	p := New(7, 3, "/x/")
	if p.Current != 3 {
		t.Errorf("Current = %d, want 3", p.Current)
	}
	p = New(0, 0, "/x/")
	if p.Current != 1 || p.Total != 1 {
		t.Errorf("New(0, 0) = %+v", p)
	}
}
