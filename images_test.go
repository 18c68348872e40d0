package portfolio

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if strings.HasSuffix(path, ".png") {
		err = png.Encode(f, img)
	} else {
		err = jpeg.Encode(f, img, nil)
	}
	if err != nil {
		t.Fatal(err)
	}
}

func TestVariantResizesJPEG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "My Cover.jpg")
	writeTestImage(t, src, 900, 600)

	p := NewImagePipeline(filepath.Join(dir, "public"))
	v, err := p.Variant(src, CoverWidth)
	if err != nil {
		t.Fatalf("Variant failed: %v", err)
	}
	name := variantStem(src) + "-450.jpg"
	if v.URL != "/public/generated/"+name {
		t.Errorf("URL = %q", v.URL)
	}
	if !strings.HasPrefix(name, "my-cover-") {
		t.Errorf("variant name %q should start with the slugified file name", name)
	}
	if v.Width != 450 || v.Height != 300 {
		t.Errorf("size = %dx%d, want 450x300", v.Width, v.Height)
	}
	if _, err := os.Stat(filepath.Join(dir, "public", "generated", name)); err != nil {
		t.Errorf("variant not written: %v", err)
	}
}

func TestVariantKeepsPNGAndDoesNotUpscale(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bulb.png")
	writeTestImage(t, src, 40, 80)

	p := NewImagePipeline(filepath.Join(dir, "public"))
	v, err := p.Variant(src, BulbWidth)
	if err != nil {
		t.Fatalf("Variant failed: %v", err)
	}
	if !strings.HasPrefix(v.URL, "/public/generated/bulb-") || !strings.HasSuffix(v.URL, "-52.png") {
		t.Errorf("URL = %q, want a png variant", v.URL)
	}
	if v.Width != 40 || v.Height != 80 {
		t.Errorf("size = %dx%d, want 40x80", v.Width, v.Height)
	}
}

func TestVariantReusesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "me.png")
	writeTestImage(t, src, 300, 300)

	first, err := NewImagePipeline(filepath.Join(dir, "public")).Variant(src, HeroWidth)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewImagePipeline(filepath.Join(dir, "public")).Variant(src, HeroWidth)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("variants differ: %+v vs %+v", first, second)
	}
}

func TestVariantMissingSource(t *testing.T) {
	p := NewImagePipeline(t.TempDir())
	if _, err := p.Variant("does/not/exist.jpg", 100); err == nil {
		t.Error("expected an error for a missing source")
	}
}

func fillImage(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 600, 300))
	for x := 0; x < 600; x++ {
		for y := 0; y < 300; y++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestVariantSameNameDifferentDirs(t *testing.T) {
	dir := t.TempDir()
	red := filepath.Join(dir, "Body", "Thinking.png")
	blue := filepath.Join(dir, "Torso", "Thinking.png")
	fillImage(t, red, color.RGBA{R: 255, A: 255})
	fillImage(t, blue, color.RGBA{B: 255, A: 255})

	p := NewImagePipeline(filepath.Join(dir, "public"))
	rv, err := p.Variant(red, HeroWidth)
	if err != nil {
		t.Fatalf("Variant(red): %v", err)
	}
	bv, err := p.Variant(blue, HeroWidth)
	if err != nil {
		t.Fatalf("Variant(blue): %v", err)
	}
	if rv.URL == bv.URL {
		t.Fatalf("same-named sources share variant %q", rv.URL)
	}

	for url, want := range map[string]color.RGBA{rv.URL: {R: 255, A: 255}, bv.URL: {B: 255, A: 255}} {
		f, err := os.Open(filepath.Join(dir, "public", "generated", filepath.Base(url)))
		if err != nil {
			t.Fatalf("open %s: %v", url, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
		r, g, b, a := img.At(10, 10).RGBA()
		got := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
		if got != want {
			t.Errorf("%s pixel = %v, want %v", url, got, want)
		}
	}
}
