package portfolio

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/draw"
)

const (
	jpegQuality     = 80
	generatedSubdir = "generated"

	// Widths of the generated variants.
	CoverWidth = 450
	HeroWidth  = 230
	BulbWidth  = 52
)

// ImagePipeline writes resized copies of source images under a static
// directory and returns the public URLs they are served from.
type ImagePipeline struct {
	dir       string // filesystem directory the variants are written to
	urlPrefix string // public URL prefix for dir

	mu   sync.Mutex
	done map[string]ImageVariant
}

// NewImagePipeline creates a pipeline writing into staticDir/generated,
// served under /public/generated/.
func NewImagePipeline(staticDir string) *ImagePipeline {
	return &ImagePipeline{
		dir:       filepath.Join(staticDir, generatedSubdir),
		urlPrefix: "/public/" + generatedSubdir + "/",
		done:      make(map[string]ImageVariant),
	}
}

// Variant returns a copy of the image at src scaled to width pixels wide.
// Images narrower than width are not upscaled. PNG sources stay PNG so
// transparency survives; everything else is re-encoded as JPEG. A variant
// that is already on disk and newer than its source is reused.
func (p *ImagePipeline) Variant(src string, width int) (ImageVariant, error) {
	key := fmt.Sprintf("%s@%d", src, width)
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.done[key]; ok {
		return v, nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return ImageVariant{}, fmt.Errorf("portfolio: image %s: %w", src, err)
	}
	ext := ".jpg"
	if strings.EqualFold(filepath.Ext(src), ".png") {
		ext = ".png"
	}
	name := fmt.Sprintf("%s-%d%s", variantStem(src), width, ext)
	out := filepath.Join(p.dir, name)

	if outInfo, err := os.Stat(out); err == nil && outInfo.ModTime().After(info.ModTime()) {
		if v, err := p.describe(out, name); err == nil {
			p.done[key] = v
			return v, nil
		}
	}

	f, err := os.Open(src)
	if err != nil {
		return ImageVariant{}, fmt.Errorf("portfolio: image %s: %w", src, err)
	}
	defer f.Close()

	data, w, h, err := resizeImage(f, width, ext == ".png")
	if err != nil {
		return ImageVariant{}, fmt.Errorf("portfolio: image %s: %w", src, err)
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return ImageVariant{}, fmt.Errorf("portfolio: create %s: %w", p.dir, err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return ImageVariant{}, fmt.Errorf("portfolio: write %s: %w", out, err)
	}
	v := ImageVariant{URL: p.urlPrefix + name, Width: w, Height: h}
	p.done[key] = v
	return v, nil
}

func (p *ImagePipeline) describe(path, name string) (ImageVariant, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageVariant{}, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return ImageVariant{}, err
	}
	return ImageVariant{URL: p.urlPrefix + name, Width: cfg.Width, Height: cfg.Height}, nil
}

// resizeImage decodes an image from src, scales it down to maxWidth when it
// is wider, and encodes it as PNG or JPEG.
func resizeImage(src io.Reader, maxWidth int, asPNG bool) ([]byte, int, int, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxWidth > 0 && w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxWidth
		h = newH
	}

	var buf bytes.Buffer
	if asPNG {
		if err := png.Encode(&buf, img); err != nil {
			return nil, 0, 0, fmt.Errorf("encode png: %w", err)
		}
	} else if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, 0, 0, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), w, h, nil
}

// variantStem names the variants of src: the slugified base name followed by
// a short hash of the absolute path, so same-named files in different
// directories get distinct variants.
func variantStem(src string) string {
	base := filepath.Base(src)
	abs, err := filepath.Abs(src)
	if err != nil {
		abs = src
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return Slugify(strings.TrimSuffix(base, filepath.Ext(base))) + "-" + hex.EncodeToString(sum[:4])
}
