// ABOUTME: Decodes image files into framebuffers (PNG, JPEG, GIF, WebP, BMP, TIFF)
// ABOUTME: Pixels are flattened to RGBA first, so transparent areas end up black

package gfx

import (
	"fmt"
	goimage "image"
	"io"
	"os"

	// Register decoders for standard formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/mauromedda/termgfx/internal/log"
)

// NewImage loads the image at path into a framebuffer of the image's
// pixel dimensions.
func NewImage(path string) (*Framebuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w: %w", ErrImageDecode, err)
	}
	defer f.Close()

	fb, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fb, nil
}

// DecodeImage reads any registered image format from r.
func DecodeImage(r io.Reader) (*Framebuffer, error) {
	img, format, err := goimage.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w: %w", ErrImageDecode, err)
	}
	fb := FromImage(img)
	log.Debug("image: decoded %s %dx%d", format, fb.width, fb.height)
	return fb, nil
}

// FromImage copies img into a new framebuffer.
func FromImage(img goimage.Image) *Framebuffer {
	b := img.Bounds()
	rgba := goimage.NewRGBA(goimage.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	fb := NewFramebuffer(b.Dx(), b.Dy(), Black)
	for y := range fb.height {
		for x := range fb.width {
			i := rgba.PixOffset(x, y)
			// premultiplied: alpha has already darkened the channels
			fb.cells[y*fb.width+x] = RGB(rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2])
		}
	}
	return fb
}
