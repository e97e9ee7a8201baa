// Package jacket decodes album art.
package jacket

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

type Loader struct{}

func (Loader) Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open jacket")
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to decode %v", path)
	}
	if img.Bounds().Empty() {
		return nil, errors.Errorf("empty %v image %v", format, path)
	}
	return img, nil
}

// Thumbnail scales img down to fit in w by h, keeping its aspect ratio.
func Thumbnail(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if w <= 0 || h <= 0 || b.Empty() {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	scale := float64(w) / float64(b.Dx())
	if s := float64(h) / float64(b.Dy()); s < scale {
		scale = s
	}
	tw, th := int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
