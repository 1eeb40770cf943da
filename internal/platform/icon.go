package platform

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

const pixelSize = 4

// BadIconError reports a pixel buffer that cannot form an icon.
type BadIconError struct {
	ByteCount     int
	Width, Height uint32
}

func (e *BadIconError) Error() string {
	if e.ByteCount%pixelSize != 0 {
		return fmt.Sprintf("icon buffer length %d is not a multiple of 4", e.ByteCount)
	}
	return fmt.Sprintf("icon buffer holds %d pixels, but %dx%d requires %d",
		e.ByteCount/pixelSize, e.Width, e.Height, uint64(e.Width)*uint64(e.Height))
}

// Icon is a window icon stored as straight (non-premultiplied) RGBA.
type Icon struct {
	img *image.NRGBA
}

// NewIcon builds an icon from rows of RGBA bytes.
func NewIcon(rgba []byte, width, height uint32) (*Icon, error) {
	if len(rgba)%pixelSize != 0 || uint64(len(rgba)/pixelSize) != uint64(width)*uint64(height) || width == 0 {
		return nil, &BadIconError{ByteCount: len(rgba), Width: width, Height: height}
	}
	img := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	copy(img.Pix, rgba)
	return &Icon{img: img}, nil
}

// IconFromImage converts any image into an icon.
func IconFromImage(src image.Image) (*Icon, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, &BadIconError{}
	}
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(img, image.Point{}, src, b, xdraw.Src, nil)
	return &Icon{img: img}, nil
}

func (i *Icon) Width() uint32  { return uint32(i.img.Rect.Dx()) }
func (i *Icon) Height() uint32 { return uint32(i.img.Rect.Dy()) }

// RGBA returns a copy of the pixel buffer.
func (i *Icon) RGBA() []byte {
	out := make([]byte, len(i.img.Pix))
	copy(out, i.img.Pix)
	return out
}

// Image exposes the icon for drawing. Callers must not modify it.
func (i *Icon) Image() *image.NRGBA { return i.img }

// Resized returns a copy scaled to width x height. Backends use it when the
// platform only accepts fixed icon sizes.
func (i *Icon) Resized(width, height uint32) *Icon {
	if width == i.Width() && height == i.Height() {
		return i
	}
	dst := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), i.img, i.img.Bounds(), xdraw.Src, nil)
	return &Icon{img: dst}
}
