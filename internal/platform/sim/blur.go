package sim

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// BlurLayerName is stamped on every rendered overlay frame.
const BlurLayerName = "KeyGuard"

// BlurOverlay renders the keyguard blur layer into an RGBA frame while shown.
type BlurOverlay struct {
	mu      sync.Mutex
	visible bool
	width   int
	height  int
	frame   *image.RGBA
	shows   int
	hides   int
}

func NewBlurOverlay() *BlurOverlay {
	return &BlurOverlay{}
}

func (b *BlurOverlay) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.visible {
		return
	}
	b.visible = true
	b.shows++
	b.render()
}

func (b *BlurOverlay) Hide() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.visible {
		return
	}
	b.visible = false
	b.hides++
	b.frame = nil
}

func (b *BlurOverlay) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width == b.width && height == b.height {
		return
	}
	b.width, b.height = width, height
	if b.visible {
		b.render()
	}
}

// Visible reports whether the overlay is shown.
func (b *BlurOverlay) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// Size returns the current overlay size.
func (b *BlurOverlay) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// Transitions returns how many times the overlay went from hidden to shown
// and back.
func (b *BlurOverlay) Transitions() (shows, hides int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows, b.hides
}

// Frame returns the last rendered frame, or nil while hidden or unsized.
func (b *BlurOverlay) Frame() image.Image {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frame == nil {
		return nil
	}
	return b.frame
}

// WritePNG encodes the current frame. It writes nothing and returns false
// when there is no frame.
func (b *BlurOverlay) WritePNG(w io.Writer) (bool, error) {
	frame := b.Frame()
	if frame == nil {
		return false, nil
	}
	return true, png.Encode(w, frame)
}

// render must be called with b.mu held.
func (b *BlurOverlay) render() {
	if b.width <= 0 || b.height <= 0 {
		b.frame = nil
		return
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	src := blurSource()
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	stampLabel(dst, BlurLayerName)
	b.frame = dst
}

// blurSource is a small vertical gradient; scaling it up gives the soft
// look of a blurred wallpaper.
func blurSource() image.Image {
	src := image.NewRGBA(image.Rect(0, 0, 4, 8))
	for y := 0; y < 8; y++ {
		shade := uint8(40 + y*20)
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{R: shade / 2, G: shade / 2, B: shade, A: 200})
		}
	}
	return src
}

func stampLabel(img *image.RGBA, text string) {
	bounds := img.Bounds()
	// basicfont.Face7x13 glyphs are 7px wide, 13px tall
	x := bounds.Dx()/2 - len(text)*7/2
	y := bounds.Dy()/2 + 13/2
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
