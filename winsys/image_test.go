package winsys

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/screen/format"
)

func TestImageWinSys_CreateDisplayTarget(t *testing.T) {
	ws := NewImageWinSys(nil)
	defer ws.Destroy()

	dt, err := ws.CreateDisplayTarget(format.RGBA8Unorm, 33, 7, 64)
	if err != nil {
		t.Fatalf("CreateDisplayTarget() error = %v", err)
	}
	defer dt.Destroy()

	if dt.Width() != 33 || dt.Height() != 7 {
		t.Errorf("size = %dx%d, want 33x7", dt.Width(), dt.Height())
	}
	// 33*4 = 132 bytes rounded up to the 64-byte alignment.
	if dt.Stride() != 192 {
		t.Errorf("Stride() = %d, want 192", dt.Stride())
	}

	pix, err := dt.Map()
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if len(pix) != 192*7 {
		t.Errorf("len(pix) = %d, want %d", len(pix), 192*7)
	}
	for i, b := range pix {
		if b != 0 {
			t.Fatalf("pix[%d] = %d, want zeroed target", i, b)
		}
	}
	if err := dt.Unmap(); err != nil {
		t.Errorf("Unmap() error = %v", err)
	}
}

func TestImageWinSys_UnsupportedFormat(t *testing.T) {
	ws := NewImageWinSys(nil)
	defer ws.Destroy()

	if ws.FormatSupported(format.BC1Unorm) {
		t.Error("FormatSupported(BC1Unorm) = true")
	}
	if _, err := ws.CreateDisplayTarget(format.BC1Unorm, 16, 16, 1); !errors.Is(err, ErrUnsupported) {
		t.Errorf("CreateDisplayTarget() error = %v, want ErrUnsupported", err)
	}
}

func TestImageWinSys_Display(t *testing.T) {
	out := image.NewRGBA(image.Rect(0, 0, 8, 8))
	ws := NewImageWinSys(out)
	defer ws.Destroy()

	dt, err := ws.CreateDisplayTarget(format.RGBA8Unorm, 8, 8, 1)
	if err != nil {
		t.Fatalf("CreateDisplayTarget() error = %v", err)
	}
	defer dt.Destroy()

	pix, err := dt.Map()
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	// Solid red.
	for i := 0; i < len(pix); i += 4 {
		pix[i] = 0xff
		pix[i+3] = 0xff
	}
	if err := dt.Unmap(); err != nil {
		t.Fatalf("Unmap() error = %v", err)
	}

	if err := ws.Display(dt, image.Rectangle{}); err != nil {
		t.Fatalf("Display() error = %v", err)
	}
	if got := out.RGBAAt(3, 5); got.R != 0xff || got.G != 0 || got.B != 0 || got.A != 0xff {
		t.Errorf("output pixel = %+v, want solid red", got)
	}
}

func TestImageWinSys_DisplayScales(t *testing.T) {
	out := image.NewRGBA(image.Rect(0, 0, 16, 16))
	ws := NewImageWinSys(out)
	defer ws.Destroy()

	dt, err := ws.CreateDisplayTarget(format.RGBA8Unorm, 4, 4, 1)
	if err != nil {
		t.Fatalf("CreateDisplayTarget() error = %v", err)
	}
	defer dt.Destroy()

	pix, _ := dt.Map()
	for i := 0; i < len(pix); i += 4 {
		pix[i+1] = 0xff // solid green
		pix[i+3] = 0xff
	}
	dt.Unmap()

	// Present the 4x4 target into a 16x16 rectangle.
	if err := ws.Display(dt, image.Rect(0, 0, 16, 16)); err != nil {
		t.Fatalf("Display() error = %v", err)
	}
	if got := out.RGBAAt(8, 8); got.G != 0xff {
		t.Errorf("scaled output pixel = %+v, want green", got)
	}
}

func TestImageWinSys_DisplayNoOutput(t *testing.T) {
	ws := NewImageWinSys(nil)
	defer ws.Destroy()

	dt, err := ws.CreateDisplayTarget(format.RGBA8Unorm, 2, 2, 1)
	if err != nil {
		t.Fatalf("CreateDisplayTarget() error = %v", err)
	}
	defer dt.Destroy()

	if err := ws.Display(dt, image.Rectangle{}); !errors.Is(err, ErrNoOutput) {
		t.Errorf("Display() error = %v, want ErrNoOutput", err)
	}
}

func TestImageTarget_Destroyed(t *testing.T) {
	ws := NewImageWinSys(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	defer ws.Destroy()

	dt, err := ws.CreateDisplayTarget(format.RGBA8Unorm, 2, 2, 1)
	if err != nil {
		t.Fatalf("CreateDisplayTarget() error = %v", err)
	}
	dt.Destroy()

	if _, err := dt.Map(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Map() after Destroy error = %v, want ErrDestroyed", err)
	}
	if err := ws.Display(dt, image.Rectangle{}); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Display() after Destroy error = %v, want ErrDestroyed", err)
	}
}
