package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/screen/format"
	"github.com/gogpu/screen/surface"
)

func TestPresentTo_RejectsNonColor(t *testing.T) {
	s := newTestScreen(t)

	res, err := s.CreateResource(Template{
		Width: 8, Height: 8, Format: format.Z24S8Uint,
		Dim: surface.Tex2D, Bind: BindDepthStencil,
	})
	if err != nil {
		t.Fatalf("CreateResource() error = %v", err)
	}
	defer s.DestroyResource(context.Background(), res)

	if err := s.PresentTo(nil, res, 0, 0); !errors.Is(err, ErrNotPresentable) {
		t.Errorf("PresentTo() error = %v, want ErrNotPresentable", err)
	}
}

func TestPresentTo_NilDrawContext(t *testing.T) {
	s := newTestScreen(t)

	res, err := s.CreateResource(Template{
		Width: 8, Height: 8, Format: format.RGBA8Unorm, Dim: surface.Tex2D,
	})
	if err != nil {
		t.Fatalf("CreateResource() error = %v", err)
	}
	defer s.DestroyResource(context.Background(), res)

	if err := s.PresentTo(nil, res, 0, 0); !errors.Is(err, ErrInvalidDrawContext) {
		t.Errorf("PresentTo(nil) error = %v, want ErrInvalidDrawContext", err)
	}
}

func TestBasePixels_OwnedMemory(t *testing.T) {
	s := newTestScreen(t)

	res, err := s.CreateResource(Template{
		Width: 8, Height: 8, Format: format.RGBA8Unorm, Dim: surface.Tex2D,
	})
	if err != nil {
		t.Fatalf("CreateResource() error = %v", err)
	}
	defer s.DestroyResource(context.Background(), res)

	pix, release, err := res.basePixels()
	if err != nil {
		t.Fatalf("basePixels() error = %v", err)
	}
	release()
	if uint64(len(pix)) != res.Layout().TotalSize {
		t.Errorf("len(pixels) = %d, want %d", len(pix), res.Layout().TotalSize)
	}
}

func TestBasePixels_DisplayTarget(t *testing.T) {
	s := newTestScreen(t)

	res, err := s.CreateResource(Template{
		Width: 8, Height: 8, Format: format.RGBA8Unorm,
		Dim: surface.Tex2D, Bind: BindDisplayTarget,
	})
	if err != nil {
		t.Fatalf("CreateResource() error = %v", err)
	}
	defer s.DestroyResource(context.Background(), res)

	pix, release, err := res.basePixels()
	if err != nil {
		t.Fatalf("basePixels() error = %v", err)
	}
	defer release()
	if len(pix) != res.Pitch()*8 {
		t.Errorf("len(pixels) = %d, want %d", len(pix), res.Pitch()*8)
	}
}

func TestBasePixels_Destroyed(t *testing.T) {
	s := newTestScreen(t)

	res, err := s.CreateResource(Template{
		Width: 8, Height: 8, Format: format.RGBA8Unorm, Dim: surface.Tex2D,
	})
	if err != nil {
		t.Fatalf("CreateResource() error = %v", err)
	}
	if err := s.DestroyResource(context.Background(), res); err != nil {
		t.Fatalf("DestroyResource() error = %v", err)
	}

	if _, _, err := res.basePixels(); !errors.Is(err, ErrNotPresentable) {
		t.Errorf("basePixels() after destroy error = %v, want ErrNotPresentable", err)
	}
}
