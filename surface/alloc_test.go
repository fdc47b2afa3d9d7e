package surface

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/gogpu/screen/format"
)

func TestAllocate_Aligned(t *testing.T) {
	alloc, err := Allocate(Descriptor{
		Width:  33,
		Height: 17,
		Depth:  1,
		Format: format.RGBA8Unorm,
		Levels: 1,
		Dim:    Tex2D,
	})
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	if uint64(len(alloc.Data)) != alloc.Layout.TotalSize {
		t.Errorf("len(Data) = %d, want %d", len(alloc.Data), alloc.Layout.TotalSize)
	}
	p := uintptr(unsafe.Pointer(unsafe.SliceData(alloc.Data)))
	if p%AllocAlignment != 0 {
		t.Errorf("Data not %d-byte aligned: %#x", AllocAlignment, p)
	}
	if alloc.Stencil != nil {
		t.Errorf("Stencil = %+v, want nil for a color format", alloc.Stencil)
	}
}

func TestAllocate_DepthStencilPlane(t *testing.T) {
	alloc, err := Allocate(Descriptor{
		Width:  64,
		Height: 64,
		Depth:  1,
		Format: format.Z24S8Uint,
		Levels: 1,
		Dim:    Tex2D,
	})
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	if alloc.Stencil == nil {
		t.Fatal("Stencil = nil, want a secondary plane")
	}
	// The stencil plane is one byte per pixel, so its pitch is the primary
	// pitch divided by the primary element size.
	if want := alloc.Layout.Pitch / format.Z24S8Uint.BlockBytes(); alloc.Stencil.Pitch != want {
		t.Errorf("Stencil.Pitch = %d, want %d", alloc.Stencil.Pitch, want)
	}
	if alloc.Stencil.Format != format.R8Uint {
		t.Errorf("Stencil.Format = %v, want R8Uint", alloc.Stencil.Format)
	}
	if uint64(len(alloc.StencilData)) != alloc.Stencil.TotalSize {
		t.Errorf("len(StencilData) = %d, want %d", len(alloc.StencilData), alloc.Stencil.TotalSize)
	}
}

func TestAllocate_PropagatesLayoutError(t *testing.T) {
	alloc, err := Allocate(Descriptor{
		Width:  32768,
		Height: 32768,
		Depth:  4,
		Format: format.RGBA8Unorm,
		Levels: 1,
		Dim:    Tex2DArray,
	})
	if !errors.Is(err, ErrSizeExceeded) {
		t.Errorf("Allocate() error = %v, want ErrSizeExceeded", err)
	}
	if alloc != nil {
		t.Errorf("Allocate() = %+v, want nil on error", alloc)
	}
}

func TestDeriveStencil(t *testing.T) {
	desc := Descriptor{
		Width:  128,
		Height: 64,
		Depth:  2,
		Format: format.Z32FloatS8X24Uint,
		Levels: 3,
		Dim:    Tex2DArray,
		HAlign: MacrotileWidth,
		VAlign: MacrotileHeight,
	}
	primary, err := ComputeLayout(desc)
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	stencil, err := DeriveStencil(desc)
	if err != nil {
		t.Fatalf("DeriveStencil() error = %v", err)
	}
	if want := primary.Pitch / format.Z32FloatS8X24Uint.BlockBytes(); stencil.Pitch != want {
		t.Errorf("stencil Pitch = %d, want %d", stencil.Pitch, want)
	}
	// Both planes cover the same pixel grid, so they share qpitch.
	if stencil.QPitch != primary.QPitch {
		t.Errorf("stencil QPitch = %d, want %d", stencil.QPitch, primary.QPitch)
	}
}
