// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"
	"unsafe"

	"github.com/gogpu/screen/format"
)

// Allocation is a surface layout together with owned backing memory. Depth
// formats with a stencil component carry an independently laid out stencil
// plane in Stencil/StencilData.
type Allocation struct {
	Layout Layout
	Data   []byte

	Stencil     *Layout
	StencilData []byte
}

// Allocate computes the layout for desc and allocates AllocAlignment-aligned
// backing memory for it. For combined depth/stencil formats the stencil
// plane gets its own layout and allocation. On any error no memory is
// retained.
func Allocate(desc Descriptor) (*Allocation, error) {
	layout, err := ComputeLayout(desc)
	if err != nil {
		return nil, err
	}

	alloc := &Allocation{Layout: layout}
	alloc.Data, err = alignedAlloc(layout.TotalSize)
	if err != nil {
		return nil, err
	}

	if layout.Format.HasDepth() && layout.Format.HasStencil() {
		stencil, err := ComputeLayout(stencilDescriptor(desc))
		if err != nil {
			return nil, err
		}
		alloc.StencilData, err = alignedAlloc(stencil.TotalSize)
		if err != nil {
			return nil, err
		}
		alloc.Stencil = &stencil
	}

	return alloc, nil
}

// DeriveStencil returns the layout of the stencil plane that accompanies a
// combined depth/stencil surface. The plane is a one-byte-per-pixel surface
// with the same dimensions, levels, and alignment as the primary.
func DeriveStencil(desc Descriptor) (Layout, error) {
	return ComputeLayout(stencilDescriptor(desc))
}

func stencilDescriptor(desc Descriptor) Descriptor {
	desc.Format = format.S8Uint
	return desc
}

// alignedAlloc returns a byte slice of the given size whose first element is
// aligned to AllocAlignment. The Go allocator aligns large blocks at least
// that far already, but the contract must hold for any size, so allocate a
// padded block and reslice.
func alignedAlloc(size uint64) ([]byte, error) {
	if size > math.MaxInt-AllocAlignment {
		return nil, ErrOutOfMemory
	}
	raw := make([]byte, int(size)+AllocAlignment)
	p := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	off := int((AllocAlignment - p%AllocAlignment) % AllocAlignment)
	return raw[off : off+int(size) : off+int(size)], nil
}
