// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"

	"github.com/gogpu/screen/format"
)

// Layout and allocation errors.
var (
	// ErrSizeExceeded is returned when a computed layout does not fit in
	// MaxSurfaceSize. The layout result must not be used.
	ErrSizeExceeded = errors.New("surface: total size exceeds maximum surface size")

	// ErrOutOfMemory is returned when backing memory cannot be allocated.
	// No partial allocation is retained.
	ErrOutOfMemory = errors.New("surface: out of memory")

	// ErrInvalidDescriptor is returned when a descriptor violates the
	// engine's preconditions (zero dimensions, no mip levels).
	ErrInvalidDescriptor = errors.New("surface: invalid descriptor")
)

// Layout limits and alignment knobs.
const (
	// MaxSurfaceSize is the hard cap on a single surface allocation (4 GiB).
	// Layouts that compute larger fail with ErrSizeExceeded.
	MaxSurfaceSize = 4 * 1024 * 1024 * 1024

	// AllocAlignment is the byte alignment of owned backing memory.
	AllocAlignment = 64

	// MacrotileWidth and MacrotileHeight are the rasterizer tile dimensions
	// in pixels. Render-target and depth/stencil surfaces align every mip
	// level to macrotile boundaries.
	MacrotileWidth  = 32
	MacrotileHeight = 32
)

// Dimension is the shape class of a resource.
type Dimension uint8

const (
	// Tex1D is a one-dimensional texture.
	Tex1D Dimension = iota

	// Tex1DArray is an array of 1D textures.
	Tex1DArray

	// Tex2D is a two-dimensional texture.
	Tex2D

	// Tex2DArray is an array of 2D textures.
	Tex2DArray

	// Tex3D is a volumetric texture; Depth is the Z extent.
	Tex3D

	// TexCube is a cube map, stored as 6 array slices.
	TexCube

	// TexCubeArray is an array of cube maps, 6 slices per cube.
	TexCubeArray

	// Buffer is a linear buffer laid out as a 1-high, single-level surface.
	Buffer
)

// String returns the dimension name.
func (d Dimension) String() string {
	switch d {
	case Tex1D:
		return "1D"
	case Tex1DArray:
		return "1DArray"
	case Tex2D:
		return "2D"
	case Tex2DArray:
		return "2DArray"
	case Tex3D:
		return "3D"
	case TexCube:
		return "Cube"
	case TexCubeArray:
		return "CubeArray"
	case Buffer:
		return "Buffer"
	default:
		return "Unknown"
	}
}

// linear reports whether the dimension packs mip levels along a single row.
func (d Dimension) linear() bool {
	return d == Tex1D || d == Tex1DArray
}

// Descriptor is the logical description of a surface. All fields are inputs;
// ComputeLayout never mutates the descriptor.
type Descriptor struct {
	// Width, Height are the base level dimensions in pixels. Height is 1
	// for 1D textures and buffers.
	Width  int
	Height int

	// Depth is the Z extent for 3D textures and the array slice count for
	// everything else. Cube maps count 6 slices per face set.
	Depth int

	// Format is the logical pixel format.
	Format format.Format

	// Levels is the number of mip levels, base level included. Must be >= 1.
	Levels int

	// Dim is the shape class.
	Dim Dimension

	// HAlign, VAlign are the per-level alignment requirements in block
	// units. Zero means 1 (no alignment). Render targets and depth/stencil
	// surfaces use MacrotileWidth/MacrotileHeight.
	HAlign int
	VAlign int
}

// Layout is the computed memory layout of a surface. It is immutable; the
// engine returns a fresh value on every call.
type Layout struct {
	// Pitch is the byte distance between adjacent block rows. For 1D
	// surfaces it is the byte size of a single element and rows play no
	// part in addressing.
	Pitch int

	// QPitch is the distance between array slices: block rows for 2D/3D
	// surfaces, elements for 1D surfaces.
	QPitch int

	// LevelOffsets holds the byte offset of each mip level within one
	// array slice. LevelOffsets[0] is always 0.
	LevelOffsets []uint64

	// TotalSize is the byte size of the whole surface:
	// Depth * QPitch * Pitch.
	TotalSize uint64

	// Format is the format the layout was computed for. Stencil-only
	// logical formats are laid out as R8, and that swap is visible here.
	Format format.Format

	// Effective is the format used for offset arithmetic: Format itself
	// when the rasterizer knows it natively, a same-size substitute
	// otherwise. Substitution preserves block geometry, so the two always
	// agree on addressing.
	Effective format.Format
}

// SliceOffset returns the byte offset of the given mip level within the
// given array (or depth) slice. The same formula serves 1D surfaces, where
// Pitch is the element size and QPitch counts elements.
func (l *Layout) SliceOffset(slice, level int) uint64 {
	return uint64(slice)*uint64(l.QPitch)*uint64(l.Pitch) + l.LevelOffsets[level]
}

// alignUp rounds v up to the next multiple of align. align must be >= 1.
func alignUp(v, align int) int {
	return (v + align - 1) / align * align
}
