// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/screen/format"
)

// ComputeLayout derives the memory layout for desc.
//
// The computation is pure: it has no side effects, never allocates backing
// memory, and always produces the same Layout for the same descriptor. It
// fails with ErrSizeExceeded when the total size would exceed MaxSurfaceSize
// and with format.ErrUnsupported when the format carries no block-size
// information; in both cases the returned Layout must not be used.
func ComputeLayout(desc Descriptor) (Layout, error) {
	if desc.Width < 1 || desc.Height < 1 || desc.Depth < 1 || desc.Levels < 1 {
		return Layout{}, ErrInvalidDescriptor
	}

	f := desc.Format
	if !f.IsValid() || f.BlockBytes() == 0 {
		return Layout{}, format.ErrUnsupported
	}

	// Stencil-only surfaces are laid out as plain R8.
	if f.HasStencil() && !f.HasDepth() {
		f = format.R8Uint
	}

	halign := desc.HAlign
	if halign < 1 {
		halign = 1
	}
	valign := desc.VAlign
	if valign < 1 {
		valign = 1
	}

	// Alignments are given in block units; widen to pixels so that aligned
	// extents stay on block boundaries for compressed formats.
	halignPx := halign * f.BlockWidth()
	valignPx := valign * f.BlockHeight()

	var pitch, qpitch int
	if desc.Dim.linear() {
		pitch, qpitch = layout1D(desc, f, halignPx)
	} else {
		pitch, qpitch = layout2D(desc, f, halignPx, valignPx)
	}

	eff := format.Effective(f)

	offsets := make([]uint64, desc.Levels)
	for level := 1; level < desc.Levels; level++ {
		if desc.Dim.linear() {
			offsets[level] = levelOffset1D(desc, eff, halignPx, level)
		} else {
			offsets[level] = levelOffset2D(desc, eff, pitch, halignPx, valignPx, level)
		}
	}

	total := uint64(desc.Depth) * uint64(qpitch) * uint64(pitch)
	layout := Layout{
		Pitch:        pitch,
		QPitch:       qpitch,
		LevelOffsets: offsets,
		TotalSize:    total,
		Format:       f,
		Effective:    eff,
	}
	if total > MaxSurfaceSize {
		return layout, ErrSizeExceeded
	}
	return layout, nil
}

// layout1D packs all mip levels side by side along a single row. The pitch
// is the element size; the qpitch is the combined chain width in blocks, so
// array slices are qpitch elements apart.
func layout1D(desc Descriptor, f format.Format, halignPx int) (pitch, qpitch int) {
	width := alignUp(desc.Width, halignPx)
	for level := 1; level < desc.Levels; level++ {
		width += alignUp(format.Minify(desc.Width, level), halignPx)
	}
	return f.BlockBytes(), f.NumBlocksX(width)
}

// layout2D packs level 0 across the top with level 1 below it on the left
// and levels 2..N stacked to the right of level 1.
func layout2D(desc Descriptor, f format.Format, halignPx, valignPx int) (pitch, qpitch int) {
	// The pitch is normally level 0's aligned width, but for narrow
	// textures with coarse alignment the aligned widths of levels 1 and 2
	// side by side can exceed it (e.g. halign 32 with a base width <= 32
	// aligns levels 1 and 2 to 32 each, needing 64).
	pitchWidth := alignUp(desc.Width, halignPx)
	if desc.Levels > 2 {
		lower := alignUp(format.Minify(desc.Width, 1), halignPx) +
			alignUp(format.Minify(desc.Width, 2), halignPx)
		if lower > pitchWidth {
			pitchWidth = lower
		}
	}
	pitch = f.Stride(pitchWidth)

	// The rows below level 0 are owned by whichever is taller: level 1, or
	// the stacked tail of levels 2..N. A two-level chain adds level 1
	// without that comparison; keep the quirk (see package doc).
	height := alignUp(desc.Height, valignPx)
	switch {
	case desc.Levels == 2:
		height += alignUp(format.Minify(desc.Height, 1), valignPx)
	case desc.Levels > 2:
		level1 := alignUp(format.Minify(desc.Height, 1), valignPx)
		tail := 0
		for level := 2; level < desc.Levels; level++ {
			tail += alignUp(format.Minify(desc.Height, level), valignPx)
		}
		height += max(level1, tail)
	}
	qpitch = f.NumBlocksY(height)

	return pitch, qpitch
}

// levelOffset1D returns the byte offset of a mip level in a 1D chain:
// the combined aligned width of all preceding levels, in blocks, scaled by
// the block size.
func levelOffset1D(desc Descriptor, eff format.Format, halignPx, level int) uint64 {
	x := alignUp(desc.Width, halignPx)
	for l := 1; l < level; l++ {
		x += alignUp(format.Minify(desc.Width, l), halignPx)
	}
	return uint64(eff.NumBlocksX(x)) * uint64(eff.BlockBytes())
}

// levelOffset2D returns the byte offset of a mip level within one slice of
// a 2D/3D staircase. Level 1 starts directly below level 0; levels >= 2
// start to the right of level 1, each below the previous.
func levelOffset2D(desc Descriptor, eff format.Format, pitch, halignPx, valignPx, level int) uint64 {
	var x, y int
	y = alignUp(desc.Height, valignPx)
	if level >= 2 {
		x = alignUp(format.Minify(desc.Width, 1), halignPx)
		for l := 2; l < level; l++ {
			y += alignUp(format.Minify(desc.Height, l), valignPx)
		}
	}
	return uint64(eff.NumBlocksY(y))*uint64(pitch) +
		uint64(eff.NumBlocksX(x))*uint64(eff.BlockBytes())
}
