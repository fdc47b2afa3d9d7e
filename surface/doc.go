// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface computes byte-addressable memory layouts for texture
// resources.
//
// Given a logical description (format, dimensions, mip level count, array or
// depth size, alignment requirements) the engine derives a single
// deterministic layout: the pitch, the qpitch, the byte offset of every mip
// level inside one array slice, and the total allocation size. The rasterizer
// addressing unit and the CPU mapping path both consume these values, so the
// packing rule here is load-bearing: both sides must agree bit-exactly.
//
// # Packing
//
// For 2D and 3D textures one array slice looks like:
//
//	|<-------- pitch ------->|
//	+========================+ ----
//	|                        |  ^
//	|        Level 0         |  |
//	|                        |  |
//	+------------+-----------+ qpitch
//	|            | L2 L2 L2  |  |
//	|  Level 1   | L3 L3     |  |
//	|            | L4        |  v
//	+============+===========+ ----
//
// Level 0 spans the top. Level 1 sits below it on the left; levels 2..N stack
// vertically to the right of level 1. The pitch is the overall width in
// bytes, qpitch the overall height in block rows; array slices repeat every
// qpitch rows. For 3D textures the deeper slices simply have no valid data
// for the higher levels (depth minifies along with width and height).
//
// 1D textures put all levels side by side on a single row: pitch is the byte
// size of one element and qpitch is the combined width of the chain in
// blocks, so slices are qpitch elements apart.
//
// Every level dimension is aligned up by the descriptor's horizontal and
// vertical alignment before packing. Render targets and depth/stencil
// surfaces use the macrotile alignment; everything else uses 1.
//
// # Degenerate chains
//
// The pitch is usually level 0's aligned width, but for narrow textures with
// coarse alignment the aligned widths of levels 1 and 2 together can exceed
// it; the pitch widens to fit them. Similarly the rows below level 0 are
// sized by whichever is taller: level 1, or the stacked levels 2..N. With
// exactly two levels, level 1's height is added without that comparison;
// this quirk is kept as-is because stored surfaces depend on it (see
// TestComputeLayout_TwoLevelTailQuirk).
//
// # Formats without native support
//
// Formats the rasterizer cannot address natively are substituted by a
// same-size generic format (format.Effective) for the offset math only; the
// logical format callers see never changes.
//
// ComputeLayout is a pure function: it never allocates backing memory and is
// safe to call concurrently for independent descriptors. Allocate performs
// the single aligned allocation step for callers that want owned memory
// rather than a window-system target.
package surface
