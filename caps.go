// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package screen

import "github.com/gogpu/screen/surface"

// Caps advertises the fixed limits of the rasterizer. The values do not
// depend on the window system or the host, so every screen reports the
// same table.
type Caps struct {
	// MaxTexture2DLevels caps the mip chain of 1D and 2D textures.
	// 14 levels reach a 8192 base dimension.
	MaxTexture2DLevels int

	// MaxTexture3DLevels caps the mip chain of 3D textures. 12 levels
	// reach a 2048 base dimension.
	MaxTexture3DLevels int

	// MaxTextureCubeLevels caps the mip chain of cube maps.
	MaxTextureCubeLevels int

	// MaxArrayLayers caps the slice count of array textures.
	MaxArrayLayers int

	// MaxSurfaceSize is the byte cap on a single surface.
	MaxSurfaceSize uint64

	// MinMapBufferAlignment is the guaranteed alignment of mapped
	// resource memory.
	MinMapBufferAlignment int

	// MaxSampleCount is the highest supported MSAA sample count.
	MaxSampleCount int

	// MaxLineWidth and MaxPointWidth bound rasterized primitive widths
	// in pixels.
	MaxLineWidth  float32
	MaxPointWidth float32

	// MaxTextureLODBias bounds the sampler LOD bias.
	MaxTextureLODBias float32
}

// defaultCaps is the capability table every screen reports.
var defaultCaps = Caps{
	MaxTexture2DLevels:    14,
	MaxTexture3DLevels:    12,
	MaxTextureCubeLevels:  14,
	MaxArrayLayers:        512,
	MaxSurfaceSize:        surface.MaxSurfaceSize,
	MinMapBufferAlignment: surface.AllocAlignment,
	MaxSampleCount:        1,
	MaxLineWidth:          255.0,
	MaxPointWidth:         255.0,
	MaxTextureLODBias:     16.0,
}

// maxLevels returns the mip chain cap for the given dimension.
func (c Caps) maxLevels(dim surface.Dimension) int {
	switch dim {
	case surface.Tex3D:
		return c.MaxTexture3DLevels
	case surface.TexCube, surface.TexCubeArray:
		return c.MaxTextureCubeLevels
	default:
		return c.MaxTexture2DLevels
	}
}
