// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package screen

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/screen/format"
	"github.com/gogpu/screen/surface"
)

// TemplateFromTexture converts a gputypes texture descriptor into a resource
// template, so embedders speaking the WebGPU vocabulary can create screen
// resources directly. Formats outside the screen's table and multisampled
// descriptors are rejected.
func TemplateFromTexture(desc *gputypes.TextureDescriptor) (Template, error) {
	if desc == nil {
		return Template{}, fmt.Errorf("%w: nil descriptor", ErrInvalidTemplate)
	}

	f, ok := format.FromTexture(desc.Format)
	if !ok {
		return Template{}, fmt.Errorf("%w: texture format %v", ErrUnsupported, desc.Format)
	}

	var dim surface.Dimension
	switch desc.Dimension {
	case gputypes.TextureDimension1D:
		dim = surface.Tex1D
		if desc.Size.DepthOrArrayLayers > 1 {
			dim = surface.Tex1DArray
		}
	case gputypes.TextureDimension2D:
		dim = surface.Tex2D
		if desc.Size.DepthOrArrayLayers > 1 {
			dim = surface.Tex2DArray
		}
	case gputypes.TextureDimension3D:
		dim = surface.Tex3D
	default:
		return Template{}, fmt.Errorf("%w: texture dimension %v", ErrInvalidTemplate, desc.Dimension)
	}

	levels := int(desc.MipLevelCount)
	if levels < 1 {
		levels = 1
	}
	samples := int(desc.SampleCount)
	if samples < 1 {
		samples = 1
	}

	var bind Bind
	if desc.Usage&gputypes.TextureUsageRenderAttachment != 0 {
		if f.IsDepthStencil() {
			bind |= BindDepthStencil
		} else {
			bind |= BindRenderTarget
		}
	}
	if desc.Usage&gputypes.TextureUsageTextureBinding != 0 {
		bind |= BindSampled
	}

	return Template{
		Label:   desc.Label,
		Width:   int(desc.Size.Width),
		Height:  int(desc.Size.Height),
		Depth:   int(desc.Size.DepthOrArrayLayers),
		Levels:  levels,
		Samples: samples,
		Format:  f,
		Dim:     dim,
		Bind:    bind,
	}, nil
}
