// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package screen

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/screen/format"
)

// Present errors.
var (
	// ErrInvalidDrawContext is returned when the draw context cannot
	// create textures.
	ErrInvalidDrawContext = errors.New("screen: dc must provide a gpucontext.TextureCreator")

	// ErrNotPresentable is returned when a resource's format or shape
	// cannot be presented through gpucontext.
	ErrNotPresentable = errors.New("screen: resource not presentable")
)

// PresentTo draws the base level of r at (x, y) on a gpucontext draw
// context. The resource must be a 2D RGBA8 surface; its pixels are repacked
// to the tight stride gpucontext expects and uploaded as a texture.
//
// This is the bridge for embedders that composite screen resources into a
// gogpu frame instead of scanning them out through the window system.
func (s *Screen) PresentTo(dc gpucontext.TextureDrawer, r *Resource, x, y float32) error {
	switch r.layout.Format {
	case format.RGBA8Unorm, format.RGBA8Srgb:
	default:
		return fmt.Errorf("%w: format %v", ErrNotPresentable, r.layout.Format)
	}

	pix, release, err := r.basePixels()
	if err != nil {
		return err
	}
	defer release()

	width, height := r.tmpl.Width, r.tmpl.Height
	tight := make([]byte, width*height*4)
	rowBytes := width * 4
	for row := 0; row < height; row++ {
		copy(tight[row*rowBytes:(row+1)*rowBytes], pix[row*r.layout.Pitch:])
	}

	if dc == nil {
		return ErrInvalidDrawContext
	}
	creator := dc.TextureCreator()
	if creator == nil {
		return ErrInvalidDrawContext
	}
	tex, err := creator.NewTextureFromRGBA(width, height, tight)
	if err != nil {
		return fmt.Errorf("screen: NewTextureFromRGBA failed: %w", err)
	}
	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidDrawContext
	}
	return dc.DrawTexture(gpuTex, x, y)
}

// basePixels returns the pixels of slice 0, level 0 and a release function.
// Owned memory is returned in place; display targets are mapped and the
// release unmaps them.
func (r *Resource) basePixels() ([]byte, func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return nil, nil, fmt.Errorf("%w: destroyed", ErrNotPresentable)
	}
	if r.data != nil {
		return r.data, func() {}, nil
	}
	if r.dt == nil {
		return nil, nil, fmt.Errorf("%w: no backing", ErrNotPresentable)
	}
	pix, err := r.dt.Map()
	if err != nil {
		return nil, nil, err
	}
	dt := r.dt
	return pix, func() { _ = dt.Unmap() }, nil
}
