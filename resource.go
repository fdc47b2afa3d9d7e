// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package screen

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/screen/format"
	"github.com/gogpu/screen/surface"
	"github.com/gogpu/screen/winsys"
)

// ErrNotDisplayable is returned by FlushFrontbuffer for resources without a
// display target.
var ErrNotDisplayable = errors.New("screen: resource has no display target")

// Template describes a resource to create.
type Template struct {
	// Label is an optional debug name.
	Label string

	// Width and Height are the base level dimensions in pixels.
	Width  int
	Height int

	// Depth is the Z extent for 3D textures and the array slice count
	// otherwise. Cube maps use 6 slices per face set.
	Depth int

	// Levels is the mip level count, base included. Zero means 1.
	Levels int

	// Samples is the MSAA sample count. Zero means 1.
	Samples int

	// Format is the pixel format.
	Format format.Format

	// Dim is the shape class.
	Dim surface.Dimension

	// Bind declares the intended usages.
	Bind Bind
}

// Resource is a created surface: its layout plus whatever backs it, either
// owned memory or a window-system display target.
type Resource struct {
	mu        sync.Mutex
	screen    *Screen
	tmpl      Template
	layout    surface.Layout
	stencil   *surface.Layout
	data      []byte
	stencilPx []byte
	dt        winsys.DisplayTarget
	busy      bool
	destroyed bool
}

// validate checks tmpl against the capability table. It normalizes nothing;
// callers use normalized below.
func (s *Screen) validate(tmpl Template) error {
	if tmpl.Width < 1 || tmpl.Height < 1 || tmpl.Depth < 0 || tmpl.Levels < 0 {
		return fmt.Errorf("%w: size %dx%dx%d levels %d",
			ErrInvalidTemplate, tmpl.Width, tmpl.Height, tmpl.Depth, tmpl.Levels)
	}
	if tmpl.Levels > defaultCaps.maxLevels(tmpl.Dim) {
		return fmt.Errorf("%w: %d levels exceeds cap %d",
			ErrInvalidTemplate, tmpl.Levels, defaultCaps.maxLevels(tmpl.Dim))
	}
	switch tmpl.Dim {
	case surface.TexCube:
		if tmpl.Depth != 0 && tmpl.Depth != 6 {
			return fmt.Errorf("%w: cube with %d slices", ErrInvalidTemplate, tmpl.Depth)
		}
	case surface.TexCubeArray:
		if tmpl.Depth%6 != 0 {
			return fmt.Errorf("%w: cube array with %d slices", ErrInvalidTemplate, tmpl.Depth)
		}
	}
	if tmpl.Dim != surface.Tex3D && tmpl.Depth > defaultCaps.MaxArrayLayers {
		return fmt.Errorf("%w: %d array layers exceeds cap %d",
			ErrInvalidTemplate, tmpl.Depth, defaultCaps.MaxArrayLayers)
	}
	if tmpl.Bind.displayable() && tmpl.Levels > 1 {
		return fmt.Errorf("%w: display target with %d mip levels", ErrInvalidTemplate, tmpl.Levels)
	}
	return nil
}

// normalized fills in template defaults and derives the surface descriptor.
// Render targets and depth/stencil attachments get macrotile alignment so
// every level starts on a tile boundary.
func normalized(tmpl Template) surface.Descriptor {
	depth := tmpl.Depth
	if depth < 1 {
		depth = 1
		if tmpl.Dim == surface.TexCube {
			depth = 6
		}
	}
	levels := tmpl.Levels
	if levels < 1 {
		levels = 1
	}
	halign, valign := 1, 1
	if tmpl.Bind&(BindRenderTarget|BindDepthStencil) != 0 {
		halign, valign = surface.MacrotileWidth, surface.MacrotileHeight
	}
	return surface.Descriptor{
		Width:  tmpl.Width,
		Height: tmpl.Height,
		Depth:  depth,
		Format: tmpl.Format,
		Levels: levels,
		Dim:    tmpl.Dim,
		HAlign: halign,
		VAlign: valign,
	}
}

// CanCreateResource reports whether CreateResource would succeed for tmpl,
// without allocating anything.
func (s *Screen) CanCreateResource(tmpl Template) bool {
	if s.validate(tmpl) != nil {
		return false
	}
	if !s.IsFormatSupported(tmpl.Format, tmpl.Dim, tmpl.Samples, tmpl.Bind) {
		return false
	}
	_, err := surface.ComputeLayout(normalized(tmpl))
	return err == nil
}

// CreateResource creates a resource for tmpl. Display-class binds take their
// backing from the window system, which also dictates the physical pitch;
// everything else gets owned, zeroed, aligned memory, with combined
// depth/stencil formats carrying an extra stencil plane.
//
// On any error nothing is retained.
func (s *Screen) CreateResource(tmpl Template) (*Resource, error) {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return nil, ErrScreenDestroyed
	}
	ws := s.ws
	s.mu.Unlock()

	if err := s.validate(tmpl); err != nil {
		return nil, err
	}
	if !s.IsFormatSupported(tmpl.Format, tmpl.Dim, tmpl.Samples, tmpl.Bind) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, tmpl.Format)
	}

	desc := normalized(tmpl)
	res := &Resource{screen: s, tmpl: tmpl}

	if tmpl.Bind.displayable() {
		layout, err := surface.ComputeLayout(desc)
		if err != nil {
			return nil, err
		}
		dt, err := ws.CreateDisplayTarget(tmpl.Format, desc.Width, desc.Height, defaultCaps.MinMapBufferAlignment)
		if err != nil {
			return nil, err
		}
		// The window system's stride wins over the computed pitch.
		layout.Pitch = dt.Stride()
		layout.TotalSize = uint64(desc.Depth) * uint64(layout.QPitch) * uint64(layout.Pitch)
		res.layout = layout
		res.dt = dt
	} else {
		alloc, err := surface.Allocate(desc)
		if err != nil {
			return nil, err
		}
		res.layout = alloc.Layout
		res.data = alloc.Data
		res.stencil = alloc.Stencil
		res.stencilPx = alloc.StencilData
	}

	Logger().Debug("resource created",
		"label", tmpl.Label,
		"format", res.layout.Format.String(),
		"pitch", res.layout.Pitch,
		"qpitch", res.layout.QPitch,
		"size", res.layout.TotalSize)
	return res, nil
}

// DestroyResource releases r's backing exactly once. If the resource is
// still referenced by submitted work, the screen's flush fence is awaited
// first; ctx bounds that wait and on ctx error the resource stays alive.
func (s *Screen) DestroyResource(ctx context.Context, r *Resource) error {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return nil
	}
	busy := r.busy
	r.mu.Unlock()

	if busy && s.flush.Pending() {
		Logger().Warn("destroying busy resource, waiting for flush", "label", r.tmpl.Label)
		if err := s.flush.Wait(ctx); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return nil
	}
	r.destroyed = true
	r.busy = false
	if r.dt != nil {
		r.dt.Destroy()
		r.dt = nil
	}
	r.data = nil
	r.stencilPx = nil
	return nil
}

// FlushFrontbuffer presents r's display target. Pending work is awaited on
// the flush fence first so the window system never scans out a half-written
// frame.
func (s *Screen) FlushFrontbuffer(ctx context.Context, r *Resource, sub image.Rectangle) error {
	r.mu.Lock()
	dt := r.dt
	destroyed := r.destroyed
	r.mu.Unlock()
	if destroyed || dt == nil {
		return ErrNotDisplayable
	}

	if s.flush.Pending() {
		if err := s.flush.Wait(ctx); err != nil {
			return err
		}
	}

	s.mu.Lock()
	ws := s.ws
	s.mu.Unlock()
	if ws == nil {
		return ErrScreenDestroyed
	}
	return ws.Display(dt, sub)
}

// Template returns the template the resource was created from.
func (r *Resource) Template() Template {
	return r.tmpl
}

// Layout returns the computed memory layout.
func (r *Resource) Layout() surface.Layout {
	return r.layout
}

// StencilLayout returns the layout of the secondary stencil plane, or nil
// when the format has no combined stencil.
func (r *Resource) StencilLayout() *surface.Layout {
	return r.stencil
}

// Pitch returns the byte distance between block rows.
func (r *Resource) Pitch() int { return r.layout.Pitch }

// QPitch returns the distance between array slices.
func (r *Resource) QPitch() int { return r.layout.QPitch }

// LevelOffset returns the byte offset of a mip level within one slice.
func (r *Resource) LevelOffset(level int) uint64 {
	return r.layout.LevelOffsets[level]
}

// SliceOffset returns the byte offset of a mip level within a given slice.
func (r *Resource) SliceOffset(slice, level int) uint64 {
	return r.layout.SliceOffset(slice, level)
}

// Data returns the owned backing memory, nil for display targets. The slice
// start is aligned to the screen's map alignment.
func (r *Resource) Data() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}

// StencilData returns the backing of the secondary stencil plane, if any.
func (r *Resource) StencilData() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stencilPx
}

// DisplayTarget returns the window-system target backing the resource, or
// nil for owned memory.
func (r *Resource) DisplayTarget() winsys.DisplayTarget {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dt
}

// MarkBusy flags the resource as referenced by submitted work. Destroy will
// wait on the flush fence before freeing it.
func (r *Resource) MarkBusy() {
	r.mu.Lock()
	r.busy = true
	r.mu.Unlock()
}

// MarkIdle clears the busy flag, typically after the flush fence signaled.
func (r *Resource) MarkIdle() {
	r.mu.Lock()
	r.busy = false
	r.mu.Unlock()
}

// Busy reports whether the resource is referenced by submitted work.
func (r *Resource) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}
