// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package screen

import (
	"errors"
	"sync"

	"github.com/gogpu/screen/fence"
	"github.com/gogpu/screen/format"
	"github.com/gogpu/screen/surface"
	"github.com/gogpu/screen/winsys"
)

// Screen errors.
var (
	// ErrNoWinSys is returned by New when no window system is available.
	ErrNoWinSys = errors.New("screen: no window system available")

	// ErrScreenDestroyed is returned when operating on a destroyed screen.
	ErrScreenDestroyed = errors.New("screen: screen destroyed")

	// ErrUnsupported is returned when a template's format cannot serve the
	// requested bindings.
	ErrUnsupported = errors.New("screen: format not supported for requested binding")

	// ErrInvalidTemplate is returned when a template violates the screen's
	// limits.
	ErrInvalidTemplate = errors.New("screen: invalid resource template")
)

// Bind flags declare how a resource will be used. Display-class binds route
// the allocation through the window system.
type Bind uint32

const (
	// BindRenderTarget marks a color render target.
	BindRenderTarget Bind = 1 << iota

	// BindDepthStencil marks a depth or stencil attachment.
	BindDepthStencil

	// BindSampled marks a texture sampled by shaders.
	BindSampled

	// BindDisplayTarget marks a surface presented through the window
	// system.
	BindDisplayTarget

	// BindScanout marks a surface scanned out directly by the display
	// hardware.
	BindScanout

	// BindShared marks a surface shared across processes.
	BindShared

	// BindConstantBuffer, BindVertexBuffer, BindIndexBuffer and
	// BindStreamOutput mark buffer usages.
	BindConstantBuffer
	BindVertexBuffer
	BindIndexBuffer
	BindStreamOutput
)

// displayable reports whether any bind routes through the window system.
func (b Bind) displayable() bool {
	return b&(BindDisplayTarget|BindScanout|BindShared) != 0
}

// Screen is the top of the resource stack: it owns the window system
// connection, the capability table, and the flush fence that gates resource
// teardown.
//
// Screen is safe for concurrent use.
type Screen struct {
	mu        sync.Mutex
	ws        winsys.WinSys
	flush     *fence.Fence
	destroyed bool
}

// New creates a screen on the given window system. A nil ws selects the
// best registered implementation; if none is available New fails with
// ErrNoWinSys.
func New(ws winsys.WinSys) (*Screen, error) {
	if ws == nil {
		ws = winsys.Default()
	}
	if ws == nil {
		return nil, ErrNoWinSys
	}
	Logger().Info("screen created")
	return &Screen{ws: ws, flush: fence.New()}, nil
}

// Caps returns the capability table.
func (s *Screen) Caps() Caps {
	return defaultCaps
}

// WinSys returns the window system the screen allocates display targets
// from.
func (s *Screen) WinSys() winsys.WinSys {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws
}

// FlushFence returns the fence gating resource teardown. The embedder
// submits it with rendering work and signals it when that work retires;
// DestroyResource and FlushFrontbuffer wait on it.
func (s *Screen) FlushFence() *fence.Fence {
	return s.flush
}

// IsFormatSupported reports whether f can serve the given dimension, sample
// count, and bindings.
func (s *Screen) IsFormatSupported(f format.Format, dim surface.Dimension, samples int, bind Bind) bool {
	if !f.IsValid() || samples > defaultCaps.MaxSampleCount {
		return false
	}

	// No native sampling support for the BPTC and ASTC classes. Of the ETC
	// class only ETC1 has a decoder.
	switch f.Info().Layout {
	case format.LayoutBPTC, format.LayoutASTC:
		return false
	case format.LayoutETC:
		if f != format.ETC1RGB8 {
			return false
		}
	}

	if bind.displayable() && !s.displayFormatSupported(f) {
		return false
	}
	if bind&BindRenderTarget != 0 {
		if f.IsDepthStencil() || f.Compressed() || !f.Renderable() {
			return false
		}
	}
	if bind&BindDepthStencil != 0 {
		// The attachment needs a native tile store, which stencil-only
		// formats lack.
		if !f.IsDepthStencil() || !f.Renderable() {
			return false
		}
	}
	return true
}

func (s *Screen) displayFormatSupported(f format.Format) bool {
	s.mu.Lock()
	ws := s.ws
	s.mu.Unlock()
	return ws != nil && ws.FormatSupported(f)
}

// Destroy tears down the screen and its window system connection. Resources
// created from the screen must be destroyed first.
func (s *Screen) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	s.destroyed = true
	if s.ws != nil {
		s.ws.Destroy()
		s.ws = nil
	}
}
