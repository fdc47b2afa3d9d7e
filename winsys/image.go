// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package winsys

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/screen/format"
)

func init() {
	Register(NameImage, func() WinSys { return NewImageWinSys(nil) })
}

// ImageWinSys is a CPU window system backed by Go images. Display targets
// live in plain byte slices and presents blit into a caller-provided
// draw.Image, scaling when the destination rectangle differs from the
// target size.
//
// It exists for headless rendering and tests; real deployments register a
// GPU-backed implementation with a higher priority.
type ImageWinSys struct {
	mu     sync.Mutex
	output draw.Image
}

// NewImageWinSys returns a window system presenting into output. A nil
// output is allowed; Display fails with ErrNoOutput until SetOutput is
// called.
func NewImageWinSys(output draw.Image) *ImageWinSys {
	return &ImageWinSys{output: output}
}

// SetOutput replaces the present destination.
func (w *ImageWinSys) SetOutput(output draw.Image) {
	w.mu.Lock()
	w.output = output
	w.mu.Unlock()
}

// FormatSupported reports whether f maps onto the RGBA byte order of the
// backing images.
func (w *ImageWinSys) FormatSupported(f format.Format) bool {
	switch f {
	case format.RGBA8Unorm, format.RGBA8Srgb:
		return true
	default:
		return false
	}
}

// CreateDisplayTarget allocates a zeroed CPU pixel buffer. The stride is the
// row byte width rounded up to alignment.
func (w *ImageWinSys) CreateDisplayTarget(f format.Format, width, height, alignment int) (DisplayTarget, error) {
	if !w.FormatSupported(f) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, f)
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("winsys: invalid display target size %dx%d", width, height)
	}
	if alignment < 1 {
		alignment = 1
	}
	stride := alignUp(width*f.BlockBytes(), alignment)
	return &imageTarget{
		width:  width,
		height: height,
		stride: stride,
		pix:    make([]byte, stride*height),
	}, nil
}

// Display blits the sub rectangle of dt into the configured output. When sub
// is empty the whole target is presented at the output's origin; a sub of a
// different size than the target scales with Catmull-Rom resampling.
func (w *ImageWinSys) Display(dt DisplayTarget, sub image.Rectangle) error {
	t, ok := dt.(*imageTarget)
	if !ok {
		return fmt.Errorf("%w: foreign display target %T", ErrUnsupported, dt)
	}

	w.mu.Lock()
	dst := w.output
	w.mu.Unlock()
	if dst == nil {
		return ErrNoOutput
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed {
		return ErrDestroyed
	}

	src := &image.RGBA{
		Pix:    t.pix,
		Stride: t.stride,
		Rect:   image.Rect(0, 0, t.width, t.height),
	}
	if sub.Empty() {
		sub = image.Rect(0, 0, t.width, t.height)
	}
	if sub.Dx() == t.width && sub.Dy() == t.height {
		xdraw.Copy(dst, sub.Min, src, src.Bounds(), xdraw.Src, nil)
	} else {
		xdraw.CatmullRom.Scale(dst, sub, src, src.Bounds(), xdraw.Src, nil)
	}
	return nil
}

// Destroy drops the output reference. Outstanding targets stay usable for
// Map/Unmap but can no longer be presented.
func (w *ImageWinSys) Destroy() {
	w.SetOutput(nil)
}

// imageTarget is a CPU display target. Map and Unmap only gate access; the
// pixels live in place, so there is no staging copy to flush.
type imageTarget struct {
	mu        sync.Mutex
	width     int
	height    int
	stride    int
	pix       []byte
	destroyed bool
}

func (t *imageTarget) Width() int  { return t.width }
func (t *imageTarget) Height() int { return t.height }
func (t *imageTarget) Stride() int { return t.stride }

func (t *imageTarget) Map() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed {
		return nil, ErrDestroyed
	}
	return t.pix, nil
}

func (t *imageTarget) Unmap() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed {
		return ErrDestroyed
	}
	return nil
}

func (t *imageTarget) Destroy() {
	t.mu.Lock()
	t.destroyed = true
	t.pix = nil
	t.mu.Unlock()
}

func alignUp(v, align int) int {
	return (v + align - 1) / align * align
}
