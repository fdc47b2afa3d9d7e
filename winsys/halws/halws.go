// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package halws implements the window-system interface on top of a
// gogpu/wgpu HAL device. Display targets are GPU textures with a CPU
// staging buffer; Unmap uploads the staging pixels and Display flushes the
// queue behind a fence.
package halws

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/screen/format"
	"github.com/gogpu/screen/winsys"
)

// Package errors.
var (
	// ErrNilDevice is returned by New when no device is given.
	ErrNilDevice = errors.New("halws: device is nil")

	// ErrFenceTimeout is returned when the GPU does not retire submitted
	// work within the flush timeout.
	ErrFenceTimeout = errors.New("halws: fence wait timed out")

	// ErrClosed is returned by upload and present paths after the window
	// system connection was destroyed. Outstanding targets can still be
	// mapped and destroyed, but nothing reaches the GPU anymore.
	ErrClosed = errors.New("halws: window system destroyed")
)

// flushTimeout bounds fence waits on upload and present.
const flushTimeout = 5 * time.Second

// Queue is the part of hal.Queue the window system uses.
type Queue interface {
	Submit(buffers []hal.CommandBuffer, fence hal.Fence, value uint64) error
	WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D)
}

// WinSys is a GPU-backed window system. It implements winsys.WinSys.
type WinSys struct {
	device hal.Device
	queue  Queue
}

// New returns a window system on the given device and queue. The caller
// keeps ownership of the device; Destroy does not tear it down.
func New(device hal.Device, queue Queue) (*WinSys, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &WinSys{device: device, queue: queue}, nil
}

// RegisterDefault registers w under the hal name so winsys.Default prefers
// it over the CPU fallback.
func RegisterDefault(w *WinSys) {
	winsys.Register(winsys.NameHal, func() winsys.WinSys { return w })
}

// texFormat maps a screen format onto the wire format of the HAL, or
// Undefined when the HAL cannot present it.
func texFormat(f format.Format) types.TextureFormat {
	switch f {
	case format.R8Unorm:
		return types.TextureFormatR8Unorm
	case format.RGBA8Unorm:
		return types.TextureFormatRGBA8Unorm
	case format.RGBA8Srgb:
		return types.TextureFormatRGBA8UnormSrgb
	case format.BGRA8Unorm:
		return types.TextureFormatBGRA8Unorm
	default:
		return types.TextureFormatUndefined
	}
}

// FormatSupported reports whether f maps onto a presentable HAL format.
func (w *WinSys) FormatSupported(f format.Format) bool {
	return texFormat(f) != types.TextureFormatUndefined
}

// CreateDisplayTarget creates a GPU texture plus a zeroed staging buffer.
// The stride is the row byte width rounded up to alignment; uploads honor it
// through the image data layout.
func (w *WinSys) CreateDisplayTarget(f format.Format, width, height, alignment int) (winsys.DisplayTarget, error) {
	tf := texFormat(f)
	if tf == types.TextureFormatUndefined {
		return nil, fmt.Errorf("%w: %v", winsys.ErrUnsupported, f)
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("halws: invalid display target size %dx%d", width, height)
	}
	if alignment < 1 {
		alignment = 1
	}

	tex, err := w.device.CreateTexture(&hal.TextureDescriptor{
		Label: "display target",
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        tf,
		Usage:         types.TextureUsageCopySrc | types.TextureUsageCopyDst | types.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("halws: create display texture: %w", err)
	}

	stride := (width*f.BlockBytes() + alignment - 1) / alignment * alignment
	return &halTarget{
		ws:      w,
		tex:     tex,
		width:   width,
		height:  height,
		stride:  stride,
		bpp:     f.BlockBytes(),
		staging: make([]byte, stride*height),
	}, nil
}

// Display flushes the queue and blocks until the GPU retires the target's
// uploads. The sub rectangle is resolved by the scanout hardware, not here,
// so only the synchronization matters.
func (w *WinSys) Display(dt winsys.DisplayTarget, _ image.Rectangle) error {
	t, ok := dt.(*halTarget)
	if !ok {
		return fmt.Errorf("%w: foreign display target %T", winsys.ErrUnsupported, dt)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed {
		return winsys.ErrDestroyed
	}
	return w.flush()
}

// flush submits an empty batch behind a fence and waits for it.
func (w *WinSys) flush() error {
	if w.device == nil || w.queue == nil {
		return ErrClosed
	}
	fence, err := w.device.CreateFence()
	if err != nil {
		return fmt.Errorf("halws: create fence: %w", err)
	}
	defer w.device.DestroyFence(fence)

	if err := w.queue.Submit(nil, fence, 1); err != nil {
		return fmt.Errorf("halws: submit: %w", err)
	}
	ok, err := w.device.Wait(fence, 1, flushTimeout)
	if err != nil {
		return fmt.Errorf("halws: wait: %w", err)
	}
	if !ok {
		return ErrFenceTimeout
	}
	return nil
}

// Destroy drops the device reference. The device itself stays alive; it is
// owned by whoever passed it to New. Outstanding targets remain mappable
// but their uploads and presents fail with ErrClosed.
func (w *WinSys) Destroy() {
	w.device = nil
	w.queue = nil
}

// halTarget is a display target backed by a GPU texture. CPU access goes
// through a staging buffer: Map hands it out, Unmap uploads it.
type halTarget struct {
	ws     *WinSys
	tex    hal.Texture
	width  int
	height int
	stride int
	bpp    int

	mu        sync.Mutex
	staging   []byte
	destroyed bool
}

func (t *halTarget) Width() int  { return t.width }
func (t *halTarget) Height() int { return t.height }
func (t *halTarget) Stride() int { return t.stride }

func (t *halTarget) Map() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed {
		return nil, winsys.ErrDestroyed
	}
	return t.staging, nil
}

// Unmap uploads the staging pixels to the texture and fences the transfer.
func (t *halTarget) Unmap() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed {
		return winsys.ErrDestroyed
	}
	if t.ws.queue == nil {
		return ErrClosed
	}

	t.ws.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   types.TextureAspectAll,
		},
		t.staging,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(t.stride),
			RowsPerImage: uint32(t.height),
		},
		&hal.Extent3D{
			Width:              uint32(t.width),
			Height:             uint32(t.height),
			DepthOrArrayLayers: 1,
		},
	)
	return t.ws.flush()
}

func (t *halTarget) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.staging = nil
	if t.ws.device != nil {
		t.ws.device.DestroyTexture(t.tex)
	}
}
