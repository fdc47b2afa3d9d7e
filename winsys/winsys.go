// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package winsys abstracts the window system that surfaces with a display
// bind are shared with.
//
// The screen never owns the backing memory of a displayable surface; it asks
// the window system to allocate a display target and adopts the stride the
// window system chose. Implementations register themselves with Register,
// usually from an init function, and the screen picks one with Default.
package winsys

import (
	"errors"
	"image"

	"github.com/gogpu/screen/format"
)

// Errors shared by winsys implementations.
var (
	// ErrUnsupported is returned when the window system cannot display the
	// requested format.
	ErrUnsupported = errors.New("winsys: display target format not supported")

	// ErrNoOutput is returned by Display when no destination is configured.
	ErrNoOutput = errors.New("winsys: no output configured")

	// ErrDestroyed is returned when operating on a destroyed display target.
	ErrDestroyed = errors.New("winsys: display target destroyed")
)

// DisplayTarget is a window-system owned pixel buffer. The window system
// chooses the stride; the screen's layout adopts it verbatim.
type DisplayTarget interface {
	// Width and Height are the pixel dimensions requested at creation.
	Width() int
	Height() int

	// Stride is the byte distance between pixel rows, as chosen by the
	// window system. At least the row byte width, usually wider.
	Stride() int

	// Map exposes the target's pixels for CPU access. The slice stays
	// valid until Unmap. Implementations backed by GPU memory may return a
	// staging copy that Unmap writes back.
	Map() ([]byte, error)
	Unmap() error

	// Destroy releases the target. The target must not be mapped.
	Destroy()
}

// WinSys allocates and presents display targets.
type WinSys interface {
	// FormatSupported reports whether f can back a display target.
	FormatSupported(f format.Format) bool

	// CreateDisplayTarget allocates a width x height target for f with the
	// given row alignment in bytes. The target's contents are zeroed.
	CreateDisplayTarget(f format.Format, width, height, alignment int) (DisplayTarget, error)

	// Display presents the sub rectangle of dt on the window system's
	// output. An empty sub means the whole target.
	Display(dt DisplayTarget, sub image.Rectangle) error

	// Destroy releases the window system connection. Outstanding display
	// targets stay valid until individually destroyed.
	Destroy()
}
