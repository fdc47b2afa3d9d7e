// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package screen is the resource layer of a software rasterizer: it turns
// logical texture descriptions into byte-addressable memory and manages
// their lifetime against in-flight rendering work.
//
// The heart of the package is the layout engine in screen/surface, which
// computes a deterministic pitch, qpitch, and per-level byte offsets for a
// mip chain packed in a staircase arrangement. The screen itself adds the
// capability table, format support queries, resource creation (owned memory
// or window-system display targets), and fence-gated destruction.
//
// # Basic usage
//
//	scr, err := screen.New(nil) // best registered window system
//	if err != nil { ... }
//	defer scr.Destroy()
//
//	res, err := scr.CreateResource(screen.Template{
//		Width:  1024,
//		Height: 768,
//		Format: format.RGBA8Unorm,
//		Dim:    surface.Tex2D,
//		Levels: 11,
//		Bind:   screen.BindSampled,
//	})
//	if err != nil { ... }
//	defer scr.DestroyResource(context.Background(), res)
//
//	row := res.Data()[res.SliceOffset(0, 3):]
//
// Display-class binds allocate through the window system instead
// (screen/winsys); the window system's stride overrides the computed pitch.
// Resources referenced by submitted work are marked busy and DestroyResource
// waits on the screen's flush fence before releasing them.
//
// By default the package produces no log output; see SetLogger.
package screen
