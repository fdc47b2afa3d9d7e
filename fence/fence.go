// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fence provides a software fence for ordering resource teardown
// against in-flight rendering work.
//
// A fence is submitted alongside a batch of work and signaled when that work
// retires. Anything that must outlive the batch (a resource's backing memory,
// a display target) watches the fence instead of freeing eagerly.
package fence

import (
	"context"
	"sync"
	"time"
)

// Fence tracks completion of a single batch of submitted work.
//
// The zero value is not usable; call New. A fence moves through three states:
// idle (created, nothing submitted), pending (submitted, not yet signaled),
// and signaled. Signal is idempotent and a fence never returns to pending.
type Fence struct {
	mu        sync.Mutex
	submitted bool
	signaled  bool
	done      chan struct{}
}

// New returns an idle fence.
func New() *Fence {
	return &Fence{done: make(chan struct{})}
}

// Submit marks the fence as having in-flight work. Submitting an already
// signaled fence has no effect.
func (f *Fence) Submit() {
	f.mu.Lock()
	if !f.signaled {
		f.submitted = true
	}
	f.mu.Unlock()
}

// Signal marks the fence complete and wakes all waiters. Safe to call more
// than once.
func (f *Fence) Signal() {
	f.mu.Lock()
	if !f.signaled {
		f.signaled = true
		close(f.done)
	}
	f.mu.Unlock()
}

// Pending reports whether the fence has submitted work that has not yet
// been signaled.
func (f *Fence) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitted && !f.signaled
}

// Signaled reports whether Signal has been called.
func (f *Fence) Signaled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signaled
}

// Reset returns a signaled fence to idle so it can track the next batch.
// Resetting a pending fence would orphan its waiters, so Reset is a no-op
// until Signal has been called.
func (f *Fence) Reset() {
	f.mu.Lock()
	if f.signaled {
		f.signaled = false
		f.submitted = false
		f.done = make(chan struct{})
	}
	f.mu.Unlock()
}

// Done returns a channel that is closed when the fence is signaled. After a
// Reset the channel is replaced, so callers must re-fetch it per batch.
func (f *Fence) Done() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Wait blocks until the fence is signaled or ctx is done. It returns nil on
// signal and the context's error otherwise. A fence that was never submitted
// still blocks; callers that only care about outstanding work should check
// Pending first.
func (f *Fence) Wait(ctx context.Context) error {
	select {
	case <-f.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitTimeout blocks up to d and reports whether the fence was signaled in
// time. A non-positive d polls without blocking.
func (f *Fence) WaitTimeout(d time.Duration) bool {
	if d <= 0 {
		return f.Signaled()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-f.Done():
		return true
	case <-t.C:
		return false
	}
}
