package main

import (
	"context"
	"runtime"
	"sync"

	govspeak "github.com/alnah/go-govspeak"
)

// DocumentRenderer creates documents for rendering.
type DocumentRenderer interface {
	NewDocument(in govspeak.Input) *govspeak.Document
}

// Compile-time interface implementation check.
var _ DocumentRenderer = (*govspeak.Renderer)(nil)

// Pool abstracts worker slot operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (DocumentRenderer, error)
	Release(DocumentRenderer)
	Size() int
}

// WorkerPool bounds how many documents render at once. A Renderer is safe
// for concurrent use, so every slot hands out the same one.
type WorkerPool struct {
	renderer DocumentRenderer
	size     int
	sem      chan struct{}
	mu       sync.Mutex
	closed   bool
}

// NewWorkerPool creates a pool with n slots sharing renderer.
func NewWorkerPool(renderer DocumentRenderer, n int) *WorkerPool {
	if n < 1 {
		n = 1
	}

	return &WorkerPool{
		renderer: renderer,
		size:     n,
		sem:      make(chan struct{}, n),
	}
}

// Compile-time check that WorkerPool implements Pool.
var _ Pool = (*WorkerPool)(nil)

// Acquire takes a slot, blocking until one is free or ctx is done.
func (p *WorkerPool) Acquire(ctx context.Context) (DocumentRenderer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case p.sem <- struct{}{}:
		return p.renderer, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a slot to the pool.
func (p *WorkerPool) Release(DocumentRenderer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		<-p.sem
	}
}

// Close marks the pool closed. Later releases are no-ops.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Size returns the pool capacity.
func (p *WorkerPool) Size() int {
	return p.size
}

// resolvePoolSize determines the pool size.
// Priority: explicit flag > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)

	// Minimum 1, maximum 8
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
