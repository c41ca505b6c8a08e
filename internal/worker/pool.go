// Package worker runs PGN tokenization over many inputs in parallel.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/eikopf/konig/internal/pgn"
)

// WorkItem is one named PGN buffer to tokenize.
type WorkItem struct {
	Index int    // submission order, for reassembling results
	Name  string // display name of the input
	Data  []byte
}

// ProcessResult is the outcome of tokenizing one WorkItem.
type ProcessResult struct {
	Index  int
	Name   string
	Counts map[pgn.Kind]int // tokens seen per kind, up to the first error
	Lines  int              // line of the last token read
	Err    error
}

// Total returns the number of tokens counted.
func (r ProcessResult) Total() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a fixed set of goroutines applying a ProcessFunc.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines. Values below 1 are ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size. Values below 1 are ignored.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool running processFunc. The default is one worker
// and a buffer of 10; opts override either.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items until the work channel is closed. Once the pool
// is stopped, remaining items are drained unprocessed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.stopped.Load() {
			continue
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues a work item, blocking while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// TrySubmit queues a work item without blocking. It returns false if the
// buffer is full or the pool is stopped.
func (p *Pool) TrySubmit(item WorkItem) bool {
	if p.stopped.Load() {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Stop makes workers skip every item not yet started.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close closes the work channel, waits for the workers, then closes the
// result channel. Results must be drained concurrently or Close may block.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
