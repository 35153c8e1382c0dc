package utils

import (
	"sync"
	"time"
)

// WorkerPool bounds the number of concurrent detail-page fetches and
// enforces a minimum interval between requests so enrichment never
// hammers a site faster than the paginated crawl does.
type WorkerPool struct {
	semaphore   chan struct{}
	minInterval time.Duration
	wg          sync.WaitGroup
	mu          sync.Mutex
	lastJob     time.Time
}

// NewWorkerPool creates a pool running at most maxWorkers jobs at once,
// starting jobs no closer together than rateLimitMs milliseconds.
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		semaphore:   make(chan struct{}, maxWorkers),
		minInterval: time.Duration(rateLimitMs) * time.Millisecond,
		lastJob:     time.Now(),
	}
}

// Submit enqueues a job for execution in the pool. It blocks while all
// workers are busy.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		wp.throttle()
		job()
	}()
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) throttle() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wait := wp.minInterval - time.Since(wp.lastJob); wait > 0 {
		time.Sleep(wait)
	}
	wp.lastJob = time.Now()
}

// URLSet tracks listing URLs already collected in this run so the same
// listing is never kept twice, even when sites repeat items across pages.
type URLSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[string]struct{})}
}

// Add returns true if the URL was newly added, false if already present.
func (s *URLSet) Add(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[url]; exists {
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Contains reports whether the URL has already been collected.
func (s *URLSet) Contains(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[url]
	return exists
}

// Size returns the number of unique URLs tracked.
func (s *URLSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
