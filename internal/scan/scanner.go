package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/michaelscutari/pathfold/internal/entry"
	"github.com/michaelscutari/pathfold/internal/pathutil"
	"github.com/michaelscutari/pathfold/internal/probe"
)

// ErrTooManyErrors is returned when a listing hits its error budget.
var ErrTooManyErrors = errors.New("too many errors")

// Scanner lists a single directory and stats its children concurrently.
type Scanner struct {
	opts *ScanOptions
}

// NewScanner creates a new scanner.
func NewScanner(opts *ScanOptions) *Scanner {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Scanner{opts: opts}
}

// Run lists dir and returns its entries in enumeration order. Children that
// could not be probed are reported in Listing.Errors.
func (s *Scanner) Run(ctx context.Context, dir string) (*entry.Listing, error) {
	dir = pathutil.Normalize(dir)
	startTime := time.Now()

	names, err := probe.List(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	// Create cancellable context for max-errors abort
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]entry.Entry, len(names))
	found := make([]bool, len(names))
	errorCh := make(chan entry.ScanError, len(names))
	queue := make(chan statWork, s.opts.Workers*4)
	var errorCount int64

	var wg sync.WaitGroup
	for i := 0; i < s.opts.Workers; i++ {
		worker := NewWorker(i, s.opts, results, found, errorCh, &errorCount, cancel)
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			w.Run(runCtx, queue)
		}(worker)
	}

	var feedErr error
feed:
	for i, name := range names {
		childPath, err := pathutil.Join(dir, name)
		if err != nil {
			feedErr = err
			break
		}
		if s.opts.ShouldExclude(name, childPath) {
			continue
		}
		select {
		case queue <- statWork{index: i, path: childPath}:
		case <-runCtx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()
	close(errorCh)

	if feedErr != nil {
		return nil, feedErr
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	listing := &entry.Listing{Dir: dir, RecordedAt: startTime}
	for i := range results {
		if found[i] {
			listing.Entries = append(listing.Entries, results[i])
		}
	}
	for e := range errorCh {
		listing.Errors = append(listing.Errors, e)
	}

	logrus.WithFields(logrus.Fields{
		"dir":     dir,
		"entries": len(listing.Entries),
		"errors":  len(listing.Errors),
		"took":    time.Since(startTime).Round(time.Millisecond),
	}).Debug("listing complete")

	if runCtx.Err() != nil {
		return listing, fmt.Errorf("%w: %d errors listing %s", ErrTooManyErrors, atomic.LoadInt64(&errorCount), dir)
	}
	return listing, nil
}
