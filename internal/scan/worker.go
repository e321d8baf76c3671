package scan

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/michaelscutari/pathfold/internal/entry"
	"github.com/michaelscutari/pathfold/internal/probe"
)

const slowOpThreshold = 200 * time.Millisecond

type statWork struct {
	index int
	path  string
}

// Worker stats listing entries and stores them by index.
type Worker struct {
	id      int
	opts    *ScanOptions
	results []entry.Entry
	found   []bool
	errorCh chan<- entry.ScanError
	errors  *int64
	cancel  context.CancelFunc
}

// NewWorker creates a new worker writing into results and found.
func NewWorker(id int, opts *ScanOptions, results []entry.Entry, found []bool, errorCh chan<- entry.ScanError, errors *int64, cancel context.CancelFunc) *Worker {
	return &Worker{
		id:      id,
		opts:    opts,
		results: results,
		found:   found,
		errorCh: errorCh,
		errors:  errors,
		cancel:  cancel,
	}
}

// Run processes work until the queue is closed or ctx is done. Once ctx
// is canceled no further item is probed, even if the queue still has work.
func (w *Worker) Run(ctx context.Context, queue <-chan statWork) {
	for {
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case work, ok := <-queue:
			if !ok || ctx.Err() != nil {
				return
			}
			w.process(work)
		}
	}
}

func (w *Worker) process(work statWork) {
	log := logrus.WithFields(logrus.Fields{"worker": w.id, "path": work.path})

	start := time.Now()
	var (
		e   entry.Entry
		err error
	)
	if w.opts.FollowSymlinks {
		e, err = probe.Stat(work.path)
	} else {
		e, err = probe.Lstat(work.path)
	}
	if took := time.Since(start); took > slowOpThreshold {
		log.WithField("took", took).Debug("slow stat")
	}

	if err != nil {
		log.WithError(err).Debug("stat failed")
		// Non-blocking send - the channel is sized to the listing so this only drops on misuse
		select {
		case w.errorCh <- entry.ScanError{Path: work.path, Message: err.Error()}:
		default:
		}
		n := atomic.AddInt64(w.errors, 1)
		if w.opts.MaxErrors > 0 && n >= int64(w.opts.MaxErrors) {
			w.cancel()
		}
		return
	}

	w.results[work.index] = e
	w.found[work.index] = true
}
