package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/michaelscutari/pathfold/internal/pathutil"
	"github.com/michaelscutari/pathfold/internal/probe"
)

func main() {
	dir := flag.String("dir", ".", "Directory to probe")
	limit := flag.Int("limit", 200000, "Max entries to sample (0 = all)")
	workers := flag.Int("workers", 8, "Concurrent lstat workers")
	rounds := flag.Int("rounds", 10, "Join rounds over the sampled names")
	shuffle := flag.Bool("shuffle", false, "Shuffle sampled paths")
	sampleSeed := flag.Int64("seed", 0, "Shuffle seed (0 = time-based)")
	flag.Parse()

	root, err := pathutil.Concat(pathutil.OSWorkDir, *dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	names, err := probe.List(root)
	listDur := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list error: %v\n", err)
		os.Exit(1)
	}
	if *limit > 0 && *limit < len(names) {
		names = names[:*limit]
	}

	// Join throughput: fold every name onto the root, plus a parent hop so
	// the pop path is exercised too.
	var paths []string
	var joins int64
	start = time.Now()
	for r := 0; r < *rounds; r++ {
		for _, name := range names {
			p, err := pathutil.Join(root, name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "join error: %v\n", err)
				os.Exit(1)
			}
			if _, err := pathutil.Join(p, "../."); err != nil {
				fmt.Fprintf(os.Stderr, "join error: %v\n", err)
				os.Exit(1)
			}
			joins += 2
			if r == 0 {
				paths = append(paths, p)
			}
		}
	}
	joinDur := time.Since(start)

	if *shuffle && len(paths) > 1 {
		seed := *sampleSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(paths), func(i, j int) { paths[i], paths[j] = paths[j], paths[i] })
	}

	var idx int64
	var statCount int64
	var errCount int64
	var totalDur int64

	start = time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				n := int(atomic.AddInt64(&idx, 1)) - 1
				if n >= len(paths) {
					return
				}
				t0 := time.Now()
				_, err := probe.Lstat(paths[n])
				atomic.AddInt64(&totalDur, time.Since(t0).Microseconds())
				atomic.AddInt64(&statCount, 1)
				if err != nil {
					atomic.AddInt64(&errCount, 1)
				}
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	avg := time.Duration(0)
	if statCount > 0 {
		avg = time.Duration(atomic.LoadInt64(&totalDur)/statCount) * time.Microsecond
	}

	fmt.Printf("dir=%s entries=%d workers=%d rounds=%d shuffle=%t\n", root, len(names), *workers, *rounds, *shuffle)
	fmt.Printf("list:    %v\n", listDur)
	fmt.Printf("join:    calls=%d total=%v", joins, joinDur)
	if joinDur > 0 {
		fmt.Printf(" (%.0f joins/sec)", float64(joins)/joinDur.Seconds())
	}
	fmt.Println()
	fmt.Printf("lstat:   calls=%d avg=%v total=%v errors=%d\n", statCount, avg, elapsed, errCount)
	if elapsed.Seconds() > 0 {
		fmt.Printf("throughput: %.0f stats/sec\n", float64(statCount)/elapsed.Seconds())
	}
}
