package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/silo"
)

func main() {
	count := flag.Int("count", 500, "Number of entries to write")
	writers := flag.Int("writers", 4, "Concurrent writers for the contended run")
	keep := flag.Bool("keep", false, "Keep the benchmark store after running")
	flag.Parse()

	// 1. Setup Namespace
	benchDir, err := os.MkdirTemp("", "silo_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	storePath := filepath.Join(benchDir, "memory.json")
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// Rotation off so the store actually grows to *count entries.
	service, err := silo.New(storePath,
		silo.WithLogger(logger),
		silo.WithMaxEntries(-1),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.TODO()

	// Run 1: Sequential writes. Every Add pays for lock + fsync + rename,
	// so this measures the full durability pipeline, not just encoding.
	fmt.Printf("Writing %d entries sequentially...\n", *count)
	startWrite := time.Now()
	for i := 0; i < *count; i++ {
		_, err := service.Add(ctx, silo.AddRequest{
			Agent:   "bench",
			Content: fmt.Sprintf("benchmark entry %d with a handful of words", i),
		})
		if err != nil {
			panic(err)
		}
	}
	writeDur := time.Since(startWrite)
	fmt.Printf("Sequential writes: %v (%.0f entries/s)\n", writeDur, float64(*count)/writeDur.Seconds())

	// Run 2: Cold read through a fresh handle, like a new CLI invocation.
	service2, err := silo.New(storePath,
		silo.WithLogger(logger),
		silo.WithMaxEntries(-1),
	)
	if err != nil {
		panic(err)
	}

	fmt.Println("Running List (fresh handle)...")
	startList := time.Now()
	list, err := service2.List(ctx, silo.ListRequest{})
	if err != nil {
		panic(err)
	}
	listDur := time.Since(startList)
	fmt.Printf("List: %v (Items: %d)\n", listDur, len(list))

	// Run 3: Contended writes across independent handles.
	fmt.Printf("Writing %d entries across %d contending writers...\n", *count, *writers)
	perWriter := *count / *writers
	startContended := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < *writers; w++ {
		handle, err := silo.New(storePath,
			silo.WithLogger(logger),
			silo.WithMaxEntries(-1),
			silo.WithLockTimeout(30*time.Second),
		)
		if err != nil {
			panic(err)
		}
		agent := fmt.Sprintf("bench-%d", w)

		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if _, err := handle.Add(ctx, silo.AddRequest{
					Agent:   agent,
					Content: fmt.Sprintf("contended entry %d", i),
				}); err != nil {
					panic(err)
				}
			}
		}()
	}
	wg.Wait()
	contendedDur := time.Since(startContended)
	written := perWriter * *writers

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d entries):\n", *count)
	fmt.Printf("  Sequential: %v (%.0f entries/s)\n", writeDur, float64(*count)/writeDur.Seconds())
	fmt.Printf("  List:       %v\n", listDur)
	fmt.Printf("  Contended:  %v for %d writes across %d writers (%.0f entries/s)\n",
		contendedDur, written, *writers, float64(written)/contendedDur.Seconds())
	fmt.Printf("--------------------------------------------------\n")
}
