package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/silo/pkg/lock"
)

// Spike configuration
const (
	WorkerCount = 100
	LockTimeout = 30 * time.Second
)

type payload struct {
	Counter int      `json:"counter"`
	Writers []string `json:"writers"`
}

// Probes the core claim behind the storage engine: an advisory file lock
// around a read-modify-write cycle is enough to keep N concurrent writers
// from losing updates or corrupting the JSON payload. No engine, no
// backups, just the lock primitive and raw file IO.
func main() {
	log.Println("⚡ Starting Spike: Silo Lock Contention Test")

	// 1. Temp working directory
	tmpDir, err := os.MkdirTemp("", "silo-spike-*")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	// Cleanup at the end (commented out to inspect results after a failure)
	// defer os.RemoveAll(tmpDir)

	log.Printf("📂 Working directory: %s", tmpDir)

	dataPath := filepath.Join(tmpDir, "data.json")
	if err := os.WriteFile(dataPath, []byte(`{"counter":0,"writers":[]}`), 0644); err != nil {
		log.Fatalf("Failed to seed data file: %v", err)
	}

	manager := lock.NewManager(dataPath+".lock", nil)

	start := time.Now()

	// 2. Concurrent read-modify-write cycles
	var wg sync.WaitGroup
	wg.Add(WorkerCount)

	for i := 0; i < WorkerCount; i++ {
		go func(id int) {
			defer wg.Done()

			handle, err := manager.Acquire(context.Background(), LockTimeout)
			if err != nil {
				log.Printf("[Error] Worker %d could not lock: %v", id, err)
				return
			}
			defer handle.Release()

			// Critical section: whole-file read, mutate, write back
			raw, err := os.ReadFile(dataPath)
			if err != nil {
				log.Printf("[Error] Worker %d read: %v", id, err)
				return
			}
			var p payload
			if err := json.Unmarshal(raw, &p); err != nil {
				log.Printf("[Error] Worker %d found corrupt JSON: %v", id, err)
				return
			}

			p.Counter++
			p.Writers = append(p.Writers, fmt.Sprintf("worker-%d", id))

			out, err := json.Marshal(p)
			if err != nil {
				log.Printf("[Error] Worker %d marshal: %v", id, err)
				return
			}
			if err := os.WriteFile(dataPath, out, 0644); err != nil {
				log.Printf("[Error] Worker %d write: %v", id, err)
				return
			}

			// log.Printf("✅ Worker %d done", id) // Commented out to reduce noise
		}(i)
	}

	wg.Wait()
	duration := time.Since(start)

	// 3. Final validation
	log.Println("🏁 All goroutines finished.")
	log.Printf("⏱️  Total time: %v", duration)
	log.Printf("⚡ Throughput: %.2f cycles/sec", float64(WorkerCount)/duration.Seconds())

	raw, err := os.ReadFile(dataPath)
	if err != nil {
		log.Fatalf("❌ FAILURE: could not read final file: %v", err)
	}
	var final payload
	if err := json.Unmarshal(raw, &final); err != nil {
		log.Fatalf("❌ FAILURE: final file is not valid JSON:\n%s", raw)
	}

	if final.Counter != WorkerCount || len(final.Writers) != WorkerCount {
		log.Fatalf("❌ FAILURE: lost updates, counter=%d writers=%d want %d",
			final.Counter, len(final.Writers), WorkerCount)
	}
	log.Printf("✅ SUCCESS: %d writers, zero lost updates, valid JSON.", final.Counter)
}
