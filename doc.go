// Package silo is the Composition Root for the silo application.
//
// It connects the core business logic (Domain Layer) with the infrastructure
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Silo is a shared memory store for cooperating agents. A single JSON file
// holds every entry, and an advisory file lock makes concurrent access from
// independent processes safe: each operation takes the lock, reads the file,
// applies its change, snapshots the previous state and writes the result
// atomically. The file is the sole source of truth; nothing is cached
// between calls.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Crash Safe**: Atomic writes via temp file, fsync and rename.
//   - **Multi-Process Safe**: Advisory file locking with bounded retries.
//   - **Self Healing**: Automatic recovery from timestamped backups when the
//     primary file is corrupt.
//   - **Bounded**: Entry rotation and backup retention keep disk usage flat.
//   - **Reactive**: Watch the storage file for changes made by other processes.
//   - **Typed Retrieval**: Generic wrapper (`NewTyped[T]`) for type-safe
//     metadata access.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := silo.New("./memory.json",
//		silo.WithRetention(5),
//		silo.WithLogger(logger),
//	)
//
//	// Record an entry
//	entry, err := svc.Add(ctx, silo.AddRequest{
//		Agent:   "planner",
//		Content: "Decided on the rollout order",
//	})
package silo
