// Package blobstore provides storage backends for snapshot files.
//
// A Store keeps whole, immutable objects addressed by name. Snapshots are
// small enough to be written and read in one piece, so the interface has no
// range reads or streaming writes.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory, for tests
//   - LocalStore: a directory on the local file system
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible storage
package blobstore
