// Package fs abstracts the file operations of snapshot persistence so tests
// can inject I/O failures.
//
//   - [LocalFS]: production implementation on the os package
//   - [FaultyFS]: wrapper failing writes, syncs or closes on request
//
// Production code uses fs.Default:
//
//	f, err := fs.Default.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
//
// Tests inject a FaultyFS:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp", fs.Fault{FailAfterBytes: 16})
package fs
