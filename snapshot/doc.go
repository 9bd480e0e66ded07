// Package snapshot persists the content of a structure manager and
// restores it as a read-only manager.Frozen.
//
// # Format
//
//	[magic uint32][version uint32]
//	[compression uint8][codec name length uint8][codec name]
//	[uncompressed size uint32][stored size uint32][payload]
//	[crc32c of the uncompressed payload uint32]
//
// All integers are little-endian. The payload is a manager.State encoded
// with the named codec. A stored size of zero means the payload is stored
// uncompressed, which happens when compression does not shrink it.
package snapshot
