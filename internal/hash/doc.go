// Package hash provides the CRC32-Castagnoli checksum that guards snapshot
// payloads and object-store uploads.
package hash
