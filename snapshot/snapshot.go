package snapshot

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/neighborhood/codec"
	"github.com/hupe1980/neighborhood/internal/conv"
	"github.com/hupe1980/neighborhood/internal/fs"
	"github.com/hupe1980/neighborhood/internal/hash"
	"github.com/hupe1980/neighborhood/manager"
)

const (
	// MagicNumber identifies snapshot files (ASCII: "NBH0").
	MagicNumber = 0x4e424830
	// Version is the current format version.
	Version = 1

	// maxPayload bounds the payload size accepted when decoding.
	maxPayload = 1 << 30
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrUnknownCodec       = errors.New("unknown codec")
	ErrUnknownCompression = errors.New("unknown compression")
	ErrCorrupt            = errors.New("corrupt snapshot")
)

// ChecksumMismatchError is returned when the payload checksum does not
// match.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// Unwrap returns ErrCorrupt.
func (e *ChecksumMismatchError) Unwrap() error { return ErrCorrupt }

// Options configures encoding.
type Options struct {
	// Compression of the payload. Default CompressionNone.
	Compression Compression
	// Codec encodes the state. Default codec.Default.
	Codec codec.Codec
}

// Encode captures m and writes it to w.
func Encode(w io.Writer, m manager.Manager, optFns ...func(o *Options)) error {
	st, err := manager.Capture(m)
	if err != nil {
		return err
	}
	return EncodeState(w, st, optFns...)
}

// EncodeState writes st to w.
func EncodeState(w io.Writer, st *manager.State, optFns ...func(o *Options)) error {
	opts := Options{Codec: codec.Default}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	name := opts.Codec.Name()
	nameLen, err := conv.IntToUint8(len(name))
	if err != nil {
		return fmt.Errorf("%w: name too long", ErrUnknownCodec)
	}

	payload, err := opts.Codec.Marshal(st)
	if err != nil {
		return fmt.Errorf("snapshot: encode state: %w", err)
	}
	if len(payload) > maxPayload {
		return fmt.Errorf("snapshot: payload of %d bytes too large", len(payload))
	}
	stored, err := compress(payload, opts.Compression)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	var hdr [10]byte
	binary.LittleEndian.PutUint32(hdr[0:], MagicNumber)
	binary.LittleEndian.PutUint32(hdr[4:], Version)
	hdr[8] = byte(opts.Compression)
	hdr[9] = nameLen
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := bw.WriteString(name); err != nil {
		return err
	}

	size, err := conv.IntToUint32(len(payload))
	if err != nil {
		return err
	}
	storedSize, err := conv.IntToUint32(len(stored))
	if err != nil {
		return err
	}
	var sizes [8]byte
	binary.LittleEndian.PutUint32(sizes[0:], size)
	binary.LittleEndian.PutUint32(sizes[4:], storedSize)
	if _, err := bw.Write(sizes[:]); err != nil {
		return err
	}
	if stored == nil {
		stored = payload
	}
	if _, err := bw.Write(stored); err != nil {
		return err
	}

	var sum [4]byte
	binary.LittleEndian.PutUint32(sum[:], hash.CRC32C(payload))
	if _, err := bw.Write(sum[:]); err != nil {
		return err
	}
	return bw.Flush()
}

// Decode reads a snapshot and restores it as a frozen manager.
func Decode(r io.Reader, optFns ...manager.Option) (*manager.Frozen, error) {
	st, err := DecodeState(r)
	if err != nil {
		return nil, err
	}
	return manager.NewFrozen(st, optFns...)
}

// DecodeState reads a snapshot and returns the state it holds.
func DecodeState(r io.Reader) (*manager.State, error) {
	br := bufio.NewReader(r)

	var hdr [10]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if binary.LittleEndian.Uint32(hdr[0:]) != MagicNumber {
		return nil, ErrInvalidMagic
	}
	if v := binary.LittleEndian.Uint32(hdr[4:]); v != Version {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, v)
	}
	compression := Compression(hdr[8])

	name := make([]byte, hdr[9])
	if _, err := io.ReadFull(br, name); err != nil {
		return nil, fmt.Errorf("%w: codec name: %w", ErrCorrupt, err)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	var sizes [8]byte
	if _, err := io.ReadFull(br, sizes[:]); err != nil {
		return nil, fmt.Errorf("%w: sizes: %w", ErrCorrupt, err)
	}
	size, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(sizes[0:]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	storedSize, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(sizes[4:]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if size > maxPayload || storedSize > maxPayload {
		return nil, fmt.Errorf("%w: payload too large", ErrCorrupt)
	}

	n := size
	if storedSize != 0 {
		n = storedSize
	}
	stored := make([]byte, n)
	if _, err := io.ReadFull(br, stored); err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrCorrupt, err)
	}

	payload := stored
	if storedSize != 0 {
		var err error
		payload, err = decompress(stored, size, compression)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}

	var sum [4]byte
	if _, err := io.ReadFull(br, sum[:]); err != nil {
		return nil, fmt.Errorf("%w: checksum: %w", ErrCorrupt, err)
	}
	expected := binary.LittleEndian.Uint32(sum[:])
	if actual := hash.CRC32C(payload); actual != expected {
		return nil, &ChecksumMismatchError{Expected: expected, Actual: actual}
	}

	st := &manager.State{}
	if err := c.Unmarshal(payload, st); err != nil {
		return nil, fmt.Errorf("%w: decode state: %w", ErrCorrupt, err)
	}
	return st, nil
}

// Save writes a snapshot of m to the file at path. The file is replaced
// atomically.
func Save(path string, m manager.Manager, optFns ...func(o *Options)) error {
	return save(fs.Default, path, m, optFns...)
}

func save(fsys fs.FileSystem, path string, m manager.Manager, optFns ...func(o *Options)) error {
	st, err := manager.Capture(m)
	if err != nil {
		return err
	}
	return fs.WriteAtomic(fsys, path, 0o644, func(w io.Writer) error {
		return EncodeState(w, st, optFns...)
	})
}

// Load restores a frozen manager from the file at path.
func Load(path string, optFns ...manager.Option) (*manager.Frozen, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, optFns...)
}
