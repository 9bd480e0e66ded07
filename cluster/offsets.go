package cluster

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexMismatch is returned when a cluster index table is not dense.
	ErrIndexMismatch = errors.New("cluster index mismatch")

	// ErrOffsetMismatch is returned when an offset table disagrees with the
	// extension counts it was derived from.
	ErrOffsetMismatch = errors.New("cluster offset mismatch")
)

// BuildOffsets returns the prefix sums of counts with a trailing sentinel:
// len(result) == len(counts)+1, result[0] == 0 and
// result[i+1]-result[i] == counts[i].
func BuildOffsets(counts []int) []int {
	return AppendOffsets(make([]int, 0, len(counts)+1), counts)
}

// AppendOffsets is BuildOffsets writing into dst[:0].
func AppendOffsets(dst []int, counts []int) []int {
	dst = append(dst[:0], 0)
	sum := 0
	for _, n := range counts {
		sum += n
		dst = append(dst, sum)
	}
	return dst
}

// CheckOffsets verifies an offset table against counts and the total length
// of the flattened extension array.
func CheckOffsets(offsets, counts []int, total int) error {
	if len(offsets) != len(counts)+1 {
		return fmt.Errorf("%w: %d offsets for %d clusters", ErrOffsetMismatch, len(offsets), len(counts))
	}
	if offsets[0] != 0 {
		return fmt.Errorf("%w: first offset is %d", ErrOffsetMismatch, offsets[0])
	}
	for i, n := range counts {
		if n < 0 || offsets[i+1]-offsets[i] != n {
			return fmt.Errorf("%w: cluster %d spans [%d,%d) but has %d extensions",
				ErrOffsetMismatch, i, offsets[i], offsets[i+1], n)
		}
	}
	if offsets[len(counts)] != total {
		return fmt.Errorf("%w: offsets end at %d, extensions hold %d", ErrOffsetMismatch, offsets[len(counts)], total)
	}
	return nil
}
