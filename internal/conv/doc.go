// Package conv provides checked integer conversions for the fixed-width
// fields of snapshot headers.
package conv
