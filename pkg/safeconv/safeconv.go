// Package safeconv converts between integer types, panicking where a value
// would not survive the conversion.
package safeconv

// MustSizeToUint64 converts a file or buffer size to uint64. Sizes are never
// negative, so a negative value is a bug in the caller.
func MustSizeToUint64(size int64) uint64 {
	if size < 0 {
		panic("safeconv: negative size")
	}

	return uint64(size)
}
