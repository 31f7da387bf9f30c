// Package swizzle converts between BGRA and RGBA pixel layouts in place.
package swizzle

// BGRA swaps the first and third byte of every 4-byte pixel in p, turning
// BGRA into RGBA and back. A trailing partial pixel is left alone.
func BGRA(p []byte) {
	n := len(p) &^ 3
	for i := 0; i < n; i += 4 {
		p[i], p[i+2] = p[i+2], p[i]
	}
}

// BGRARows swaps rows of width pixels stored stride bytes apart, skipping
// the padding at the end of each row.
func BGRARows(p []byte, width, stride int) {
	row := width * 4
	for off := 0; off+row <= len(p); off += stride {
		BGRA(p[off : off+row])
	}
}
