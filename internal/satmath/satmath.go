// Package satmath implements saturating unsigned pixel arithmetic, both as
// scalar operations and as lane-wise transforms over packed 32-bit words.
//
// The arithmetic engines process pixel regions one machine word at a time:
// a word carries four 8-bit lanes or two 16-bit lanes, and each lane
// saturates independently. The scalar operations here define the per-lane
// semantics; the Map/Zip helpers lift them onto packed words.
package satmath

// Uint covers the unsigned pixel encodings that use saturating arithmetic.
type Uint interface {
	~uint8 | ~uint16
}

// WordBytes is the width of the packed word used by the lane transforms.
const WordBytes = 4

// Max returns the maximum representable value of T.
func Max[T Uint]() T {
	var zero T
	return ^zero
}

// AddSat returns a+b clamped to the maximum of T.
//
// Overflow detection relies on unsigned wraparound: a narrowing add that
// wrapped always produces a sum below its first operand.
func AddSat[T Uint](a, b T) T {
	sum := a + b
	if sum < a {
		return Max[T]()
	}

	return sum
}

// SubSat returns a-b clamped to zero.
func SubSat[T Uint](a, b T) T {
	diff := a - b
	if diff > a {
		return 0
	}

	return diff
}

// MulSat returns a*b clamped to the maximum of T.
//
// Overflow must be checked before multiplying: a wrapped product can land
// above both operands (8-bit: 40*9 = 360 wraps to 104), so a post-hoc
// comparison cannot detect it.
func MulSat[T Uint](a, b T) T {
	if b != 0 && Max[T]()/b < a {
		return Max[T]()
	}

	return a * b
}

// Replicate8 broadcasts v into all four 8-bit lanes of a word.
func Replicate8(v uint8) uint32 {
	return uint32(v) * 0x01010101
}

// Replicate16 broadcasts v into both 16-bit lanes of a word.
func Replicate16(v uint16) uint32 {
	return uint32(v) | uint32(v)<<16
}

// MapLanes8 applies fn to each 8-bit lane of w independently.
func MapLanes8(w uint32, fn func(uint8) uint8) uint32 {
	var out uint32
	for shift := 0; shift < 32; shift += 8 {
		out |= uint32(fn(uint8(w>>shift))) << shift
	}

	return out
}

// ZipLanes8 combines the 8-bit lanes of a and b pairwise through fn.
func ZipLanes8(a, b uint32, fn func(x, y uint8) uint8) uint32 {
	var out uint32
	for shift := 0; shift < 32; shift += 8 {
		out |= uint32(fn(uint8(a>>shift), uint8(b>>shift))) << shift
	}

	return out
}

// MapLanes16 applies fn to each 16-bit lane of w independently.
func MapLanes16(w uint32, fn func(uint16) uint16) uint32 {
	lo := fn(uint16(w))
	hi := fn(uint16(w >> 16))

	return uint32(lo) | uint32(hi)<<16
}

// ZipLanes16 combines the 16-bit lanes of a and b pairwise through fn.
func ZipLanes16(a, b uint32, fn func(x, y uint16) uint16) uint32 {
	lo := fn(uint16(a), uint16(b))
	hi := fn(uint16(a>>16), uint16(b>>16))

	return uint32(lo) | uint32(hi)<<16
}
