package stack

import (
	"runtime"

	"github.com/haesemeyer/pixelstack/endian"
	"github.com/haesemeyer/pixelstack/internal/satmath"
)

// Stack8 is a 4D pixel stack with 8-bit unsigned pixels. Its word-packed
// operators process four pixel lanes per machine word.
type Stack8 struct {
	stackBase
}

const pixelSize8 = 1

// New8 allocates an owning 8-bit stack of the given extents. The region
// starts zeroed and rows are padded to the 4-byte stride boundary.
func New8(width, height, zPlanes, timePoints int, opts ...Option) (*Stack8, error) {
	base, err := newBase(width, height, zPlanes, timePoints, pixelSize8, opts...)
	if err != nil {
		return nil, err
	}

	s := &Stack8{stackBase: base}
	runtime.SetFinalizer(s, (*Stack8).Dispose)

	return s, nil
}

// New8Copy allocates an owning byte-for-byte duplicate of src, padding
// included. Fails with errs.ErrInvalidOperation if src is disposed.
func New8Copy(src *Stack8) (*Stack8, error) {
	base, err := newCopyBase(&src.stackBase)
	if err != nil {
		return nil, err
	}

	s := &Stack8{stackBase: base}
	runtime.SetFinalizer(s, (*Stack8).Dispose)

	return s, nil
}

// New8Borrowed wraps a caller-owned region without copying or taking
// ownership; disposing the returned stack never releases the region.
func New8Borrowed(region []byte, width, stride, height, zPlanes, timePoints int,
	order SliceOrder,
) (*Stack8, error) {
	base, err := newBorrowedBase(region, width, stride, height, zPlanes, timePoints, order, pixelSize8)
	if err != nil {
		return nil, err
	}

	return &Stack8{stackBase: base}, nil
}

// Pixel reads the pixel at (x, y, z, t).
func (s *Stack8) Pixel(x, y, z, t int) (uint8, error) {
	off, err := s.PixelOffset(x, y, z, t)
	if err != nil {
		return 0, err
	}

	return s.data[off], nil
}

// SetPixel writes the pixel at (x, y, z, t).
func (s *Stack8) SetPixel(x, y, z, t int, v uint8) error {
	off, err := s.PixelOffset(x, y, z, t)
	if err != nil {
		return err
	}
	s.data[off] = v

	return nil
}

// SetAll writes v to every position in the region, padding included.
func (s *Stack8) SetAll(v uint8) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}

	data := s.data
	eng := endian.Native()
	word := satmath.Replicate8(v)
	n := len(data) / satmath.WordBytes * satmath.WordBytes
	for i := 0; i < n; i += satmath.WordBytes {
		eng.PutUint32(data[i:i+satmath.WordBytes], word)
	}
	for i := n; i < len(data); i++ {
		data[i] = v
	}

	return nil
}

// mapWords applies fn to every element of the region, four lanes per word
// with a scalar tail for the leftover bytes.
func (s *Stack8) mapWords(fn func(uint8) uint8) {
	data := s.data
	eng := endian.Native()
	n := len(data) / satmath.WordBytes * satmath.WordBytes
	for i := 0; i < n; i += satmath.WordBytes {
		w := eng.Uint32(data[i : i+satmath.WordBytes])
		eng.PutUint32(data[i:i+satmath.WordBytes], satmath.MapLanes8(w, fn))
	}
	for i := n; i < len(data); i++ {
		data[i] = fn(data[i])
	}
}

// zipWords combines the regions of two equal-stride stacks word by word,
// reading both operands at identical offsets. Padding positions are
// processed too; their content is implementation-defined.
func (s *Stack8) zipWords(o *Stack8, fn func(x, y uint8) uint8) {
	a, b := s.data, o.data
	eng := endian.Native()
	n := len(a) / satmath.WordBytes * satmath.WordBytes
	for i := 0; i < n; i += satmath.WordBytes {
		w := satmath.ZipLanes8(eng.Uint32(a[i:i+satmath.WordBytes]), eng.Uint32(b[i:i+satmath.WordBytes]), fn)
		eng.PutUint32(a[i:i+satmath.WordBytes], w)
	}
	for i := n; i < len(a); i++ {
		a[i] = fn(a[i], b[i])
	}
}

// zipPixels combines two stride-mismatched stacks pixel by pixel through
// the addressing engine.
func (s *Stack8) zipPixels(o *Stack8, fn func(x, y uint8) uint8) {
	s.forEachRowPair(&o.stackBase, func(selfRow, otherRow int) {
		for x := 0; x < s.width; x++ {
			s.data[selfRow+x] = fn(s.data[selfRow+x], o.data[otherRow+x])
		}
	})
}

func (s *Stack8) pairwise(o *Stack8, fn func(x, y uint8) uint8) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	var ob *stackBase
	if o != nil {
		ob = &o.stackBase
	}
	if err := s.checkOperand(ob); err != nil {
		return err
	}

	if s.stride == o.stride {
		s.zipWords(o, fn)
	} else {
		s.zipPixels(o, fn)
	}

	return nil
}

// AddConstant adds v to every element, clamping at 255.
func (s *Stack8) AddConstant(v uint8) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	s.mapWords(func(p uint8) uint8 { return satmath.AddSat(p, v) })

	return nil
}

// SubConstant subtracts v from every element, clamping at 0.
func (s *Stack8) SubConstant(v uint8) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	s.mapWords(func(p uint8) uint8 { return satmath.SubSat(p, v) })

	return nil
}

// MulConstant multiplies every element by v, clamping at 255.
func (s *Stack8) MulConstant(v uint8) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	s.mapWords(func(p uint8) uint8 { return satmath.MulSat(p, v) })

	return nil
}

// DivConstant divides every element by v. A zero divisor is an unchecked
// precondition violation and faults; callers must validate divisors.
func (s *Stack8) DivConstant(v uint8) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	s.mapWords(func(p uint8) uint8 { return p / v })

	return nil
}

// Add adds o element-wise into s, clamping at 255. Fails with
// errs.ErrIncompatibleStack if o is disposed or has different geometry.
func (s *Stack8) Add(o *Stack8) error {
	return s.pairwise(o, satmath.AddSat[uint8])
}

// Subtract subtracts o element-wise from s, clamping at 0.
func (s *Stack8) Subtract(o *Stack8) error {
	return s.pairwise(o, satmath.SubSat[uint8])
}

// Multiply multiplies s element-wise by o, clamping at 255.
func (s *Stack8) Multiply(o *Stack8) error {
	return s.pairwise(o, satmath.MulSat[uint8])
}

// Divide divides s element-wise by o. A zero element in o is an unchecked
// precondition violation and faults. Division always runs row-wise over
// the valid region: padding positions are zero in freshly allocated
// stacks and must never be used as divisors.
func (s *Stack8) Divide(o *Stack8) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	var ob *stackBase
	if o != nil {
		ob = &o.stackBase
	}
	if err := s.checkOperand(ob); err != nil {
		return err
	}
	s.zipPixels(o, func(x, y uint8) uint8 { return x / y })

	return nil
}

// FindMinMax scans every valid pixel and returns the extremes. Stride
// padding is excluded from the reduction.
func (s *Stack8) FindMinMax() (minVal, maxVal uint8, err error) {
	if err := s.ensureAlive(); err != nil {
		return 0, 0, err
	}

	minVal = satmath.Max[uint8]()
	s.forEachRow(func(row int) {
		for _, p := range s.data[row : row+s.width] {
			if p < minVal {
				minVal = p
			}
			if p > maxVal {
				maxVal = p
			}
		}
	})

	return minVal, maxVal, nil
}
