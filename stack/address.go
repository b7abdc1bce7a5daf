package stack

import (
	"fmt"

	"github.com/haesemeyer/pixelstack/errs"
)

// SliceOffset returns the byte offset of slice (z, t) within the region.
func (b *stackBase) SliceOffset(z, t int) (int, error) {
	if err := b.ensureAlive(); err != nil {
		return 0, err
	}
	if z < 0 || z >= b.zPlanes {
		return 0, fmt.Errorf("%w: z=%d outside [0,%d)", errs.ErrIndexOutOfRange, z, b.zPlanes)
	}
	if t < 0 || t >= b.timePoints {
		return 0, fmt.Errorf("%w: t=%d outside [0,%d)", errs.ErrIndexOutOfRange, t, b.timePoints)
	}

	return b.sliceIndex(z, t) * b.height * b.stride, nil
}

// sliceIndex maps (z, t) to the slice position in memory. Bounds are the
// caller's responsibility.
func (b *stackBase) sliceIndex(z, t int) int {
	if b.order == TBeforeZ {
		return z*b.timePoints + t
	}

	return t*b.zPlanes + z
}

// PixelOffset returns the byte offset of pixel (x, y, z, t). It fails with
// errs.ErrStackDisposed on a disposed stack instead of resolving into a
// released region.
func (b *stackBase) PixelOffset(x, y, z, t int) (int, error) {
	if x < 0 || x >= b.width {
		return 0, fmt.Errorf("%w: x=%d outside [0,%d)", errs.ErrIndexOutOfRange, x, b.width)
	}
	if y < 0 || y >= b.height {
		return 0, fmt.Errorf("%w: y=%d outside [0,%d)", errs.ErrIndexOutOfRange, y, b.height)
	}

	slice, err := b.SliceOffset(z, t)
	if err != nil {
		return 0, err
	}

	return slice + y*b.stride + x*b.pixelSize, nil
}

// CompatibleWith reports whether pairwise operations between the two
// stacks are defined: equal slice order and equal extents on all four
// axes. Stride is deliberately excluded so a borrowed, differently-strided
// region can still be combined with an owned one.
func (b *stackBase) CompatibleWith(o *stackBase) bool {
	return o != nil &&
		b.order == o.order &&
		b.width == o.width &&
		b.height == o.height &&
		b.zPlanes == o.zPlanes &&
		b.timePoints == o.timePoints
}

// checkOperand validates the right-hand side of a pairwise operation.
func (b *stackBase) checkOperand(o *stackBase) error {
	if o == nil || o.disposed {
		return fmt.Errorf("%w: operand is disposed", errs.ErrIncompatibleStack)
	}
	if !b.CompatibleWith(o) {
		return fmt.Errorf("%w: %dx%dx%dx%d/%s vs %dx%dx%dx%d/%s",
			errs.ErrIncompatibleStack,
			b.width, b.height, b.zPlanes, b.timePoints, b.order,
			o.width, o.height, o.zPlanes, o.timePoints, o.order)
	}

	return nil
}

// forEachRowPair walks the valid rows of two compatible stacks and hands
// the row base offsets to fn. This is the per-pixel fallback path used when
// the operands disagree on stride; iteration follows the receiver's slice
// order so adjacent slices stay adjacent in memory.
func (b *stackBase) forEachRowPair(o *stackBase, fn func(selfRow, otherRow int)) {
	visit := func(z, t int) {
		selfSlice := b.sliceIndex(z, t) * b.height * b.stride
		otherSlice := o.sliceIndex(z, t) * o.height * o.stride
		for y := 0; y < b.height; y++ {
			fn(selfSlice+y*b.stride, otherSlice+y*o.stride)
		}
	}

	if b.order == TBeforeZ {
		for z := 0; z < b.zPlanes; z++ {
			for t := 0; t < b.timePoints; t++ {
				visit(z, t)
			}
		}
	} else {
		for t := 0; t < b.timePoints; t++ {
			for z := 0; z < b.zPlanes; z++ {
				visit(z, t)
			}
		}
	}
}

// forEachRow walks the valid rows of a single stack, handing fn the byte
// offset of each row start. Padding bytes past width are not visited.
func (b *stackBase) forEachRow(fn func(row int)) {
	slices := b.zPlanes * b.timePoints
	for s := 0; s < slices; s++ {
		base := s * b.height * b.stride
		for y := 0; y < b.height; y++ {
			fn(base + y*b.stride)
		}
	}
}
