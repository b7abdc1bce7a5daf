// Package pixelstack provides in-memory 4-dimensional (x, y, z-plane,
// time-point) pixel stacks with element-wise saturating arithmetic.
//
// Three pixel encodings are supported: 8-bit unsigned, 16-bit unsigned and
// 32-bit float. Stacks either own their backing region (allocated on
// construction, released exactly once on Dispose) or borrow a
// caller-supplied region. Arithmetic operators run over packed machine
// words when operand layouts agree and fall back to per-pixel addressing
// when they do not.
//
// # Basic Usage
//
//	import "github.com/haesemeyer/pixelstack"
//
//	// 512x512 pixels, 30 z-planes, 100 time-points
//	img, err := pixelstack.New8(512, 512, 30, 100)
//	if err != nil {
//	    return err
//	}
//	defer img.Dispose()
//
//	_ = img.SetAll(10)
//	_ = img.AddConstant(200) // saturates at 255
//
//	background, err := pixelstack.New8Copy(img)
//	if err != nil {
//	    return err
//	}
//	defer background.Dispose()
//
//	_ = img.Subtract(background) // element-wise, clamps at 0
//
// Borrowed regions wrap acquisition memory without copying:
//
//	raw := acquireFrame() // []byte owned by the acquisition layer
//	view, err := pixelstack.New8Borrowed(raw, w, stride, h, z, t, pixelstack.TBeforeZ)
//
// # Package Structure
//
// This package re-exports the most common entry points of the stack
// package. Use the stack package directly for depth conversions, plane
// views, snapshots and the full operator set.
package pixelstack

import (
	"github.com/haesemeyer/pixelstack/stack"
)

// SliceOrder selects which axis varies fastest across slices in memory.
type SliceOrder = stack.SliceOrder

const (
	// ZBeforeT lays out all z-planes of one time-point contiguously.
	ZBeforeT = stack.ZBeforeT
	// TBeforeZ lays out all time-points of one z-plane contiguously.
	TBeforeZ = stack.TBeforeZ
)

// Option configures an allocating stack constructor.
type Option = stack.Option

// WithSliceOrder overrides the default TBeforeZ slice order.
func WithSliceOrder(order SliceOrder) Option {
	return stack.WithSliceOrder(order)
}

// New8 allocates an owning 8-bit stack of the given extents.
func New8(width, height, zPlanes, timePoints int, opts ...Option) (*stack.Stack8, error) {
	return stack.New8(width, height, zPlanes, timePoints, opts...)
}

// New8Copy allocates an owning duplicate of src.
func New8Copy(src *stack.Stack8) (*stack.Stack8, error) {
	return stack.New8Copy(src)
}

// New8Borrowed wraps a caller-owned region without taking ownership.
func New8Borrowed(region []byte, width, stride, height, zPlanes, timePoints int,
	order SliceOrder,
) (*stack.Stack8, error) {
	return stack.New8Borrowed(region, width, stride, height, zPlanes, timePoints, order)
}

// New16 allocates an owning 16-bit stack of the given extents.
func New16(width, height, zPlanes, timePoints int, opts ...Option) (*stack.Stack16, error) {
	return stack.New16(width, height, zPlanes, timePoints, opts...)
}

// New16Copy allocates an owning duplicate of src.
func New16Copy(src *stack.Stack16) (*stack.Stack16, error) {
	return stack.New16Copy(src)
}

// New16Borrowed wraps a caller-owned region without taking ownership.
func New16Borrowed(region []byte, width, stride, height, zPlanes, timePoints int,
	order SliceOrder,
) (*stack.Stack16, error) {
	return stack.New16Borrowed(region, width, stride, height, zPlanes, timePoints, order)
}

// NewFloat allocates an owning float stack of the given extents.
func NewFloat(width, height, zPlanes, timePoints int, opts ...Option) (*stack.StackFloat, error) {
	return stack.NewFloat(width, height, zPlanes, timePoints, opts...)
}

// NewFloatCopy allocates an owning duplicate of src.
func NewFloatCopy(src *stack.StackFloat) (*stack.StackFloat, error) {
	return stack.NewFloatCopy(src)
}

// NewFloatBorrowed wraps a caller-owned region without taking ownership.
func NewFloatBorrowed(region []byte, width, stride, height, zPlanes, timePoints int,
	order SliceOrder,
) (*stack.StackFloat, error) {
	return stack.NewFloatBorrowed(region, width, stride, height, zPlanes, timePoints, order)
}
