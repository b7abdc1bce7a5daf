// Package stack implements in-memory 4-dimensional pixel stacks over three
// encodings: 8-bit unsigned (Stack8), 16-bit unsigned (Stack16), and 32-bit
// float (StackFloat).
//
// A stack spans four fixed axes (x, y, z-plane, time-point) backed by one
// flat byte region. Rows are padded to a 4-byte stride boundary; slices are
// laid out in one of two orders (ZBeforeT, TBeforeZ). The region is either
// owned by the stack (allocated on construction, released exactly once on
// Dispose) or borrowed from the caller (never released by the stack).
//
// # Arithmetic
//
// Each typed stack carries element-wise operators: SetAll, the constant
// forms AddConstant/SubConstant/MulConstant/DivConstant, the pairwise forms
// Add/Subtract/Multiply/Divide, and a FindMinMax reduction. Unsigned
// operators saturate at the encoding bounds instead of wrapping; float
// operators use plain IEEE semantics. Operators run over packed machine
// words when both operands share a stride, and fall back to per-pixel
// addressing when they do not — the two paths produce identical results in
// the valid pixel region.
//
// # Lifecycle
//
// Dispose is idempotent and must be called deterministically (typically via
// defer) on every exit path. A finalizer backstop reclaims owned regions of
// stacks that were never disposed, but it is a safety net, not the primary
// release mechanism. Every operation on a disposed stack fails with
// errs.ErrStackDisposed.
package stack
