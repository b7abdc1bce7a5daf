package stack

import (
	"fmt"
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"github.com/haesemeyer/pixelstack/errs"
	"github.com/haesemeyer/pixelstack/internal/pool"
	"github.com/haesemeyer/pixelstack/internal/satmath"
)

// SliceOrder selects which axis varies fastest across slices in memory.
type SliceOrder uint8

const (
	// ZBeforeT lays out all z-planes of one time-point contiguously:
	// slice index = t*zPlanes + z.
	ZBeforeT SliceOrder = 0x1
	// TBeforeZ lays out all time-points of one z-plane contiguously:
	// slice index = z*timePoints + t.
	TBeforeZ SliceOrder = 0x2
)

func (o SliceOrder) String() string {
	switch o {
	case ZBeforeT:
		return "ZBeforeT"
	case TBeforeZ:
		return "TBeforeZ"
	default:
		return "Unknown"
	}
}

// strideAlign is the row alignment boundary. Every allocating constructor
// pads rows up to the next multiple of this.
const strideAlign = satmath.WordBytes

// stackBase holds the region, geometry, and lifecycle state shared by the
// three typed stacks. The typed stacks embed it by value; there is no
// inheritance between encodings.
type stackBase struct {
	width      int
	height     int
	zPlanes    int
	timePoints int
	pixelSize  int
	stride     int
	totalBytes int
	order      SliceOrder
	data       []byte
	owns       bool
	disposed   bool
}

func alignStride(rowBytes int) int {
	return (rowBytes + strideAlign - 1) / strideAlign * strideAlign
}

// newBase allocates an owning base with an aligned stride.
func newBase(width, height, zPlanes, timePoints, pixelSize int, opts ...Option) (stackBase, error) {
	if width < 1 || height < 1 || zPlanes < 1 || timePoints < 1 {
		return stackBase{}, fmt.Errorf("%w: dimensions must be >= 1, got %dx%dx%dx%d",
			errs.ErrInvalidDimension, width, height, zPlanes, timePoints)
	}
	if pixelSize < 1 {
		return stackBase{}, fmt.Errorf("%w: pixel size must be >= 1, got %d",
			errs.ErrInvalidDimension, pixelSize)
	}

	stride := alignStride(width * pixelSize)
	total := stride * height * zPlanes * timePoints

	b := stackBase{
		width:      width,
		height:     height,
		zPlanes:    zPlanes,
		timePoints: timePoints,
		pixelSize:  pixelSize,
		stride:     stride,
		totalBytes: total,
		order:      TBeforeZ,
		data:       pool.GetRegion(total),
		owns:       true,
	}
	if err := applyOptions(&b, opts...); err != nil {
		b.Dispose()
		return stackBase{}, err
	}

	return b, nil
}

// newBorrowedBase wraps a caller-supplied region without allocating.
func newBorrowedBase(region []byte, width, stride, height, zPlanes, timePoints int,
	order SliceOrder, pixelSize int,
) (stackBase, error) {
	if width < 1 || height < 1 || zPlanes < 1 || timePoints < 1 {
		return stackBase{}, fmt.Errorf("%w: dimensions must be >= 1, got %dx%dx%dx%d",
			errs.ErrInvalidDimension, width, height, zPlanes, timePoints)
	}
	if region == nil {
		return stackBase{}, fmt.Errorf("%w: nil region", errs.ErrInvalidArgument)
	}
	if stride%pixelSize != 0 {
		return stackBase{}, fmt.Errorf("%w: stride %d is not a multiple of pixel size %d",
			errs.ErrInvalidArgument, stride, pixelSize)
	}
	if stride < width*pixelSize {
		return stackBase{}, fmt.Errorf("%w: stride %d shorter than row of %d bytes",
			errs.ErrInvalidArgument, stride, width*pixelSize)
	}
	if order != ZBeforeT && order != TBeforeZ {
		return stackBase{}, fmt.Errorf("%w: unknown slice order %d", errs.ErrInvalidArgument, order)
	}

	total := stride * height * zPlanes * timePoints
	if len(region) < total {
		return stackBase{}, fmt.Errorf("%w: region holds %d bytes, geometry needs %d",
			errs.ErrInvalidArgument, len(region), total)
	}

	return stackBase{
		width:      width,
		height:     height,
		zPlanes:    zPlanes,
		timePoints: timePoints,
		pixelSize:  pixelSize,
		stride:     stride,
		totalBytes: total,
		order:      order,
		data:       region[:total],
		owns:       false,
	}, nil
}

// newCopyBase allocates an owning base duplicating src, including padding
// bytes. The new region never aliases the source region.
func newCopyBase(src *stackBase) (stackBase, error) {
	if src.disposed {
		return stackBase{}, fmt.Errorf("%w: copy from disposed stack", errs.ErrInvalidOperation)
	}

	b := *src
	b.owns = true
	b.disposed = false
	b.data = pool.GetRegion(src.totalBytes)
	if err := copyRegion(b.data, src.data); err != nil {
		b.Dispose()
		return stackBase{}, err
	}

	return b, nil
}

// copyRegion is the single bulk-copy primitive used by copy construction.
// Source and destination must be non-nil, of equal length, and must not
// overlap.
func copyRegion(dst, src []byte) error {
	if dst == nil || src == nil {
		return fmt.Errorf("%w: nil copy region", errs.ErrInvalidOperation)
	}
	if len(dst) != len(src) {
		return fmt.Errorf("%w: copy regions differ in length (%d vs %d)",
			errs.ErrInvalidOperation, len(dst), len(src))
	}
	if len(dst) == 0 {
		return nil
	}

	d := uintptr(unsafe.Pointer(&dst[0]))
	s := uintptr(unsafe.Pointer(&src[0]))
	n := uintptr(len(dst))
	if d < s+n && s < d+n {
		return fmt.Errorf("%w: copy regions overlap", errs.ErrInvalidOperation)
	}

	copy(dst, src)

	return nil
}

// Dispose releases the stack. It is idempotent and safe to call from both
// an explicit defer and the finalizer backstop; only an owning stack
// returns its region for reuse.
func (b *stackBase) Dispose() {
	if b.disposed {
		return
	}
	if b.owns && b.data != nil {
		pool.PutRegion(b.data)
	}
	b.data = nil
	b.totalBytes = 0
	b.disposed = true
}

func (b *stackBase) ensureAlive() error {
	if b.disposed {
		return fmt.Errorf("%w: operation on disposed stack", errs.ErrStackDisposed)
	}

	return nil
}

// Width returns the pixel count per row.
func (b *stackBase) Width() int { return b.width }

// Height returns the row count per slice.
func (b *stackBase) Height() int { return b.height }

// ZPlanes returns the z-plane count.
func (b *stackBase) ZPlanes() int { return b.zPlanes }

// TimePoints returns the time-point count.
func (b *stackBase) TimePoints() int { return b.timePoints }

// PixelSize returns the bytes per pixel (1, 2 or 4).
func (b *stackBase) PixelSize() int { return b.pixelSize }

// Stride returns the bytes per row, including alignment padding.
func (b *stackBase) Stride() int { return b.stride }

// TotalBytes returns the region size in bytes; zero once disposed.
func (b *stackBase) TotalBytes() int { return b.totalBytes }

// Order returns the slice order.
func (b *stackBase) Order() SliceOrder { return b.order }

// OwnsRegion reports whether the stack owns its backing region.
func (b *stackBase) OwnsRegion() bool { return b.owns }

// Disposed reports whether the stack has been disposed.
func (b *stackBase) Disposed() bool { return b.disposed }

// Region exposes the raw backing bytes for trusted callers, or nil once
// the stack is disposed. Mutations through the returned slice are visible
// to the stack.
func (b *stackBase) Region() []byte {
	if b.disposed {
		return nil
	}

	return b.data
}

// Fingerprint returns the xxHash64 digest of the valid pixel region,
// row by row with stride padding excluded. Two stacks with equal geometry
// and equal pixel content produce equal fingerprints regardless of stride.
func (b *stackBase) Fingerprint() (uint64, error) {
	if err := b.ensureAlive(); err != nil {
		return 0, err
	}

	digest := xxhash.New()
	rowBytes := b.width * b.pixelSize
	slices := b.zPlanes * b.timePoints
	for s := 0; s < slices; s++ {
		base := s * b.height * b.stride
		for y := 0; y < b.height; y++ {
			row := b.data[base+y*b.stride:]
			_, _ = digest.Write(row[:rowBytes])
		}
	}

	return digest.Sum64(), nil
}
