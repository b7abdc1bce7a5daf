package stack

import (
	"fmt"

	"github.com/haesemeyer/pixelstack/errs"
	"github.com/haesemeyer/pixelstack/internal/compress"
)

// SnapshotCodec selects the compression applied to a snapshot payload.
type SnapshotCodec uint8

const (
	SnapshotNone SnapshotCodec = 0x1 // stored uncompressed
	SnapshotZstd SnapshotCodec = 0x2 // best ratio
	SnapshotS2   SnapshotCodec = 0x3 // fastest; good default for undo
	SnapshotLZ4  SnapshotCodec = 0x4 // balanced
)

func (c SnapshotCodec) String() string {
	return c.compressType().String()
}

func (c SnapshotCodec) compressType() compress.Type {
	switch c {
	case SnapshotNone:
		return compress.None
	case SnapshotZstd:
		return compress.Zstd
	case SnapshotS2:
		return compress.S2
	case SnapshotLZ4:
		return compress.LZ4
	default:
		return compress.Type(0)
	}
}

// Snapshot is a compressed in-memory capture of a stack's pixel region,
// taken for undo-style restoration. It records the exact geometry it was
// taken under and can only be restored into a stack of identical shape and
// stride. It is not a serialization format.
type Snapshot struct {
	width      int
	height     int
	zPlanes    int
	timePoints int
	pixelSize  int
	stride     int
	totalBytes int
	order      SliceOrder
	codec      SnapshotCodec
	payload    []byte
}

// Codec returns the codec the payload was compressed with.
func (s *Snapshot) Codec() SnapshotCodec { return s.codec }

// CompressedSize returns the payload size in bytes.
func (s *Snapshot) CompressedSize() int { return len(s.payload) }

// UncompressedSize returns the captured region size in bytes.
func (s *Snapshot) UncompressedSize() int { return s.totalBytes }

func (s *Snapshot) matches(b *stackBase) bool {
	return s.width == b.width &&
		s.height == b.height &&
		s.zPlanes == b.zPlanes &&
		s.timePoints == b.timePoints &&
		s.pixelSize == b.pixelSize &&
		s.stride == b.stride &&
		s.order == b.order
}

// Snapshot captures the full pixel region, padding included, compressed
// with the given codec. The snapshot never aliases the live region.
func (b *stackBase) Snapshot(codec SnapshotCodec) (*Snapshot, error) {
	if err := b.ensureAlive(); err != nil {
		return nil, err
	}

	c, err := compress.ForType(codec.compressType())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidArgument, err)
	}
	payload, err := c.Compress(b.data)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		width:      b.width,
		height:     b.height,
		zPlanes:    b.zPlanes,
		timePoints: b.timePoints,
		pixelSize:  b.pixelSize,
		stride:     b.stride,
		totalBytes: b.totalBytes,
		order:      b.order,
		codec:      codec,
		payload:    payload,
	}, nil
}

// Restore writes a snapshot back into the stack. The stack must have the
// exact geometry and stride the snapshot was taken under; anything else
// fails with errs.ErrInvalidOperation before mutating the region.
func (b *stackBase) Restore(snap *Snapshot) error {
	if err := b.ensureAlive(); err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", errs.ErrInvalidArgument)
	}
	if !snap.matches(b) {
		return fmt.Errorf("%w: snapshot taken under a different geometry", errs.ErrInvalidOperation)
	}

	c, err := compress.ForType(snap.codec.compressType())
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidArgument, err)
	}
	region, err := c.Decompress(snap.payload, snap.totalBytes)
	if err != nil {
		return err
	}
	copy(b.data, region)

	return nil
}
