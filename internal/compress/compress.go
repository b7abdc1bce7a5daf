// Package compress provides the codecs used by stack snapshots.
//
// Snapshots hold a compressed copy of a pixel region whose decompressed
// size is always known from the stack shape, so Decompress takes the
// expected size and validates the codec output against it. Every codec
// returns newly allocated slices; input slices are never retained.
package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a snapshot codec.
type Type uint8

const (
	None Type = 0x1 // None stores the region uncompressed.
	Zstd Type = 0x2 // Zstd favors ratio; best for archival snapshots.
	S2   Type = 0x3 // S2 favors speed; the default for undo snapshots.
	LZ4  Type = 0x4 // LZ4 balances speed and ratio.
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Zstd:
		return "Zstd"
	case S2:
		return "S2"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Codec compresses and decompresses snapshot payloads.
type Codec interface {
	// Compress returns a newly allocated compressed copy of data.
	Compress(data []byte) ([]byte, error)

	// Decompress restores a payload produced by Compress. size is the
	// known decompressed length; a mismatch indicates corruption.
	Decompress(data []byte, size int) ([]byte, error)
}

// ForType returns the codec for t.
func ForType(t Type) (Codec, error) {
	switch t {
	case None:
		return NoopCodec{}, nil
	case Zstd:
		return ZstdCodec{}, nil
	case S2:
		return S2Codec{}, nil
	case LZ4:
		return LZ4Codec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec type: %d", t)
	}
}

func checkSize(got, want int) error {
	if got != want {
		return fmt.Errorf("decompressed size mismatch: got %d, want %d", got, want)
	}

	return nil
}

// NoopCodec stores payloads uncompressed. Unlike the real codecs it still
// copies, so that a snapshot never aliases the live pixel region.
type NoopCodec struct{}

var _ Codec = (*NoopCodec)(nil)

func (NoopCodec) Compress(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)

	return out, nil
}

func (NoopCodec) Decompress(data []byte, size int) ([]byte, error) {
	if err := checkSize(len(data), size); err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)

	return out, nil
}

// S2Codec compresses with S2, the Snappy-compatible format from
// klauspost/compress.
type S2Codec struct{}

var _ Codec = (*S2Codec)(nil)

func (S2Codec) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (S2Codec) Decompress(data []byte, size int) ([]byte, error) {
	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if err := checkSize(len(out), size); err != nil {
		return nil, err
	}

	return out, nil
}

// lz4CompressorPool pools lz4.Compressor instances; they keep internal
// match tables that benefit from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec compresses with LZ4 block compression.
//
// CompressBlock reports incompressible input by producing zero bytes and
// expects the caller to keep the raw data. Snapshot payloads must be
// self-contained, so each payload carries a one-byte marker telling the
// decompressor whether the rest is an LZ4 block or stored bytes. Noisy
// acquisition data is routinely incompressible, so the stored path is hit
// in practice.
type LZ4Codec struct{}

var _ Codec = (*LZ4Codec)(nil)

const (
	lz4MarkerStored = 0x0
	lz4MarkerBlock  = 0x1
)

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		stored := make([]byte, 1+len(data))
		stored[0] = lz4MarkerStored
		copy(stored[1:], data)

		return stored, nil
	}
	dst[0] = lz4MarkerBlock

	return dst[:1+n], nil
}

func (LZ4Codec) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("lz4: empty payload")
	}
	marker, block := data[0], data[1:]

	if marker == lz4MarkerStored {
		if err := checkSize(len(block), size); err != nil {
			return nil, err
		}
		out := make([]byte, size)
		copy(out, block)

		return out, nil
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(block, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if err := checkSize(n, size); err != nil {
		return nil, err
	}

	return out, nil
}
