//go:build cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// ZstdCodec compresses with Zstandard through the cgo libzstd bindings.
// The pure-Go implementation in zstd_pure.go is used when cgo is disabled;
// the two produce interchangeable payloads.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func (ZstdCodec) Decompress(data []byte, size int) ([]byte, error) {
	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if err := checkSize(len(out), size); err != nil {
		return nil, err
	}

	return out, nil
}
