// Package pool provides a pooled allocator for the byte regions backing
// owning pixel stacks.
//
// Acquisition stacks are large (tens to hundreds of megabytes) and are
// created and disposed in bursts, for example when a plugin materializes a
// working copy per processing step. Recycling released regions through a
// sync.Pool avoids repeatedly paying allocation and page-fault cost for
// same-shaped stacks.
package pool

import "sync"

const (
	// RegionMinPooled is the smallest region worth recycling. Below this
	// a direct allocation is cheaper than pool bookkeeping.
	RegionMinPooled = 4 * 1024
	// RegionMaxPooled is the retention ceiling. Regions larger than this
	// are handed to the GC on release so a single huge stack cannot pin
	// memory for the lifetime of the pool.
	RegionMaxPooled = 256 * 1024 * 1024
)

var regionPool = sync.Pool{
	New: func() any { return new([]byte) },
}

// GetRegion returns a zeroed region of exactly size bytes.
//
// The region may come from a recycled allocation with larger capacity; its
// length is always exactly size and every byte is zero, matching the
// contract of a fresh allocation.
func GetRegion(size int) []byte {
	if size <= 0 {
		return nil
	}
	if size < RegionMinPooled || size > RegionMaxPooled {
		return make([]byte, size)
	}

	ptr, _ := regionPool.Get().(*[]byte)
	region := *ptr
	if cap(region) < size {
		return make([]byte, size)
	}

	region = region[:size]
	clear(region)

	return region
}

// PutRegion returns a region to the pool for reuse.
//
// The caller must not touch the region afterwards. Regions outside the
// pooling thresholds are dropped silently.
func PutRegion(region []byte) {
	if cap(region) < RegionMinPooled || cap(region) > RegionMaxPooled {
		return
	}

	region = region[:0]
	regionPool.Put(&region)
}
