// Package endian provides byte-order utilities for the word-packed pixel
// paths.
//
// The packed arithmetic engines load several sub-word pixel lanes as one
// machine word, operate per lane, and store the word back. Lane extraction
// assumes the word was read in a known byte order, so every load and store
// goes through a single EndianEngine chosen at package init. Using the
// host's native order keeps the word view consistent with the raw byte view
// of the same region.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into one interface. Both binary.LittleEndian and
// binary.BigEndian satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var native = probeHostOrder()

// probeHostOrder determines the host byte order from a fixed integer value.
func probeHostOrder() EndianEngine {
	// 0x0100 is 256. A little-endian host stores the LSB (0x00) first,
	// a big-endian host stores the MSB (0x01) first.
	var v uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&v))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// Native returns the engine matching the host byte order.
func Native() EndianEngine {
	return native
}

// IsLittleEndianHost reports whether the host is little-endian.
func IsLittleEndianHost() bool {
	return native == binary.LittleEndian
}

// IsBigEndianHost reports whether the host is big-endian.
func IsBigEndianHost() bool {
	return native == binary.BigEndian
}
