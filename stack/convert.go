package stack

import (
	"fmt"
	"math"

	"github.com/haesemeyer/pixelstack/endian"
	"github.com/haesemeyer/pixelstack/errs"
)

// Depth-conversion constructors. Each allocates a destination stack with
// the source's extents and slice order, then rescales every pixel:
//
//	dst = clamp(src / sourceMax * outMax, 0, outMax)
//
// Integer sources use the encoding maximum (255 or 65535) as sourceMax.
// Float sources have no meaningful encoding maximum, so conversions from
// StackFloat normalize against the stack's actual FindMinMax maximum; a
// non-positive maximum yields an all-zero destination. Integer
// destinations round to nearest.

func checkConversionSource(b *stackBase) error {
	if b.disposed {
		return fmt.Errorf("%w: conversion from disposed stack", errs.ErrInvalidOperation)
	}

	return nil
}

// rescale maps a source value into [0, outMax] with rounding. NaN maps
// to 0 so casts to integer encodings stay defined.
func rescale(v, sourceMax, outMax float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	scaled := v / sourceMax * outMax
	if scaled > outMax {
		scaled = outMax
	}
	if scaled < 0 {
		scaled = 0
	}

	return math.Round(scaled)
}

// New16From8 converts an 8-bit stack to 16-bit, mapping 255 to outMax.
func New16From8(src *Stack8, outMax uint16) (*Stack16, error) {
	if err := checkConversionSource(&src.stackBase); err != nil {
		return nil, err
	}

	dst, err := New16(src.width, src.height, src.zPlanes, src.timePoints, WithSliceOrder(src.order))
	if err != nil {
		return nil, err
	}

	eng := endian.Native()
	dst.forEachRowPair(&src.stackBase, func(dRow, sRow int) {
		for x := 0; x < dst.width; x++ {
			v := rescale(float64(src.data[sRow+x]), math.MaxUint8, float64(outMax))
			off := dRow + x*pixelSize16
			eng.PutUint16(dst.data[off:off+pixelSize16], uint16(v))
		}
	})

	return dst, nil
}

// New8From16 converts a 16-bit stack to 8-bit, mapping 65535 to outMax.
func New8From16(src *Stack16, outMax uint8) (*Stack8, error) {
	if err := checkConversionSource(&src.stackBase); err != nil {
		return nil, err
	}

	dst, err := New8(src.width, src.height, src.zPlanes, src.timePoints, WithSliceOrder(src.order))
	if err != nil {
		return nil, err
	}

	eng := endian.Native()
	dst.forEachRowPair(&src.stackBase, func(dRow, sRow int) {
		for x := 0; x < dst.width; x++ {
			off := sRow + x*pixelSize16
			p := eng.Uint16(src.data[off : off+pixelSize16])
			dst.data[dRow+x] = uint8(rescale(float64(p), math.MaxUint16, float64(outMax)))
		}
	})

	return dst, nil
}

// NewFloatFrom8 converts an 8-bit stack to float, mapping 255 to outMax.
func NewFloatFrom8(src *Stack8, outMax float32) (*StackFloat, error) {
	if err := checkConversionSource(&src.stackBase); err != nil {
		return nil, err
	}

	dst, err := NewFloat(src.width, src.height, src.zPlanes, src.timePoints, WithSliceOrder(src.order))
	if err != nil {
		return nil, err
	}

	eng := endian.Native()
	dst.forEachRowPair(&src.stackBase, func(dRow, sRow int) {
		for x := 0; x < dst.width; x++ {
			v := float64(src.data[sRow+x]) / math.MaxUint8 * float64(outMax)
			off := dRow + x*pixelSizeFloat
			eng.PutUint32(dst.data[off:off+pixelSizeFloat], math.Float32bits(float32(v)))
		}
	})

	return dst, nil
}

// NewFloatFrom16 converts a 16-bit stack to float, mapping 65535 to outMax.
func NewFloatFrom16(src *Stack16, outMax float32) (*StackFloat, error) {
	if err := checkConversionSource(&src.stackBase); err != nil {
		return nil, err
	}

	dst, err := NewFloat(src.width, src.height, src.zPlanes, src.timePoints, WithSliceOrder(src.order))
	if err != nil {
		return nil, err
	}

	eng := endian.Native()
	dst.forEachRowPair(&src.stackBase, func(dRow, sRow int) {
		for x := 0; x < dst.width; x++ {
			off := sRow + x*pixelSize16
			p := eng.Uint16(src.data[off : off+pixelSize16])
			v := float64(p) / math.MaxUint16 * float64(outMax)
			dOff := dRow + x*pixelSizeFloat
			eng.PutUint32(dst.data[dOff:dOff+pixelSizeFloat], math.Float32bits(float32(v)))
		}
	})

	return dst, nil
}

// New8FromFloat converts a float stack to 8-bit, mapping the stack's
// FindMinMax maximum to outMax. Negative pixels clamp to 0; a stack whose
// maximum is not positive converts to all zeroes.
func New8FromFloat(src *StackFloat, outMax uint8) (*Stack8, error) {
	if err := checkConversionSource(&src.stackBase); err != nil {
		return nil, err
	}

	dst, err := New8(src.width, src.height, src.zPlanes, src.timePoints, WithSliceOrder(src.order))
	if err != nil {
		return nil, err
	}

	_, srcMax, err := src.FindMinMax()
	if err != nil {
		dst.Dispose()
		return nil, err
	}
	if srcMax <= 0 {
		return dst, nil
	}

	eng := endian.Native()
	dst.forEachRowPair(&src.stackBase, func(dRow, sRow int) {
		for x := 0; x < dst.width; x++ {
			off := sRow + x*pixelSizeFloat
			p := math.Float32frombits(eng.Uint32(src.data[off : off+pixelSizeFloat]))
			dst.data[dRow+x] = uint8(rescale(float64(p), float64(srcMax), float64(outMax)))
		}
	})

	return dst, nil
}

// New16FromFloat converts a float stack to 16-bit, mapping the stack's
// FindMinMax maximum to outMax. Negative pixels clamp to 0; a stack whose
// maximum is not positive converts to all zeroes.
func New16FromFloat(src *StackFloat, outMax uint16) (*Stack16, error) {
	if err := checkConversionSource(&src.stackBase); err != nil {
		return nil, err
	}

	dst, err := New16(src.width, src.height, src.zPlanes, src.timePoints, WithSliceOrder(src.order))
	if err != nil {
		return nil, err
	}

	_, srcMax, err := src.FindMinMax()
	if err != nil {
		dst.Dispose()
		return nil, err
	}
	if srcMax <= 0 {
		return dst, nil
	}

	eng := endian.Native()
	dst.forEachRowPair(&src.stackBase, func(dRow, sRow int) {
		for x := 0; x < dst.width; x++ {
			off := sRow + x*pixelSizeFloat
			p := math.Float32frombits(eng.Uint32(src.data[off : off+pixelSizeFloat]))
			v := rescale(float64(p), float64(srcMax), float64(outMax))
			dOff := dRow + x*pixelSize16
			eng.PutUint16(dst.data[dOff:dOff+pixelSize16], uint16(v))
		}
	})

	return dst, nil
}
