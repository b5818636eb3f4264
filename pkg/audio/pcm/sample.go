// Package pcm converts between interleaved PCM byte buffers and
// normalized mono float64 samples in [-1, 1].
package pcm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/xaionaro-go/spectralgate/pkg/audio"
)

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

// quantize maps v from [-1, 1] to a signed integer of the given full scale,
// saturating instead of wrapping around.
func quantize(v float64, fullScale float64) int64 {
	return int64(clamp(math.Round(v*fullScale), -fullScale, fullScale-1))
}

// ReadSample decodes a single sample of one channel.
func ReadSample(f audio.PCMFormat, p []byte) (float64, error) {
	if uint32(len(p)) < f.Size() || f.Size() == 0 {
		return 0, fmt.Errorf("not enough bytes for a sample of format %v: %d", f, len(p))
	}
	switch f {
	case audio.PCMFormatU8:
		return (float64(p[0]) - 128) / 128, nil
	case audio.PCMFormatS16LE:
		return float64(int16(binary.LittleEndian.Uint16(p))) / 32768, nil
	case audio.PCMFormatS16BE:
		return float64(int16(binary.BigEndian.Uint16(p))) / 32768, nil
	case audio.PCMFormatS24LE:
		return float64(signExtend24(uint32(p[0])|uint32(p[1])<<8|uint32(p[2])<<16)) / 8388608, nil
	case audio.PCMFormatS24BE:
		return float64(signExtend24(uint32(p[2])|uint32(p[1])<<8|uint32(p[0])<<16)) / 8388608, nil
	case audio.PCMFormatS32LE:
		return float64(int32(binary.LittleEndian.Uint32(p))) / 2147483648, nil
	case audio.PCMFormatS32BE:
		return float64(int32(binary.BigEndian.Uint32(p))) / 2147483648, nil
	case audio.PCMFormatS64LE:
		return float64(int64(binary.LittleEndian.Uint64(p))) / 9223372036854775808, nil
	case audio.PCMFormatS64BE:
		return float64(int64(binary.BigEndian.Uint64(p))) / 9223372036854775808, nil
	case audio.PCMFormatFloat32LE:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(p))), nil
	case audio.PCMFormatFloat32BE:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(p))), nil
	case audio.PCMFormatFloat64LE:
		return math.Float64frombits(binary.LittleEndian.Uint64(p)), nil
	case audio.PCMFormatFloat64BE:
		return math.Float64frombits(binary.BigEndian.Uint64(p)), nil
	default:
		return 0, fmt.Errorf("unknown format: %v", f)
	}
}

func signExtend24(v uint32) int32 {
	val := int32(v)
	if val&0x800000 != 0 {
		val |= -16777216
	}
	return val
}

// WriteSample encodes a single sample of one channel. Integer formats
// saturate at full scale.
func WriteSample(f audio.PCMFormat, p []byte, v float64) error {
	if uint32(len(p)) < f.Size() || f.Size() == 0 {
		return fmt.Errorf("not enough space for a sample of format %v: %d", f, len(p))
	}
	switch f {
	case audio.PCMFormatU8:
		p[0] = byte(quantize(v, 128) + 128)
	case audio.PCMFormatS16LE:
		binary.LittleEndian.PutUint16(p, uint16(int16(quantize(v, 32768))))
	case audio.PCMFormatS16BE:
		binary.BigEndian.PutUint16(p, uint16(int16(quantize(v, 32768))))
	case audio.PCMFormatS24LE:
		val := int32(quantize(v, 8388608))
		p[0] = byte(val)
		p[1] = byte(val >> 8)
		p[2] = byte(val >> 16)
	case audio.PCMFormatS24BE:
		val := int32(quantize(v, 8388608))
		p[0] = byte(val >> 16)
		p[1] = byte(val >> 8)
		p[2] = byte(val)
	case audio.PCMFormatS32LE:
		binary.LittleEndian.PutUint32(p, uint32(int32(quantize(v, 2147483648))))
	case audio.PCMFormatS32BE:
		binary.BigEndian.PutUint32(p, uint32(int32(quantize(v, 2147483648))))
	case audio.PCMFormatS64LE:
		binary.LittleEndian.PutUint64(p, uint64(quantize64(v)))
	case audio.PCMFormatS64BE:
		binary.BigEndian.PutUint64(p, uint64(quantize64(v)))
	case audio.PCMFormatFloat32LE:
		binary.LittleEndian.PutUint32(p, math.Float32bits(float32(v)))
	case audio.PCMFormatFloat32BE:
		binary.BigEndian.PutUint32(p, math.Float32bits(float32(v)))
	case audio.PCMFormatFloat64LE:
		binary.LittleEndian.PutUint64(p, math.Float64bits(v))
	case audio.PCMFormatFloat64BE:
		binary.BigEndian.PutUint64(p, math.Float64bits(v))
	default:
		return fmt.Errorf("unknown format: %v", f)
	}
	return nil
}

// quantize64 is quantize for 64-bit integers: float64 cannot represent
// MaxInt64, so the upper bound is checked before the conversion.
func quantize64(v float64) int64 {
	scaled := math.Round(clamp(v, -1, 1) * 9223372036854775808)
	if scaled >= 9223372036854775807 {
		return math.MaxInt64
	}
	return int64(scaled)
}
