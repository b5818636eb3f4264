package pcm

import (
	"fmt"

	"github.com/xaionaro-go/spectralgate/pkg/audio"
)

// Decode converts interleaved PCM data into mono samples. Multiple channels
// are downmixed by averaging.
func Decode(
	format audio.PCMFormat,
	channels audio.Channel,
	data []byte,
) ([]float64, error) {
	if channels == 0 {
		return nil, fmt.Errorf("channels must be greater than 0")
	}
	sampleSize := int(format.Size())
	if sampleSize == 0 {
		return nil, fmt.Errorf("unsupported PCM format: %v", format)
	}
	chunkSize := sampleSize * int(channels)
	if len(data)%chunkSize != 0 {
		return nil, fmt.Errorf("expected a message length that is a multiple of %d, but received %d", chunkSize, len(data))
	}

	samples := make([]float64, len(data)/chunkSize)
	for idx := range samples {
		chunk := data[idx*chunkSize:]
		var sum float64
		for ch := 0; ch < int(channels); ch++ {
			v, err := ReadSample(format, chunk[ch*sampleSize:])
			if err != nil {
				return nil, fmt.Errorf("unable to read sample %d of channel %d: %w", idx, ch, err)
			}
			sum += v
		}
		samples[idx] = sum / float64(channels)
	}
	return samples, nil
}

// Encode converts mono samples into PCM data of the given format.
func Encode(
	format audio.PCMFormat,
	samples []float64,
) ([]byte, error) {
	sampleSize := int(format.Size())
	if sampleSize == 0 {
		return nil, fmt.Errorf("unsupported PCM format: %v", format)
	}
	out := make([]byte, len(samples)*sampleSize)
	if err := EncodeTo(format, out, samples); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeTo is Encode into a preallocated buffer of exactly
// len(samples)*format.Size() bytes.
func EncodeTo(
	format audio.PCMFormat,
	dst []byte,
	samples []float64,
) error {
	sampleSize := int(format.Size())
	if sampleSize == 0 {
		return fmt.Errorf("unsupported PCM format: %v", format)
	}
	if len(dst) != len(samples)*sampleSize {
		return fmt.Errorf("the output buffer has an unexpected length: %d != %d*%d", len(dst), len(samples), sampleSize)
	}
	for idx, v := range samples {
		if err := WriteSample(format, dst[idx*sampleSize:], v); err != nil {
			return fmt.Errorf("unable to write sample %d: %w", idx, err)
		}
	}
	return nil
}
