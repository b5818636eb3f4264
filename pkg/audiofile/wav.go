package audiofile

import (
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/xaionaro-go/spectralgate/pkg/audio"
)

const wavFormatPCM = 1

func checkBitDepth(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("unsupported WAV bit depth: %d", bitDepth)
	}
}

func readWAV(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file")
	}
	if decoder.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("only integer PCM WAV files are supported, the audio format is %d", decoder.WavAudioFormat)
	}
	bitDepth := int(decoder.BitDepth)
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("unable to read the PCM data: %w", err)
	}
	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}

	fullScale := math.Ldexp(1, bitDepth-1)
	samples := make([]float64, len(buf.Data)/channels)
	for idx := range samples {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[idx*channels+ch])
		}
		samples[idx] = sum / float64(channels) / fullScale
	}

	return &File{
		Container:  ContainerWAV,
		Samples:    samples,
		SampleRate: audio.SampleRate(buf.Format.SampleRate),
		Channels:   audio.Channel(channels),
		BitDepth:   bitDepth,
	}, nil
}

func writeWAV(path string, f File, bitDepth int) (_ret int64, _err error) {
	if err := checkBitDepth(bitDepth); err != nil {
		return 0, err
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := file.Close(); err != nil && _err == nil {
			_err = err
		}
	}()

	maxValue := math.Ldexp(1, bitDepth-1) - 1
	data := make([]int, len(f.Samples))
	for idx, v := range f.Samples {
		data[idx] = int(math.Round(min(max(v, -1), 1) * maxValue))
	}

	encoder := wav.NewEncoder(file, int(f.SampleRate), bitDepth, 1, wavFormatPCM)
	err = encoder.Write(&goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  int(f.SampleRate),
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		return 0, fmt.Errorf("unable to write the PCM data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return 0, fmt.Errorf("unable to finalize the WAV file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}
