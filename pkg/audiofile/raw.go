package audiofile

import (
	"fmt"
	"os"

	"github.com/xaionaro-go/datacounter"
	"github.com/xaionaro-go/spectralgate/pkg/audio"
	"github.com/xaionaro-go/spectralgate/pkg/audio/pcm"
)

func readRaw(path string, opts RawOptions) (*File, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// a truncated trailing sample frame is dropped
	frameSize := int(opts.PCMFormat.Size()) * int(opts.Channels)
	data = data[:len(data)-len(data)%frameSize]

	samples, err := pcm.Decode(opts.PCMFormat, opts.Channels, data)
	if err != nil {
		return nil, err
	}
	return &File{
		Container:  ContainerRaw,
		Samples:    samples,
		SampleRate: opts.SampleRate,
		Channels:   opts.Channels,
		PCMFormat:  opts.PCMFormat,
	}, nil
}

func writeRaw(path string, f File, format audio.PCMFormat) (_ret int64, _err error) {
	data, err := pcm.Encode(format, f.Samples)
	if err != nil {
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

	wc := datacounter.NewWriterCounter(file)
	if _, err := wc.Write(data); err != nil {
		return int64(wc.Count()), fmt.Errorf("unable to write: %w", err)
	}
	return int64(wc.Count()), nil
}
